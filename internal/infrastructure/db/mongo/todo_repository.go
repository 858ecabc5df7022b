package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskloop/taskloop-api/internal/core/domain"
	"github.com/taskloop/taskloop-api/internal/core/ports"
)

const collectionTodos = "todos"

type TodoRepository struct {
	col *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{col: db.Collection(collectionTodos)}
}

type todoDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Completed   bool               `bson:"completed"`
	Priority    string             `bson:"priority"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	CategoryID  string             `bson:"category_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d *todoDoc) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		Priority:    domain.Priority(d.Priority),
		DueDate:     d.DueDate,
		CategoryID:  d.CategoryID,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt,
	}
}

// Create inserts a new todo document and returns its generated id.
func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := todoDoc{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CategoryID:  t.CategoryID,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert todo: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert todo: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByID retrieves a todo by id, scoped to ownerID. A malformed id, a
// missing record, and another user's record all yield the same error.
func (r *TodoRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}

	var doc todoDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid, "owner_id": ownerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns all todos matching filter. The owner filter hits the owner_id
// index; the completion filter narrows it to the compound index.
func (r *TodoRepository) List(ctx context.Context, filter ports.ListTodosFilter) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"owner_id": filter.OwnerID}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cur.Close(ctx)

	var todos []*domain.Todo
	for cur.Next(ctx) {
		var doc todoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Update applies patch to the todo matching id and ownerID. Nil patch fields
// are untouched; an explicitly empty category clears the reference.
func (r *TodoRepository) Update(ctx context.Context, id, ownerID string, patch ports.TodoPatch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTodoNotFound
	}

	set := bson.M{}
	unset := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if patch.Priority != nil {
		set["priority"] = string(*patch.Priority)
	}
	if patch.DueDate != nil {
		set["due_date"] = patch.DueDate.UTC()
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == "" {
			unset["category_id"] = ""
		} else {
			set["category_id"] = *patch.CategoryID
		}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if len(update) == 0 {
		return nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "owner_id": ownerID}, update)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// Delete removes the todo matching id and ownerID.
func (r *TodoRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTodoNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the list and cascade queries.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "completed", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
