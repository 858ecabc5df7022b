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
)

const collectionCategories = "categories"

type CategoryRepository struct {
	categories *mongo.Collection
	todos      *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		categories: db.Collection(collectionCategories),
		todos:      db.Collection(collectionTodos),
	}
}

type categoryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Color     string             `bson:"color"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *categoryDoc) toDomain() *domain.Category {
	return &domain.Category{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Color:     d.Color,
		OwnerID:   d.OwnerID,
		CreatedAt: d.CreatedAt,
	}
}

// Create inserts a new category document and returns its generated id.
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := categoryDoc{
		Name:      c.Name,
		Color:     c.Color,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
	}

	res, err := r.categories.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert category: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert category: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByID retrieves a category by id, scoped to ownerID.
func (r *CategoryRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	var doc categoryDoc
	err = r.categories.FindOne(ctx, bson.M{"_id": oid, "owner_id": ownerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByOwner returns all categories owned by ownerID.
func (r *CategoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.categories.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	var categories []*domain.Category
	for cur.Next(ctx) {
		var doc categoryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		categories = append(categories, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// DeleteCascade clears the category reference on every todo pointing at id and
// then deletes the category. Ownership is verified up front so a caller can
// never trigger the cascade on someone else's category, and the clear always
// runs before the delete so no todo is left referencing a missing category.
func (r *CategoryRepository) DeleteCascade(ctx context.Context, id, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrCategoryNotFound
	}

	err = r.categories.FindOne(ctx, bson.M{"_id": oid, "owner_id": ownerID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrCategoryNotFound
		}
		return 0, fmt.Errorf("find category: %w", err)
	}

	res, err := r.todos.UpdateMany(ctx,
		bson.M{"category_id": id},
		bson.M{"$unset": bson.M{"category_id": ""}},
	)
	if err != nil {
		return 0, fmt.Errorf("clear category references: %w", err)
	}

	del, err := r.categories.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}
	if del.DeletedCount == 0 {
		return 0, domain.ErrCategoryNotFound
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the index backing the by-owner lookup.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
