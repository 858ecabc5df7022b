package domain

import (
	"errors"
	"time"
)

// Priority represents the urgency level of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// priorityWeights orders priorities for sorting: high > medium > low.
var priorityWeights = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

var ErrTodoNotFound = errors.New("todo not found or unauthorized")
var ErrCategoryNotFound = errors.New("category not found or unauthorized")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrInvalidInput = errors.New("invalid input")

// Valid reports whether p is one of the three known priority levels.
func (p Priority) Valid() bool {
	_, ok := priorityWeights[p]
	return ok
}

// Weight returns the numeric sort weight of p. Unknown priorities weigh zero.
func (p Priority) Weight() int {
	return priorityWeights[p]
}

// Todo is the core record owned by a single user. CategoryID is empty when the
// todo is uncategorised.
type Todo struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Completed   bool       `json:"completed" bson:"completed"`
	Priority    Priority   `json:"priority" bson:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	CategoryID  string     `json:"category_id,omitempty" bson:"category_id,omitempty"`
	OwnerID     string     `json:"owner_id" bson:"owner_id"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}
