package domain

import "time"

// Category is a user-defined label a todo can point to. Deleting a category
// clears the reference on every todo that points to it; it never deletes todos.
type Category struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Color     string    `json:"color" bson:"color"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
