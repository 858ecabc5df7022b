package handler

import "time"

type createTodoRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Priority    string     `json:"priority"    validate:"required,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  string     `json:"category_id"`
}

// updateTodoRequest is a sparse patch: absent fields keep their stored value.
// An explicit empty category_id detaches the todo from its category.
type updateTodoRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *string    `json:"category_id"`
}

type categoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type todoResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Completed   bool              `json:"completed"`
	Priority    string            `json:"priority"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	CategoryID  string            `json:"category_id,omitempty"`
	Category    *categoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type listTodosResponse struct {
	Items []todoResponse `json:"items"`
	Count int            `json:"count"`
}

type createdResponse struct {
	ID string `json:"id"`
}
