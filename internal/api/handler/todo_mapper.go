package handler

import (
	"github.com/taskloop/taskloop-api/internal/core/domain"
	"github.com/taskloop/taskloop-api/internal/core/ports"
)

// toTodoResponse maps an enriched todo view to the HTTP response shape.
func toTodoResponse(v ports.TodoView) todoResponse {
	resp := todoResponse{
		ID:          v.Todo.ID,
		Title:       v.Todo.Title,
		Description: v.Todo.Description,
		Completed:   v.Todo.Completed,
		Priority:    string(v.Todo.Priority),
		DueDate:     v.Todo.DueDate,
		CategoryID:  v.Todo.CategoryID,
		CreatedAt:   v.Todo.CreatedAt,
	}
	if v.Category != nil {
		resp.Category = toCategoryResponse(v.Category)
	}
	return resp
}

func toCategoryResponse(c *domain.Category) *categoryResponse {
	return &categoryResponse{ID: c.ID, Name: c.Name, Color: c.Color}
}
