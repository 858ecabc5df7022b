package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/taskloop-api/internal/api/metrics"
	"github.com/taskloop/taskloop-api/internal/core/domain"
	"github.com/taskloop/taskloop-api/internal/core/ports"
)

// TodoHandler handles HTTP requests for todo operations.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// List handles GET /v1/todos.
//
// @Summary      List the caller's todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        completed    query     bool    false  "Filter by completion state"
// @Param        category_id  query     string  false  "Filter by category id"
// @Success      200          {object}  listTodosResponse
// @Failure      401          {object}  map[string]string
// @Failure      500          {object}  map[string]string
// @Router       /v1/todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	input := ports.ListTodosInput{
		OwnerID:    userID,
		CategoryID: c.QueryParam("category_id"),
	}
	if raw := c.QueryParam("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "completed must be a boolean")
		}
		input.Completed = &completed
	}

	views, err := h.service.ListTodos(c.Request().Context(), input)
	if err != nil {
		return err
	}

	items := make([]todoResponse, 0, len(views))
	for _, v := range views {
		items = append(items, toTodoResponse(v))
	}
	return c.JSON(http.StatusOK, listTodosResponse{Items: items, Count: len(items)})
}

// Create handles POST /v1/todos.
//
// @Summary      Create a new todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id, err := h.service.CreateTodo(c.Request().Context(), ports.CreateTodoInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}

	metrics.TodosCreatedTotal.WithLabelValues(req.Priority).Inc()
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Toggle handles POST /v1/todos/:id/toggle.
//
// @Summary      Flip a todo's completion state
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Todo id"
// @Success      200 {object}  todoResponse
// @Failure      401 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/todos/{id}/toggle [post]
func (h *TodoHandler) Toggle(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	todo, err := h.service.ToggleTodo(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.TodosToggledTotal.WithLabelValues(strconv.FormatBool(todo.Completed)).Inc()
	return c.JSON(http.StatusOK, toTodoResponse(ports.TodoView{Todo: *todo}))
}

// Update handles PATCH /v1/todos/:id with a sparse patch.
//
// @Summary      Update fields of a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Todo id"
// @Param        body  body      updateTodoRequest  true  "Fields to change"
// @Success      204   "updated"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/todos/{id} [patch]
func (h *TodoHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input := ports.UpdateTodoInput{
		OwnerID:     userID,
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		input.Priority = &p
	}

	if err := h.service.UpdateTodo(c.Request().Context(), input); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/todos/:id.
//
// @Summary      Delete a todo
// @Tags         todos
// @Security     BearerAuth
// @Param        id  path  string  true  "Todo id"
// @Success      204 "deleted"
// @Failure      401 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTodo(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/todos/stats.
//
// @Summary      Aggregate counts over the caller's todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object}  ports.TodoStats
// @Failure      401 {object}  map[string]string
// @Router       /v1/todos/stats [get]
func (h *TodoHandler) Stats(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.service.GetStats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
