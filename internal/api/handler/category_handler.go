package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/taskloop-api/internal/api/metrics"
	"github.com/taskloop/taskloop-api/internal/core/ports"
)

// CategoryHandler handles HTTP requests for category operations.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type createCategoryRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Color string `json:"color" validate:"max=50"`
}

type listCategoriesResponse struct {
	Items []categoryResponse `json:"items"`
}

// List handles GET /v1/categories.
//
// @Summary      List the caller's categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listCategoriesResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	categories, err := h.service.ListCategories(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		items = append(items, *toCategoryResponse(cat))
	}
	return c.JSON(http.StatusOK, listCategoriesResponse{Items: items})
}

// Create handles POST /v1/categories.
//
// @Summary      Create a new category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id, err := h.service.CreateCategory(c.Request().Context(), ports.CreateCategoryInput{
		OwnerID: userID,
		Name:    req.Name,
		Color:   req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Delete handles DELETE /v1/categories/:id. Todos that pointed at the
// category survive with their reference cleared.
//
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        id  path  string  true  "Category id"
// @Success      204 "deleted"
// @Failure      401 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	cleared, err := h.service.DeleteCategory(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.CategoriesDeletedTotal.Inc()
	metrics.CategoryTodosClearedTotal.Add(float64(cleared))
	return c.NoContent(http.StatusNoContent)
}
