package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-planner/internal/handlers"
	"github.com/carson-networks/pocket-planner/internal/service"
)

// Category is the API model for a category. Shared defaults have a null
// userEmail.
type Category struct {
	ID        string  `json:"id"`
	UserEmail *string `json:"userEmail"`
	Name      string  `json:"name"`
	Color     *string `json:"color"`
}

type CreateCategoryBody struct {
	Name  string  `json:"name" minLength:"1" doc:"Category name"`
	Color *string `json:"color,omitempty" required:"false" nullable:"true" doc:"Display color"`
}

type CreateCategoryInput struct {
	Body CreateCategoryBody
}

type CategoryOutput struct {
	Body Category
}

type ListCategoriesOutput struct {
	Body []Category
}

type DeleteCategoryInput struct {
	ID string `path:"id"`
}

type categoryService interface {
	ListCategories(ctx context.Context, userEmail string) ([]service.Category, error)
	CreateCategory(ctx context.Context, userEmail string, create service.CategoryCreate) (*service.Category, error)
	DeleteCategory(ctx context.Context, userEmail, id string) error
}

// Handler serves /api/category.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

func (h *Handler) Register(api huma.API, middlewares huma.Middlewares) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/category",
		Summary:     "List categories",
		Description: "Lists the shared default categories followed by the caller's own.",
		Tags:        []string{"Categories"},
		Middlewares: middlewares,
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/api/category",
		Summary:       "Create category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   middlewares,
	}, h.create)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/api/category/{id}",
		Summary:       "Delete category",
		Description:   "Deletes a category owned by the caller. Categories still used by transactions are rejected with 409.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   middlewares,
	}, h.delete)
}

func fromService(c *service.Category) Category {
	return Category{ID: c.ID, UserEmail: c.UserEmail, Name: c.Name, Color: c.Color}
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := h.CategoryService.ListCategories(ctx, email)
	if err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to list categories")
	}

	out := &ListCategoriesOutput{Body: make([]Category, len(categories))}
	for i := range categories {
		out.Body[i] = fromService(&categories[i])
	}
	return out, nil
}

func (h *Handler) create(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	category, err := h.CategoryService.CreateCategory(ctx, email, service.CategoryCreate{
		Name:  input.Body.Name,
		Color: input.Body.Color,
	})
	if err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to create category")
	}
	return &CategoryOutput{Body: fromService(category)}, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteCategoryInput) (*struct{}, error) {
	email, err := handlers.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	if err = h.CategoryService.DeleteCategory(ctx, email, input.ID); err != nil {
		return nil, handlers.ToHumaError(ctx, err, "failed to delete category")
	}
	return nil, nil
}
