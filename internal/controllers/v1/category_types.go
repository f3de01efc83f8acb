package v1

import (
	"github.com/mybudget-app/backend/internal/models"
)

// Category is the API representation of a spending category.
type Category struct {
	models.DefaultModel
	Name string `json:"name" example:"Food"`
	Icon string `json:"icon" example:"🍔"`
}

func newCategory(model models.Category) Category {
	return Category{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Icon:         model.Icon,
	}
}

type CategoryResponse struct {
	Data  *Category `json:"data"`
	Error *string   `json:"error"`
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`
	Error *string    `json:"error"`
}
