package products

import (
	"github.com/marketloop/storefront-backend/pkg/db/models"
	"github.com/marketloop/storefront-backend/pkg/pagination"
)

// ListProductsInput carries the catalog listing filters.
type ListProductsInput struct {
	Category   string
	Search     string
	Pagination pagination.Params
}

// ProductListResult pairs a catalog page with its metadata.
type ProductListResult struct {
	Products []models.Product `json:"products"`
	Meta     pagination.Meta  `json:"pagination"`
}

// AddReviewRequest is the payload for appending a review to a product.
type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}
