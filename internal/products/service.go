package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketloop/storefront-backend/pkg/db"
	"github.com/marketloop/storefront-backend/pkg/db/models"
	pkgerrors "github.com/marketloop/storefront-backend/pkg/errors"
	"github.com/marketloop/storefront-backend/pkg/pagination"
)

// Service exposes the storefront catalog operations.
type Service interface {
	List(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	Get(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	AddReview(ctx context.Context, userID uuid.UUID, productID uuid.UUID, req AddReviewRequest) (*models.Product, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo  *Repository
	tx    txRunner
	users userReader
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, tx txRunner, users userReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, tx: tx, users: users}, nil
}

func (s *service) List(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	if rows == nil {
		rows = []models.Product{}
	}
	return &ProductListResult{
		Products: rows,
		Meta:     pagination.BuildMeta(input.Pagination, total),
	}, nil
}

func (s *service) Get(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByIDWithReviews(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) AddReview(ctx context.Context, userID uuid.UUID, productID uuid.UUID, req AddReviewRequest) (*models.Product, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		review := &models.ProductReview{
			ID:        uuid.New(),
			ProductID: productID,
			UserID:    userID,
			Author:    user.Name,
			Rating:    req.Rating,
			Comment:   comment,
		}
		if err := txRepo.CreateReview(ctx, review); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeConflict, "product already reviewed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert review")
		}

		if err := txRepo.RefreshRatingStats(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh rating stats")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add review")
	}

	product, err := s.repo.FindByIDWithReviews(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return product, nil
}
