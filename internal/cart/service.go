package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketloop/storefront-backend/pkg/db/models"
	pkgerrors "github.com/marketloop/storefront-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes the cart aggregate operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*View, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, req UpdateItemRequest) (*View, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*View, error)
	Clear(ctx context.Context, userID uuid.UUID) (*View, error)
}

type service struct {
	repo     *Repository
	tx       txRunner
	products productReader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo *Repository, tx txRunner, products productReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{repo: repo, tx: tx, products: products}, nil
}

// Get returns the caller's cart, creating an empty one on first access.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	cart, err := s.getOrCreate(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	return buildView(cart), nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if req.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := s.getOrCreate(ctx, repo, userID)
		if err != nil {
			return err
		}

		product, err := s.products.FindByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if product.Stock < qty {
			return insufficientStock(product)
		}

		existing, err := repo.FindItemByProduct(ctx, cart.ID, product.ID)
		switch {
		case err == nil:
			// merge: bump quantity and refresh the captured price
			return repo.UpdateItem(ctx, existing.ID, map[string]any{
				"quantity":   existing.Quantity + qty,
				"unit_price": product.Price,
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return repo.CreateItem(ctx, &models.CartItem{
				ID:        uuid.New(),
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  qty,
				UnitPrice: product.Price,
			})
		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}
	}); err != nil {
		return nil, asServiceError(err, "add cart item")
	}

	return s.reload(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, req UpdateItemRequest) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := s.findCart(ctx, repo, userID)
		if err != nil {
			return err
		}

		item, err := repo.FindItem(ctx, cart.ID, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}

		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if product.Stock < req.Quantity {
			return insufficientStock(product)
		}

		// quantity only; the captured price is deliberately left alone here
		return repo.UpdateItem(ctx, item.ID, map[string]any{"quantity": req.Quantity})
	}); err != nil {
		return nil, asServiceError(err, "update cart item")
	}

	return s.reload(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cart, err := s.findCart(ctx, repo, userID)
		if err != nil {
			return err
		}
		// removing an absent line is a no-op
		return repo.DeleteItem(ctx, cart.ID, itemID)
	}); err != nil {
		return nil, asServiceError(err, "remove cart item")
	}

	return s.reload(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cart, err := s.findCart(ctx, repo, userID)
		if err != nil {
			return err
		}
		return repo.DeleteItems(ctx, cart.ID)
	}); err != nil {
		return nil, asServiceError(err, "clear cart")
	}

	return s.reload(ctx, userID)
}

func (s *service) getOrCreate(ctx context.Context, repo *Repository, userID uuid.UUID) (*models.Cart, error) {
	cart, err := repo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	fresh := &models.Cart{ID: uuid.New(), UserID: userID}
	if err := repo.Create(ctx, fresh); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	fresh.Items = []models.CartItem{}
	return fresh, nil
}

func (s *service) findCart(ctx context.Context, repo *Repository, userID uuid.UUID) (*models.Cart, error) {
	cart, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

func (s *service) reload(ctx context.Context, userID uuid.UUID) (*View, error) {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	return buildView(cart), nil
}

func insufficientStock(product *models.Product) error {
	return pkgerrors.Newf(pkgerrors.CodeInsufficientStock,
		"insufficient stock for %s", product.Name).
		WithDetails(map[string]any{
			"product_id": product.ID,
			"product":    product.Name,
			"available":  product.Stock,
		})
}

func asServiceError(err error, op string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
