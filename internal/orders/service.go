package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketloop/storefront-backend/internal/cart"
	"github.com/marketloop/storefront-backend/internal/pricing"
	"github.com/marketloop/storefront-backend/internal/products"
	"github.com/marketloop/storefront-backend/pkg/db/models"
	"github.com/marketloop/storefront-backend/pkg/enums"
	pkgerrors "github.com/marketloop/storefront-backend/pkg/errors"
	"github.com/marketloop/storefront-backend/pkg/metrics"
	"github.com/marketloop/storefront-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*models.Order, error)
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, orderID uuid.UUID) (*models.Order, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	AdminListAll(ctx context.Context, params pagination.Params) (*AdminListResult, error)
	MarkPaid(ctx context.Context, actorID uuid.UUID, orderID uuid.UUID, req MarkPaidRequest) (*models.Order, error)
	MarkDelivered(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	SetStatus(ctx context.Context, orderID uuid.UUID, req SetStatusRequest) (*models.Order, error)
}

type service struct {
	repo         *Repository
	cartRepo     *cart.Repository
	productRepo  *products.Repository
	tx           txRunner
	orderMetrics *metrics.OrderMetrics
}

// ServiceParams bundles the dependencies for the order service.
type ServiceParams struct {
	Repo        *Repository
	CartRepo    *cart.Repository
	ProductRepo *products.Repository
	Tx          txRunner
	Metrics     *metrics.OrderMetrics
}

// NewService builds an order service with the required dependencies.
// Metrics may be nil.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:         params.Repo,
		cartRepo:     params.CartRepo,
		productRepo:  params.ProductRepo,
		tx:           params.Tx,
		orderMetrics: params.Metrics,
	}, nil
}

// Create turns the caller's cart into an order. The whole sequence runs in
// one transaction: a failed stock check rolls back every prior decrement, so
// no order is recorded without its matching stock movement and cart clear.
func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !req.ShippingAddress.IsComplete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address must include street, city, state, zip_code and country")
	}
	method, err := enums.ParsePaymentMethod(strings.TrimSpace(req.PaymentMethod))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	var orderID uuid.UUID
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.repo.WithTx(tx)

		userCart, err := cartRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(userCart.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		lines := make([]pricing.Line, 0, len(userCart.Items))
		snapshots := make([]models.OrderLineItem, 0, len(userCart.Items))
		for _, item := range userCart.Items {
			if item.Product == nil {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}

			ok, err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !ok {
				live, err := productRepo.FindByID(ctx, item.ProductID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
					}
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
				}
				return pkgerrors.Newf(pkgerrors.CodeInsufficientStock,
					"insufficient stock for %s", live.Name).
					WithDetails(map[string]any{
						"product_id": live.ID,
						"product":    live.Name,
						"available":  live.Stock,
					})
			}

			// charge the product's current price, not the one captured at
			// add-to-cart time
			lines = append(lines, pricing.Line{UnitPrice: item.Product.Price, Quantity: item.Quantity})
			snapshots = append(snapshots, models.OrderLineItem{
				ID:        uuid.New(),
				ProductID: item.ProductID,
				Name:      item.Product.Name,
				ImageURL:  item.Product.Images.FirstURL(),
				Quantity:  item.Quantity,
				UnitPrice: item.Product.Price,
			})
		}

		totals := pricing.Calculate(lines)

		order := &models.Order{
			ID:              uuid.New(),
			OrderNumber:     newOrderNumber(),
			UserID:          userID,
			Items:           snapshots,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   method,
			ItemsPrice:      totals.ItemsPrice,
			TaxPrice:        totals.TaxPrice,
			ShippingPrice:   totals.ShippingPrice,
			TotalPrice:      totals.TotalPrice,
			Status:          enums.OrderStatusPending,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
		}
		orderID = order.ID

		if err := cartRepo.DeleteItems(ctx, userCart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return nil
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			s.orderMetrics.IncFailed(strings.ToLower(string(typed.Code())))
			return nil, err
		}
		s.orderMetrics.IncFailed("internal")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	s.orderMetrics.IncCreated()
	return s.load(ctx, orderID)
}

func (s *service) GetByID(ctx context.Context, actorID uuid.UUID, actorRole enums.UserRole, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actorID && actorRole != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
	}
	return order, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	if rows == nil {
		rows = []models.Order{}
	}
	return rows, nil
}

func (s *service) AdminListAll(ctx context.Context, params pagination.Params) (*AdminListResult, error) {
	rows, total, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list all orders")
	}
	if rows == nil {
		rows = []models.Order{}
	}
	return &AdminListResult{
		Orders: rows,
		Meta:   NewAdminListMeta(pagination.BuildMeta(params, total)),
	}, nil
}

// MarkPaid records the gateway result verbatim. Only the owner may confirm
// payment on their order.
func (s *service) MarkPaid(ctx context.Context, actorID uuid.UUID, orderID uuid.UUID, req MarkPaidRequest) (*models.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"is_paid": true,
		"paid_at": now,
	}
	if req.PaymentResult != nil {
		updates["payment_result"] = req.PaymentResult
	}
	if err := s.repo.Update(ctx, order.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order paid")
	}
	return s.load(ctx, orderID)
}

// MarkDelivered flips the delivery flags and forces status to delivered.
func (s *service) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == enums.OrderStatusDelivered {
		return order, nil
	}
	if !order.Status.CanTransitionTo(enums.OrderStatusDelivered) {
		return nil, pkgerrors.Newf(pkgerrors.CodeStateConflict,
			"cannot deliver an order in status %s", order.Status)
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"is_delivered": true,
		"delivered_at": now,
		"status":       enums.OrderStatusDelivered,
	}
	if err := s.repo.Update(ctx, order.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order delivered")
	}
	s.orderMetrics.IncTransition(order.Status.String(), enums.OrderStatusDelivered.String())
	return s.load(ctx, orderID)
}

// SetStatus applies an explicit lifecycle transition. Cancelling an order
// returns its line quantities to catalog stock.
func (s *service) SetStatus(ctx context.Context, orderID uuid.UUID, req SetStatusRequest) (*models.Order, error) {
	target, err := enums.ParseOrderStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	var from enums.OrderStatus
	var noop bool
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orderRepo := s.repo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		order, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status == target {
			noop = true
			return nil
		}
		if !order.Status.CanTransitionTo(target) {
			return pkgerrors.Newf(pkgerrors.CodeStateConflict,
				"cannot move order from %s to %s", order.Status, target)
		}
		from = order.Status

		updates := map[string]any{"status": target}
		if target == enums.OrderStatusDelivered {
			now := time.Now().UTC()
			updates["is_delivered"] = true
			updates["delivered_at"] = now
		}
		// guard against a concurrent transition between the read above and
		// this write, so a cancel can never restore stock twice
		changed, err := orderRepo.UpdateStatusIf(ctx, order.ID, order.Status, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !changed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
		}

		if target == enums.OrderStatusCancelled {
			for _, item := range order.Items {
				if err := productRepo.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore stock")
				}
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set order status")
	}

	if !noop {
		s.orderMetrics.IncTransition(from.String(), target.String())
	}
	return s.load(ctx, orderID)
}

func (s *service) load(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
