package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
)

type OrderUC struct {
	Orders    domain.OrderRepo
	Products  domain.ProductRepo
	Customers domain.CustomerRepo

	validate *validator.Validate
}

type CreateOrderItemInput struct {
	ProductID   uint    `json:"productId" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	DiscountPct float64 `json:"discountPct" validate:"min=0,max=100"`
}

type CreateOrderInput struct {
	CustomerID    uint                   `json:"customerId" validate:"required"`
	PaymentMethod domain.PaymentMethod   `json:"paymentMethod" validate:"required,oneof=cash transfer card pending"`
	Notes         string                 `json:"notes"`
	Items         []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

func (uc *OrderUC) validator() *validator.Validate {
	if uc.validate == nil {
		uc.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return uc.validate
}

// List returns all orders, newest first.
func (uc *OrderUC) List(ctx context.Context) ([]domain.Order, error) {
	return uc.Orders.List(ctx)
}

// ListByCustomer returns one customer's orders, newest first.
func (uc *OrderUC) ListByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error) {
	return uc.Orders.ListByCustomer(ctx, customerID)
}

func (uc *OrderUC) Get(ctx context.Context, id uint) (*domain.Order, error) {
	return uc.Orders.Find(ctx, id)
}

func (uc *OrderUC) Delete(ctx context.Context, id uint) error {
	return uc.Orders.Delete(ctx, id)
}

// Create builds an order from a validated cart. Product name, reference and
// price are copied by value at this point: later catalog edits never change
// the order. The initial status follows the payment method — only deferred
// payment starts at pending, everything else is settled on the spot.
func (uc *OrderUC) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if err := uc.validator().Struct(in); err != nil {
		return nil, err
	}

	customer, err := uc.Customers.Find(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &domain.Order{
		Status:        in.PaymentMethod.InitialStatus(),
		PaymentMethod: in.PaymentMethod,
		CustomerID:    customer.ID,
		CustomerName:  customer.FullName(),
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if order.Status == domain.OrderStatusPaid {
		order.PaidAt = &now
	}

	for _, it := range in.Items {
		product, err := uc.Products.Find(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductRef:  product.Reference,
			UnitPrice:   product.Price,
			Quantity:    it.Quantity,
			DiscountPct: decimal.NewFromFloat(it.DiscountPct),
		})
	}
	order.Recompute()

	number, err := uc.freshOrderNumber(ctx, now)
	if err != nil {
		return nil, err
	}
	order.OrderNumber = number

	if err := uc.Orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Save re-persists an existing order after recomputing its cached totals, so
// no mutation path can leave lineTotal/subtotal/totalAmount stale.
func (uc *OrderUC) Save(ctx context.Context, o *domain.Order) error {
	o.Recompute()
	o.UpdatedAt = time.Now()
	if o.OrderNumber == "" {
		n, err := uc.freshOrderNumber(ctx, time.Now())
		if err != nil {
			return err
		}
		o.OrderNumber = n
	}
	return uc.Orders.Save(ctx, o)
}

// ChangeStatus applies one transition from the lookup table, or a
// cancellation while the order is not terminal. Anything else is rejected.
func (uc *OrderUC) ChangeStatus(ctx context.Context, id uint, to domain.OrderStatus) (*domain.Order, error) {
	order, err := uc.Orders.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch {
	case to == domain.OrderStatusCancelled:
		if !order.Status.CanCancel() {
			return nil, domain.ErrInvalidTransition
		}
	default:
		next, ok := domain.NextStatus(order.Status)
		if !ok || next != to {
			return nil, domain.ErrInvalidTransition
		}
		if to == domain.OrderStatusPaid {
			order.PaidAt = &now
		}
		if to == domain.OrderStatusDelivered {
			order.DeliveredAt = &now
		}
	}

	order.Status = to
	order.UpdatedAt = now
	if err := uc.Orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel is the always-available action while the order is not terminal.
func (uc *OrderUC) Cancel(ctx context.Context, id uint) (*domain.Order, error) {
	return uc.ChangeStatus(ctx, id, domain.OrderStatusCancelled)
}

// AdvanceSupplier moves the supplier fulfillment sub-status one step. It is
// only meaningful once the order is paid or delivered and never touches the
// primary status or the totals.
func (uc *OrderUC) AdvanceSupplier(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := uc.Orders.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.SupplierTrackable() {
		return nil, domain.ErrInvalidTransition
	}
	order.SupplierStatus = order.SupplierStatus.Advance()
	order.UpdatedAt = time.Now()
	if err := uc.Orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ResetSupplier forces the sub-status back to to_order from any state.
func (uc *OrderUC) ResetSupplier(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := uc.Orders.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.SupplierTrackable() {
		return nil, domain.ErrInvalidTransition
	}
	order.SupplierStatus = domain.SupplierToOrder
	order.UpdatedAt = time.Now()
	if err := uc.Orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// freshOrderNumber generates CMD-YYYYMMDD-NNNN and retries on the rare
// collision with an existing number; the store backs this with a unique
// index as a last line of defense.
func (uc *OrderUC) freshOrderNumber(ctx context.Context, now time.Time) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		n := fmt.Sprintf("CMD-%s-%04d", now.Format("20060102"), rand.Intn(9000)+1000)
		count, err := uc.Orders.CountByNumber(ctx, n)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return n, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique order number")
}
