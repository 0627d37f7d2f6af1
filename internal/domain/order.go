package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft" // legacy, still accepted from old backups
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCard     PaymentMethod = "card"
	PaymentPending  PaymentMethod = "pending"
)

type SupplierStatus string

const (
	SupplierToOrder           SupplierStatus = "to_order"
	SupplierOrdered           SupplierStatus = "ordered"
	SupplierDeliveredToClient SupplierStatus = "delivered_to_client"
)

var StatusLabels = map[OrderStatus]string{
	OrderStatusDraft:     "Brouillon",
	OrderStatusPending:   "En attente paiement",
	OrderStatusPaid:      "Payée",
	OrderStatusDelivered: "Livrée",
	OrderStatusCancelled: "Annulée",
}

var PaymentLabels = map[PaymentMethod]string{
	PaymentCash:     "Espèces",
	PaymentTransfer: "Virement",
	PaymentCard:     "Carte externe",
	PaymentPending:  "En attente",
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id,omitempty"`
	OrderID     uint            `gorm:"index" json:"orderId,omitempty"`
	ProductID   uint            `gorm:"index" json:"productId"`
	ProductName string          `gorm:"size:180" json:"productName"`
	ProductRef  string          `gorm:"size:60" json:"productRef"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)" json:"unitPrice"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	DiscountPct decimal.Decimal `gorm:"type:decimal(5,2)" json:"discountPct"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2)" json:"lineTotal"`
}

type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id,omitempty"`
	OrderNumber    string          `gorm:"size:30;uniqueIndex" json:"orderNumber"`
	Status         OrderStatus     `gorm:"type:varchar(20);index" json:"status"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);index" json:"paymentMethod"`
	CustomerID     uint            `gorm:"index" json:"customerId"`
	CustomerName   string          `gorm:"size:180" json:"customerName"`
	Notes          string          `gorm:"type:text" json:"notes"`
	Items          []OrderItem     `json:"items"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	TotalDiscount  decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalDiscount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalAmount"`
	SupplierStatus SupplierStatus  `gorm:"type:varchar(30)" json:"supplierStatus,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	PaidAt         *time.Time      `json:"paidAt,omitempty"`
	DeliveredAt    *time.Time      `json:"deliveredAt,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// Gross is the pre-discount amount of the line.
func (it *OrderItem) Gross() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// DiscountAmount is unitPrice × quantity × discountPct/100.
func (it *OrderItem) DiscountAmount() decimal.Decimal {
	return it.Gross().Mul(it.DiscountPct).Div(hundred)
}

// Recompute rederives every cached total from the line inputs. LineTotal,
// Subtotal, TotalDiscount and TotalAmount are stored but never authoritative:
// any mutation of a quantity or discount must go through here before the
// order is persisted, so that totalAmount = subtotal − totalDiscount = Σ lineTotal
// holds after every write.
func (o *Order) Recompute() {
	subtotal := decimal.Zero
	discount := decimal.Zero
	for i := range o.Items {
		it := &o.Items[i]
		gross := it.Gross()
		disc := it.DiscountAmount()
		it.LineTotal = gross.Sub(disc)
		subtotal = subtotal.Add(gross)
		discount = discount.Add(disc)
	}
	o.Subtotal = subtotal
	o.TotalDiscount = discount
	o.TotalAmount = subtotal.Sub(discount)
}

// nextStatus is the single allowed forward transition from each state.
// Terminal states have no entry. Cancellation is a separate action, not a
// row in this table.
var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusDraft:   OrderStatusPending,
	OrderStatusPending: OrderStatusPaid,
	OrderStatusPaid:    OrderStatusDelivered,
}

func NextStatus(s OrderStatus) (OrderStatus, bool) {
	to, ok := nextStatus[s]
	return to, ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanCancel reports whether the order may still be cancelled: any time
// before delivery, and never twice.
func (s OrderStatus) CanCancel() bool { return !s.Terminal() }

// CountsAsRevenue reports whether the order participates in revenue
// aggregation ("paid" in the revenue sense includes delivered).
func (s OrderStatus) CountsAsRevenue() bool {
	return s == OrderStatusPaid || s == OrderStatusDelivered
}

// InitialStatus maps the payment method chosen at creation to the first
// order status: deferred payment starts pending, everything else is treated
// as settled on the spot.
func (m PaymentMethod) InitialStatus() OrderStatus {
	if m == PaymentPending {
		return OrderStatusPending
	}
	return OrderStatusPaid
}

// Normalize resolves the historical empty value to to_order.
func (s SupplierStatus) Normalize() SupplierStatus {
	if s == "" {
		return SupplierToOrder
	}
	return s
}

// Advance moves the supplier sub-status one step forward; it is a no-op at
// the end of the chain.
func (s SupplierStatus) Advance() SupplierStatus {
	switch s.Normalize() {
	case SupplierToOrder:
		return SupplierOrdered
	case SupplierOrdered:
		return SupplierDeliveredToClient
	default:
		return SupplierDeliveredToClient
	}
}

// SupplierTrackable reports whether the supplier sub-status is meaningful
// for the current primary status.
func (o *Order) SupplierTrackable() bool {
	return o.Status.CountsAsRevenue()
}
