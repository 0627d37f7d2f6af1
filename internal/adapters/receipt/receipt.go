// Package receipt assembles the printable order receipt as plain data.
// Page layout, fonts and rendering belong to an external renderer; this
// package only fixes the required content and its order of presentation.
package receipt

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
)

type Line struct {
	Ref         string          `json:"ref"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

type Document struct {
	Title         string          `json:"title"`
	Brand         string          `json:"brand"`
	OrderNumber   string          `json:"orderNumber"`
	Date          time.Time       `json:"date"`
	StatusLabel   string          `json:"statusLabel"`
	PaymentLabel  string          `json:"paymentLabel"`
	CustomerName  string          `json:"customerName"`
	Lines         []Line          `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	ShowIBAN      bool            `json:"showIban"`
	IBAN          string          `json:"iban,omitempty"`
	Footer        string          `json:"footer"`
}

// Build lays out one order as a receipt document. The IBAN block appears
// only for bank-transfer orders with a configured IBAN.
func Build(o *domain.Order, s *domain.Settings) *Document {
	brand := s.BusinessName
	if brand == "" {
		brand = s.OwnerName
	}

	doc := &Document{
		Title:         "Bon de commande",
		Brand:         brand,
		OrderNumber:   o.OrderNumber,
		Date:          o.CreatedAt,
		StatusLabel:   domain.StatusLabels[o.Status],
		PaymentLabel:  domain.PaymentLabels[o.PaymentMethod],
		CustomerName:  o.CustomerName,
		Subtotal:      o.Subtotal,
		TotalDiscount: o.TotalDiscount,
		TotalAmount:   o.TotalAmount,
		Footer:        "Merci pour votre commande ♥",
	}
	for _, it := range o.Items {
		doc.Lines = append(doc.Lines, Line{
			Ref:         it.ProductRef,
			Name:        it.ProductName,
			Quantity:    it.Quantity,
			DiscountPct: it.DiscountPct,
			LineTotal:   it.LineTotal,
		})
	}
	if o.PaymentMethod == domain.PaymentTransfer && s.IBAN != "" {
		doc.ShowIBAN = true
		doc.IBAN = s.IBAN
	}
	return doc
}
