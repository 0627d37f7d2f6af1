package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id,omitempty"`
	Name      string          `gorm:"size:180;index" json:"name"`
	Reference string          `gorm:"size:60;index" json:"reference"`
	Family    string          `gorm:"size:100" json:"family"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Active    bool            `gorm:"index" json:"isActive"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// UnmarshalJSON keeps the historical "absent means active" rule at the
// boundary: only an explicit false deactivates a product. Inside the domain
// Active is a plain two-valued bool.
func (p *Product) UnmarshalJSON(b []byte) error {
	type alias Product
	aux := struct {
		*alias
		IsActive *bool `json:"isActive"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.Active = aux.IsActive == nil || *aux.IsActive
	return nil
}
