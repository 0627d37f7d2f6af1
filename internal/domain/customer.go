package domain

import "time"

type Customer struct {
	ID         uint      `gorm:"primaryKey" json:"id,omitempty"`
	FirstName  string    `gorm:"size:140" json:"firstName"`
	LastName   string    `gorm:"size:140;index" json:"lastName"`
	Phone      string    `gorm:"size:60" json:"phone"`
	Email      string    `gorm:"size:140" json:"email"`
	HasConsent bool      `json:"hasConsent"`
	Notes      string    `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (c *Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
