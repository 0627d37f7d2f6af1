package usecase

import (
	"context"
	"time"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
)

type CustomerUC struct {
	Customers domain.CustomerRepo
}

// List returns all customers sorted by last name.
func (uc *CustomerUC) List(ctx context.Context) ([]domain.Customer, error) {
	return uc.Customers.List(ctx)
}

func (uc *CustomerUC) Get(ctx context.Context, id uint) (*domain.Customer, error) {
	return uc.Customers.Find(ctx, id)
}

func (uc *CustomerUC) Save(ctx context.Context, c *domain.Customer) error {
	now := time.Now()
	c.UpdatedAt = now
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	return uc.Customers.Save(ctx, c)
}

// Delete has no cascade: the customer's historical orders keep their
// denormalized name snapshot.
func (uc *CustomerUC) Delete(ctx context.Context, id uint) error {
	return uc.Customers.Delete(ctx, id)
}
