package usecase

import (
	"context"
	"time"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
}

// List returns the whole catalog sorted by name.
func (uc *ProductUC) List(ctx context.Context) ([]domain.Product, error) {
	return uc.Products.List(ctx)
}

// ListActive filters out products explicitly marked inactive.
func (uc *ProductUC) ListActive(ctx context.Context) ([]domain.Product, error) {
	return uc.Products.ListActive(ctx)
}

func (uc *ProductUC) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return uc.Products.Find(ctx, id)
}

// Save upserts: a zero id means insert. UpdatedAt is stamped on every save,
// CreatedAt only the first time, so repeated saves of the same record are
// idempotent on it.
func (uc *ProductUC) Save(ctx context.Context, p *domain.Product) error {
	now := time.Now()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return uc.Products.Save(ctx, p)
}

// Delete removes by id; deleting a missing id is a silent no-op. Orders that
// captured the product by value are untouched.
func (uc *ProductUC) Delete(ctx context.Context, id uint) error {
	return uc.Products.Delete(ctx, id)
}
