package domain

import "context"

type ProductRepo interface {
	List(ctx context.Context) ([]Product, error)
	ListActive(ctx context.Context) ([]Product, error)
	Find(ctx context.Context, id uint) (*Product, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
}

type CustomerRepo interface {
	List(ctx context.Context) ([]Customer, error)
	Find(ctx context.Context, id uint) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uint) error
}

type OrderRepo interface {
	List(ctx context.Context) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]Order, error)
	Find(ctx context.Context, id uint) (*Order, error)
	Save(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uint) error
	CountByNumber(ctx context.Context, number string) (int64, error)
}

type SettingsRepo interface {
	Find(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

// BackupStore performs the all-or-nothing restore: clear the four
// collections and bulk-insert the payload inside one transaction, assigning
// fresh identities and rewriting cross-entity references to them.
type BackupStore interface {
	ReplaceAll(ctx context.Context, payload *BackupPayload) error
}
