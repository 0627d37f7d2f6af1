package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
)

type BackupStore struct{ db *gorm.DB }

func NewBackupStore(db *gorm.DB) *BackupStore { return &BackupStore{db: db} }

// ReplaceAll restores a backup payload inside one transaction: clear the
// four collections, bulk-insert with fresh identities, and rewrite
// customer/product references through old-id→new-id maps. If anything fails
// the transaction rolls back and the prior store state survives untouched.
func (s *BackupStore) ReplaceAll(ctx context.Context, payload *domain.BackupPayload) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&domain.OrderItem{}, &domain.Order{}, &domain.Customer{}, &domain.Product{}, &domain.Settings{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		productIDs := make(map[uint]uint, len(payload.Products))
		for _, p := range payload.Products {
			oldID := p.ID
			p.ID = 0
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			productIDs[oldID] = p.ID
		}

		customerIDs := make(map[uint]uint, len(payload.Customers))
		for _, c := range payload.Customers {
			oldID := c.ID
			c.ID = 0
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
			customerIDs[oldID] = c.ID
		}

		for _, o := range payload.Orders {
			o.ID = 0
			o.CustomerID = customerIDs[o.CustomerID]
			items := make([]domain.OrderItem, len(o.Items))
			for i, it := range o.Items {
				it.ID = 0
				it.OrderID = 0
				it.ProductID = productIDs[it.ProductID]
				items[i] = it
			}
			o.Items = items
			if err := tx.Create(&o).Error; err != nil {
				return err
			}
		}

		settings := payload.Settings
		settings.ID = 0
		return tx.Create(&settings).Error
	})
}
