package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
)

type BackupUC struct {
	Products  domain.ProductRepo
	Customers domain.CustomerRepo
	Orders    domain.OrderRepo
	Settings  *SettingsUC
	Store     domain.BackupStore
}

// Export snapshots the four collections into one versioned document. The
// settings row travels without its identity (it is store-assigned and must
// not be replayed). LastBackupAt is stamped as a side effect of exporting,
// whether or not the user keeps the produced file.
func (uc *BackupUC) Export(ctx context.Context) (*domain.BackupPayload, error) {
	products, err := uc.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := uc.Customers.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := uc.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := uc.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stripped := *settings
	stripped.ID = 0

	payload := &domain.BackupPayload{
		Version:    domain.BackupVersion,
		ExportedAt: now,
		Products:   products,
		Customers:  customers,
		Orders:     orders,
		Settings:   stripped,
	}

	settings.LastBackupAt = &now
	if err := uc.Settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	return payload, nil
}

// Filename suggests the download name for an export taken today.
func (uc *BackupUC) Filename(now time.Time) string {
	return fmt.Sprintf("chowgann-backup-%s.backup", now.Format("20060102"))
}

// Parse decodes and validates a backup document. A payload that does not
// declare a version and an export timestamp is rejected before any store
// mutation can happen.
func (uc *BackupUC) Parse(data []byte) (*domain.BackupPayload, error) {
	var payload domain.BackupPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if !payload.Valid() {
		return nil, domain.ErrInvalidBackup
	}
	return &payload, nil
}

// Import replaces the whole store with the payload, all or nothing. A
// failure partway rolls back and leaves the prior state intact.
func (uc *BackupUC) Import(ctx context.Context, payload *domain.BackupPayload) error {
	if payload == nil || !payload.Valid() {
		return domain.ErrInvalidBackup
	}
	return uc.Store.ReplaceAll(ctx, payload)
}

// Summary is the one-line preview shown before a restore is confirmed.
func (uc *BackupUC) Summary(payload *domain.BackupPayload) string {
	return fmt.Sprintf("%d clients • %d produits • %d commandes",
		len(payload.Customers), len(payload.Products), len(payload.Orders))
}
