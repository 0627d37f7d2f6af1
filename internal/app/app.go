package app

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/GLSDEV26/CHOWGANN/internal/adapters/httpserver"
	"github.com/GLSDEV26/CHOWGANN/internal/adapters/repo/sqlite"
	"github.com/GLSDEV26/CHOWGANN/internal/domain"
	"github.com/GLSDEV26/CHOWGANN/internal/usecase"
)

type App struct {
	DB         *gorm.DB
	ProductUC  *usecase.ProductUC
	CustomerUC *usecase.CustomerUC
	OrderUC    *usecase.OrderUC
	SettingsUC *usecase.SettingsUC
	BackupUC   *usecase.BackupUC
	StatsUC    *usecase.StatsUC
}

func NewApp(db *gorm.DB) (*App, error) {
	prodRepo := sqlite.NewProductRepo(db)
	custRepo := sqlite.NewCustomerRepo(db)
	orderRepo := sqlite.NewOrderRepo(db)
	settingsRepo := sqlite.NewSettingsRepo(db)
	backupStore := sqlite.NewBackupStore(db)

	a := &App{DB: db}
	a.ProductUC = &usecase.ProductUC{Products: prodRepo}
	a.CustomerUC = &usecase.CustomerUC{Customers: custRepo}
	a.OrderUC = &usecase.OrderUC{Orders: orderRepo, Products: prodRepo, Customers: custRepo}
	a.SettingsUC = &usecase.SettingsUC{Settings: settingsRepo}
	a.BackupUC = &usecase.BackupUC{
		Products:  prodRepo,
		Customers: custRepo,
		Orders:    orderRepo,
		Settings:  a.SettingsUC,
		Store:     backupStore,
	}
	a.StatsUC = &usecase.StatsUC{Orders: orderRepo}
	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.ProductUC, a.CustomerUC, a.OrderUC, a.SettingsUC, a.BackupUC, a.StatsUC)
}

func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(
		&domain.Product{}, &domain.Customer{}, &domain.Order{}, &domain.OrderItem{}, &domain.Settings{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)").Error
	_ = a.DB.Exec("UPDATE products SET active = true WHERE active IS NULL").Error

	return nil
}
