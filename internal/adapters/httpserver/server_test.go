package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
	"github.com/GLSDEV26/CHOWGANN/internal/usecase"
)

type memProducts struct {
	seq   uint
	store map[uint]domain.Product
}

func (r *memProducts) List(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.store))
	for _, p := range r.store {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProducts) ListActive(ctx context.Context) ([]domain.Product, error) {
	all, _ := r.List(ctx)
	act := all[:0]
	for _, p := range all {
		if p.Active {
			act = append(act, p)
		}
	}
	return act, nil
}

func (r *memProducts) Find(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := r.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memProducts) Save(_ context.Context, p *domain.Product) error {
	if p.ID == 0 {
		r.seq++
		p.ID = r.seq
	}
	r.store[p.ID] = *p
	return nil
}

func (r *memProducts) Delete(_ context.Context, id uint) error {
	delete(r.store, id)
	return nil
}

type memCustomers struct {
	seq   uint
	store map[uint]domain.Customer
}

func (r *memCustomers) List(context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(r.store))
	for _, c := range r.store {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCustomers) Find(_ context.Context, id uint) (*domain.Customer, error) {
	c, ok := r.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memCustomers) Save(_ context.Context, c *domain.Customer) error {
	if c.ID == 0 {
		r.seq++
		c.ID = r.seq
	}
	r.store[c.ID] = *c
	return nil
}

func (r *memCustomers) Delete(_ context.Context, id uint) error {
	delete(r.store, id)
	return nil
}

type memOrders struct {
	seq   uint
	store map[uint]domain.Order
}

func (r *memOrders) List(context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.store))
	for _, o := range r.store {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOrders) ListByCustomer(ctx context.Context, id uint) ([]domain.Order, error) {
	all, _ := r.List(ctx)
	mine := all[:0]
	for _, o := range all {
		if o.CustomerID == id {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

func (r *memOrders) Find(_ context.Context, id uint) (*domain.Order, error) {
	o, ok := r.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *memOrders) Save(_ context.Context, o *domain.Order) error {
	if o.ID == 0 {
		r.seq++
		o.ID = r.seq
	}
	r.store[o.ID] = *o
	return nil
}

func (r *memOrders) Delete(_ context.Context, id uint) error {
	delete(r.store, id)
	return nil
}

func (r *memOrders) CountByNumber(context.Context, string) (int64, error) { return 0, nil }

type memSettings struct{ current *domain.Settings }

func (r *memSettings) Find(context.Context) (*domain.Settings, error) {
	if r.current == nil {
		return nil, domain.ErrNotFound
	}
	cp := *r.current
	return &cp, nil
}

func (r *memSettings) Save(_ context.Context, s *domain.Settings) error {
	if s.ID == 0 {
		s.ID = 1
	}
	cp := *s
	r.current = &cp
	return nil
}

type memBackupStore struct{ calls int }

func (s *memBackupStore) ReplaceAll(context.Context, *domain.BackupPayload) error {
	s.calls++
	return nil
}

type testEnv struct {
	handler  http.Handler
	orders   *memOrders
	settings *memSettings
	store    *memBackupStore
}

func newTestEnv() *testEnv {
	products := &memProducts{store: map[uint]domain.Product{}}
	customers := &memCustomers{store: map[uint]domain.Customer{}}
	orders := &memOrders{store: map[uint]domain.Order{}}
	settings := &memSettings{}
	store := &memBackupStore{}

	productUC := &usecase.ProductUC{Products: products}
	customerUC := &usecase.CustomerUC{Customers: customers}
	orderUC := &usecase.OrderUC{Orders: orders, Products: products, Customers: customers}
	settingsUC := &usecase.SettingsUC{Settings: settings}
	backupUC := &usecase.BackupUC{Products: products, Customers: customers, Orders: orders, Settings: settingsUC, Store: store}
	statsUC := &usecase.StatsUC{Orders: orders}

	return &testEnv{
		handler:  New(productUC, customerUC, orderUC, settingsUC, backupUC, statsUC),
		orders:   orders,
		settings: settings,
		store:    store,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestProductCRUDOverHTTP(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/products", `{"name":"Parfum X","reference":"PX-001","price":"29.90"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.NotZero(t, p.ID)
	assert.True(t, p.Active, "absent isActive defaults to active")

	rec = env.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = env.do(t, http.MethodGet, "/api/products/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/products/999", "")
	assert.Equal(t, http.StatusNoContent, rec.Code, "deleting a missing id is a silent no-op")
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/customers", `{"firstName":"Jean","lastName":"Dupont"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/products", `{"name":"Parfum X","price":"29.90"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/orders",
		`{"customerId":1,"paymentMethod":"pending","items":[{"productId":1,"quantity":2,"discountPct":10}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("53.82")))

	rec = env.do(t, http.MethodPost, "/api/orders/1/status", `{"status":"paid"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/orders/1/status", `{"status":"pending"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, "illegal transition maps to 409")

	rec = env.do(t, http.MethodPost, "/api/orders/1/supplier/advance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, domain.SupplierOrdered, order.SupplierStatus)

	rec = env.do(t, http.MethodPost, "/api/orders/1/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/orders/1/cancel", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrderEditRecomputesTotals(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/customers", `{"firstName":"Jean","lastName":"Dupont"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/products", `{"name":"Parfum X","price":"29.90"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/orders",
		`{"customerId":1,"paymentMethod":"cash","items":[{"productId":1,"quantity":2,"discountPct":10}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPut, "/api/orders/1",
		`{"items":[{"productId":1,"productName":"Parfum X","unitPrice":"29.90","quantity":3,"discountPct":"0"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].LineTotal.Equal(decimal.RequireFromString("89.70")))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("89.70")))
	assert.Equal(t, domain.OrderStatusPaid, order.Status, "an item edit leaves the status alone")
}

func TestOrderValidationMapsTo400(t *testing.T) {
	env := newTestEnv()
	env.do(t, http.MethodPost, "/api/customers", `{"firstName":"Jean","lastName":"Dupont"}`)

	rec := env.do(t, http.MethodPost, "/api/orders", `{"customerId":1,"paymentMethod":"cash","items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEPCEndpoint(t *testing.T) {
	env := newTestEnv()
	now := time.Now()
	env.orders.store[1] = domain.Order{ID: 1, Status: domain.OrderStatusPaid,
		TotalAmount: decimal.RequireFromString("53.82"), CreatedAt: now}

	rec := env.do(t, http.MethodGet, "/api/orders/1/epc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "no IBAN configured yet")

	env.settings.current = &domain.Settings{ID: 1, OwnerName: "Soléne", IBAN: "FR76 1234"}
	rec = env.do(t, http.MethodGet, "/api/orders/1/epc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	fields := strings.Split(body["payload"], "\n")
	require.Len(t, fields, 12)
	assert.Equal(t, "BCD", fields[0])
	assert.Equal(t, "FR761234", fields[6])
	assert.Equal(t, "EUR53.82", fields[7])
}

func TestBackupEndpoints(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/backup/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".backup")
	var payload domain.BackupPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, domain.BackupVersion, payload.Version)

	rec = env.do(t, http.MethodPost, "/api/backup/import", `{"products":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, env.store.calls)

	rec = env.do(t, http.MethodPost, "/api/backup/inspect", `{"version":1,"exportedAt":"2026-08-30T10:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var inspect map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inspect))
	assert.Equal(t, "0 clients • 0 produits • 0 commandes", inspect["summary"])

	rec = env.do(t, http.MethodPost, "/api/backup/import", `{"version":1,"exportedAt":"2026-08-30T10:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.store.calls)
}
