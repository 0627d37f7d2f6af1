package usecase

import (
	"context"
	"sort"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
)

type fakeProductRepo struct {
	seq   uint
	store map[uint]domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{store: map[uint]domain.Product{}}
}

func (r *fakeProductRepo) List(context.Context) ([]domain.Product, error) {
	list := make([]domain.Product, 0, len(r.store))
	for _, p := range r.store {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *fakeProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	all, _ := r.List(ctx)
	active := all[:0]
	for _, p := range all {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (r *fakeProductRepo) Find(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := r.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *domain.Product) error {
	if p.ID == 0 {
		r.seq++
		p.ID = r.seq
	}
	r.store[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.store, id)
	return nil
}

type fakeCustomerRepo struct {
	seq   uint
	store map[uint]domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{store: map[uint]domain.Customer{}}
}

func (r *fakeCustomerRepo) List(context.Context) ([]domain.Customer, error) {
	list := make([]domain.Customer, 0, len(r.store))
	for _, c := range r.store {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LastName < list[j].LastName })
	return list, nil
}

func (r *fakeCustomerRepo) Find(_ context.Context, id uint) (*domain.Customer, error) {
	c, ok := r.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) Save(_ context.Context, c *domain.Customer) error {
	if c.ID == 0 {
		r.seq++
		c.ID = r.seq
	}
	r.store[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uint) error {
	delete(r.store, id)
	return nil
}

type fakeOrderRepo struct {
	seq   uint
	store map[uint]domain.Order

	// takenNumbers makes CountByNumber report a collision for the first n
	// calls, to exercise the order-number retry.
	takenNumbers int
	countCalls   int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{store: map[uint]domain.Order{}}
}

func (r *fakeOrderRepo) List(context.Context) ([]domain.Order, error) {
	list := make([]domain.Order, 0, len(r.store))
	for _, o := range r.store {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error) {
	all, _ := r.List(ctx)
	mine := all[:0]
	for _, o := range all {
		if o.CustomerID == customerID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

func (r *fakeOrderRepo) Find(_ context.Context, id uint) (*domain.Order, error) {
	o, ok := r.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, o *domain.Order) error {
	if o.ID == 0 {
		r.seq++
		o.ID = r.seq
	}
	r.store[o.ID] = *o
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uint) error {
	delete(r.store, id)
	return nil
}

func (r *fakeOrderRepo) CountByNumber(context.Context, string) (int64, error) {
	r.countCalls++
	if r.takenNumbers > 0 {
		r.takenNumbers--
		return 1, nil
	}
	return 0, nil
}

type fakeSettingsRepo struct {
	current *domain.Settings
}

func (r *fakeSettingsRepo) Find(context.Context) (*domain.Settings, error) {
	if r.current == nil {
		return nil, domain.ErrNotFound
	}
	cp := *r.current
	return &cp, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, s *domain.Settings) error {
	if s.ID == 0 {
		s.ID = 1
	}
	cp := *s
	r.current = &cp
	return nil
}

type fakeBackupStore struct {
	lastPayload *domain.BackupPayload
	calls       int
	err         error
}

func (s *fakeBackupStore) ReplaceAll(_ context.Context, p *domain.BackupPayload) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.lastPayload = p
	return nil
}
