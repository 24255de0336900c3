package lifecycle

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/models"
	"github.com/orcahub/OrcaHub/app/repository"
)

// memStore is an in-memory stand-in for the database. The fake
// transaction manager snapshots it before each transaction and restores
// the snapshot when the transaction function returns an error.
type memStore struct {
	budgets   map[uint]*models.Budget
	services  map[uint]*models.Service
	tokens    map[uint]*models.ConfirmationToken
	customers map[uint]*models.Customer
	nextID    uint
}

func newMemStore() *memStore {
	return &memStore{
		budgets:   make(map[uint]*models.Budget),
		services:  make(map[uint]*models.Service),
		tokens:    make(map[uint]*models.ConfirmationToken),
		customers: make(map[uint]*models.Customer),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func cloneBudget(b *models.Budget) *models.Budget {
	out := *b
	if b.ConfirmationTokenID != nil {
		v := *b.ConfirmationTokenID
		out.ConfirmationTokenID = &v
	}
	if b.DueDate != nil {
		v := *b.DueDate
		out.DueDate = &v
	}
	return &out
}

func cloneService(svc *models.Service) *models.Service {
	out := *svc
	if svc.DueDate != nil {
		v := *svc.DueDate
		out.DueDate = &v
	}
	return &out
}

func cloneToken(t *models.ConfirmationToken) *models.ConfirmationToken {
	out := *t
	return &out
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	snap.nextID = s.nextID
	for id, b := range s.budgets {
		snap.budgets[id] = cloneBudget(b)
	}
	for id, svc := range s.services {
		snap.services[id] = cloneService(svc)
	}
	for id, t := range s.tokens {
		snap.tokens[id] = cloneToken(t)
	}
	for id, c := range s.customers {
		cc := *c
		snap.customers[id] = &cc
	}
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.budgets = snap.budgets
	s.services = snap.services
	s.tokens = snap.tokens
	s.customers = snap.customers
	s.nextID = snap.nextID
}

type memBudgetRepo struct{ store *memStore }

func (r *memBudgetRepo) Create(b *models.Budget) error {
	if b.ID == 0 {
		b.ID = r.store.id()
	}
	r.store.budgets[b.ID] = cloneBudget(b)
	return nil
}

func (r *memBudgetRepo) GetByID(id, tenantID uint) (*models.Budget, error) {
	b, ok := r.store.budgets[id]
	if !ok || b.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneBudget(b), nil
}

func (r *memBudgetRepo) GetByIDForUpdate(id, tenantID uint) (*models.Budget, error) {
	return r.GetByID(id, tenantID)
}

func (r *memBudgetRepo) GetByCode(code string, tenantID uint) (*models.Budget, error) {
	for _, b := range r.store.budgets {
		if b.Code == code && b.TenantID == tenantID {
			return cloneBudget(b), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memBudgetRepo) GetByPublicID(publicID string) (*models.Budget, error) {
	for _, b := range r.store.budgets {
		if b.PublicID == publicID {
			return cloneBudget(b), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memBudgetRepo) GetByPublicIDForUpdate(publicID string) (*models.Budget, error) {
	return r.GetByPublicID(publicID)
}

func (r *memBudgetRepo) LastCodeForDate(tenantID uint, datePrefix string) (string, error) {
	last := ""
	for _, b := range r.store.budgets {
		if b.TenantID == tenantID && strings.HasPrefix(b.Code, datePrefix) && b.Code > last {
			last = b.Code
		}
	}
	return last, nil
}

func (r *memBudgetRepo) Update(b *models.Budget) error {
	if _, ok := r.store.budgets[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.store.budgets[b.ID] = cloneBudget(b)
	return nil
}

type memServiceRepo struct{ store *memStore }

func (r *memServiceRepo) Create(svc *models.Service) error {
	if svc.ID == 0 {
		svc.ID = r.store.id()
	}
	r.store.services[svc.ID] = cloneService(svc)
	return nil
}

func (r *memServiceRepo) GetByID(id, tenantID uint) (*models.Service, error) {
	svc, ok := r.store.services[id]
	if !ok || svc.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneService(svc), nil
}

func (r *memServiceRepo) ListByBudget(budgetID, tenantID uint) ([]models.Service, error) {
	var out []models.Service
	for id := uint(1); id <= r.store.nextID; id++ {
		if svc, ok := r.store.services[id]; ok && svc.BudgetID == budgetID && svc.TenantID == tenantID {
			out = append(out, *cloneService(svc))
		}
	}
	return out, nil
}

func (r *memServiceRepo) LastCodeForBudget(budgetID, tenantID uint) (string, error) {
	last := ""
	for _, svc := range r.store.services {
		if svc.BudgetID == budgetID && svc.TenantID == tenantID && svc.Code > last {
			last = svc.Code
		}
	}
	return last, nil
}

func (r *memServiceRepo) Update(svc *models.Service) error {
	if _, ok := r.store.services[svc.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.store.services[svc.ID] = cloneService(svc)
	return nil
}

type memTokenRepo struct{ store *memStore }

func (r *memTokenRepo) Create(t *models.ConfirmationToken) error {
	if t.ID == 0 {
		t.ID = r.store.id()
	}
	r.store.tokens[t.ID] = cloneToken(t)
	return nil
}

func (r *memTokenRepo) GetByID(id uint) (*models.ConfirmationToken, error) {
	t, ok := r.store.tokens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneToken(t), nil
}

func (r *memTokenRepo) GetByToken(value string) (*models.ConfirmationToken, error) {
	for _, t := range r.store.tokens {
		if t.Token == value {
			return cloneToken(t), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTokenRepo) Delete(id uint) error {
	if _, ok := r.store.tokens[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store.tokens, id)
	return nil
}

type memCustomerRepo struct{ store *memStore }

func (r *memCustomerRepo) Create(c *models.Customer) error {
	if c.ID == 0 {
		c.ID = r.store.id()
	}
	cc := *c
	r.store.customers[c.ID] = &cc
	return nil
}

func (r *memCustomerRepo) GetByID(id, tenantID uint) (*models.Customer, error) {
	c, ok := r.store.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cc := *c
	return &cc, nil
}

func (r *memCustomerRepo) Update(c *models.Customer) error {
	if _, ok := r.store.customers[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cc := *c
	r.store.customers[c.ID] = &cc
	return nil
}

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(u *models.User) error   { return errors.New("not implemented") }
func (r *memUserRepo) GetByID(uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *memUserRepo) GetByEmail(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *memUserRepo) Update(u *models.User) error { return errors.New("not implemented") }

func (s *memStore) repos() *repository.Repositories {
	return &repository.Repositories{
		Budget:   &memBudgetRepo{store: s},
		Service:  &memServiceRepo{store: s},
		Token:    &memTokenRepo{store: s},
		Customer: &memCustomerRepo{store: s},
		User:     &memUserRepo{store: s},
	}
}

// memTxManager mimics transactional semantics over a memStore.
type memTxManager struct {
	store *memStore
}

func (m *memTxManager) WithinTransaction(_ context.Context, fn repository.TxFunc) error {
	snap := m.store.snapshot()
	if err := fn(m.store.repos()); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// recordingNotifier captures outgoing mails and can be told to fail.
type recordingNotifier struct {
	confirmations int
	renewals      int
	lastToken     *models.ConfirmationToken
	fail          bool
}

func (n *recordingNotifier) SendBudgetConfirmation(_ *models.Budget, _ *models.Customer, token *models.ConfirmationToken) error {
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.confirmations++
	n.lastToken = token
	return nil
}

func (n *recordingNotifier) SendBudgetTokenRenewal(_ *models.Budget, _ *models.Customer, token *models.ConfirmationToken) error {
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.renewals++
	n.lastToken = token
	return nil
}
