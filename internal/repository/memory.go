package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// MemoryStore объединённое in-memory хранилище всех сущностей витрины.
// Используется в тестах и как бэкенд по умолчанию, когда DSN не задан.
type MemoryStore struct {
	mu         sync.RWMutex
	products   map[string]domain.Product
	categories map[string]domain.Category
	orders     map[string]domain.Order
	users      map[string]domain.User
	carts      map[string][]domain.CartItem
	reviews    map[string]domain.Review
	banners    map[string]domain.Banner
	links      map[string]domain.SiteLink
	logos      map[string]domain.SiteLogo
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[string]domain.Product),
		categories: make(map[string]domain.Category),
		orders:     make(map[string]domain.Order),
		users:      make(map[string]domain.User),
		carts:      make(map[string][]domain.CartItem),
		reviews:    make(map[string]domain.Review),
		banners:    make(map[string]domain.Banner),
		links:      make(map[string]domain.SiteLink),
		logos:      make(map[string]domain.SiteLogo),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

func newID() string { return uuid.NewString() }

// Ensure interfaces
var (
	_ ProductRepository  = (*MemoryStore)(nil)
	_ CategoryRepository = (*MemoryCategories)(nil)
	_ OrderRepository    = (*MemoryOrders)(nil)
	_ UserRepository     = (*MemoryUsers)(nil)
	_ CartRepository     = (*MemoryCarts)(nil)
)

// ProductRepository implementation

func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	m.products[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.products[p.ID]; !ok {
		return ErrNotFound
	}
	m.products[p.ID] = *p
	return nil
}

// Delete идемпотентен: отсутствие товара не является ошибкой
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	delete(m.products, id)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0)
	for _, p := range m.products {
		if MatchesFilter(p, f) {
			out = append(out, p)
		}
	}
	return out, nil
}

// CategoryRepository implementation on wrapper type

type MemoryCategories struct{ store *MemoryStore }

func NewMemoryCategories(store *MemoryStore) *MemoryCategories {
	return &MemoryCategories{store: store}
}

func (mc *MemoryCategories) Create(ctx context.Context, c *domain.Category) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for _, existing := range mc.store.categories {
		if existing.Slug == c.Slug {
			return ErrAlreadyExists
		}
	}
	if c.ID == "" {
		c.ID = newID()
	}
	mc.store.categories[c.ID] = *c
	return nil
}

func (mc *MemoryCategories) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	c, ok := mc.store.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (mc *MemoryCategories) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	for _, c := range mc.store.categories {
		if c.Slug == slug {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mc *MemoryCategories) Update(ctx context.Context, c *domain.Category) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	if _, ok := mc.store.categories[c.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range mc.store.categories {
		if id != c.ID && existing.Slug == c.Slug {
			return ErrAlreadyExists
		}
	}
	mc.store.categories[c.ID] = *c
	return nil
}

func (mc *MemoryCategories) Delete(ctx context.Context, id string) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	delete(mc.store.categories, id)
	return nil
}

func (mc *MemoryCategories) List(ctx context.Context) ([]domain.Category, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	out := make([]domain.Category, 0, len(mc.store.categories))
	for _, c := range mc.store.categories {
		out = append(out, c)
	}
	return out, nil
}

// OrderRepository implementation

type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	if o.ID == "" {
		o.ID = newID()
	}
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	mo.store.orders[o.ID] = *o
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	return &cp, nil
}

func (mo *MemoryOrders) Update(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	if _, ok := mo.store.orders[o.ID]; !ok {
		return ErrNotFound
	}
	o.UpdatedAt = time.Now().UTC()
	mo.store.orders[o.ID] = *o
	return nil
}

// List возвращает заказы пользователя; пустой userID — все заказы
func (mo *MemoryOrders) List(ctx context.Context, userID string) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, 0)
	for _, o := range mo.store.orders {
		if userID != "" && o.UserID != userID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// UserRepository implementation

type MemoryUsers struct{ store *MemoryStore }

func NewMemoryUsers(store *MemoryStore) *MemoryUsers { return &MemoryUsers{store: store} }

func (mu *MemoryUsers) Create(ctx context.Context, u *domain.User) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	for _, existing := range mu.store.users {
		if existing.Email == u.Email {
			return ErrAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	mu.store.users[u.ID] = *u
	return nil
}

func (mu *MemoryUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	u, ok := mu.store.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (mu *MemoryUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	for _, u := range mu.store.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mu *MemoryUsers) Update(ctx context.Context, u *domain.User) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	if _, ok := mu.store.users[u.ID]; !ok {
		return ErrNotFound
	}
	mu.store.users[u.ID] = *u
	return nil
}

func (mu *MemoryUsers) Delete(ctx context.Context, id string) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	delete(mu.store.users, id)
	return nil
}

func (mu *MemoryUsers) List(ctx context.Context) ([]domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	out := make([]domain.User, 0, len(mu.store.users))
	for _, u := range mu.store.users {
		out = append(out, u)
	}
	return out, nil
}

// CartRepository implementation

type MemoryCarts struct{ store *MemoryStore }

func NewMemoryCarts(store *MemoryStore) *MemoryCarts { return &MemoryCarts{store: store} }

func (mc *MemoryCarts) Get(ctx context.Context, userID string) ([]domain.CartItem, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	items := mc.store.carts[userID]
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (mc *MemoryCarts) Save(ctx context.Context, userID string, items []domain.CartItem) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	cp := make([]domain.CartItem, len(items))
	copy(cp, items)
	mc.store.carts[userID] = cp
	return nil
}

func (mc *MemoryCarts) Clear(ctx context.Context, userID string) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	delete(mc.store.carts, userID)
	return nil
}

// Tx manager using write lock to emulate transaction boundary

type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст,
	// чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
