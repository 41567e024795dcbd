package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/domain"
)

// PostgresStore бэкенд на GORM. Включается, когда задан DATABASE_DSN;
// вложенные структуры хранятся через JSON-сериализатор GORM.
type PostgresStore struct {
	db *gorm.DB
}

// cartRecord строка корзины: одна запись на пользователя
type cartRecord struct {
	UserID string            `gorm:"primaryKey"`
	Items  []domain.CartItem `gorm:"serializer:json"`
}

func (cartRecord) TableName() string { return "carts" }

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&domain.Product{}, &domain.Category{}, &domain.Order{}, &domain.User{},
		&domain.Review{}, &domain.Banner{}, &domain.SiteLink{}, &domain.SiteLogo{},
		&cartRecord{},
	); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

type pgTxKey struct{}

// conn возвращает транзакцию из контекста, если она открыта
func (s *PostgresStore) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(pgTxKey{}).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	default:
		return err
	}
}

// Ensure interfaces
var (
	_ ProductRepository  = (*PostgresProducts)(nil)
	_ CategoryRepository = (*PostgresCategories)(nil)
	_ OrderRepository    = (*PostgresOrders)(nil)
	_ UserRepository     = (*PostgresUsers)(nil)
	_ CartRepository     = (*PostgresCarts)(nil)
)

type PostgresProducts struct{ store *PostgresStore }

func NewPostgresProducts(store *PostgresStore) *PostgresProducts {
	return &PostgresProducts{store: store}
}

func (pp *PostgresProducts) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return translate(pp.store.conn(ctx).Create(p).Error)
}

func (pp *PostgresProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := pp.store.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (pp *PostgresProducts) Update(ctx context.Context, p *domain.Product) error {
	res := pp.store.conn(ctx).Model(&domain.Product{ID: p.ID}).Select("*").Omit("created_at").Updates(p)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (pp *PostgresProducts) Delete(ctx context.Context, id string) error {
	return translate(pp.store.conn(ctx).Delete(&domain.Product{}, "id = ?", id).Error)
}

func (pp *PostgresProducts) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	q := pp.store.conn(ctx).Model(&domain.Product{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	var rows []domain.Product
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	// Search matches tags too, which live inside a JSON column, so the
	// substring filter runs in Go through the same helper the memory
	// backend uses.
	out := rows[:0]
	for _, p := range rows {
		if MatchesFilter(p, ProductFilter{Search: f.Search}) {
			out = append(out, p)
		}
	}
	return out, nil
}

type PostgresCategories struct{ store *PostgresStore }

func NewPostgresCategories(store *PostgresStore) *PostgresCategories {
	return &PostgresCategories{store: store}
}

func (pc *PostgresCategories) Create(ctx context.Context, c *domain.Category) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return translate(pc.store.conn(ctx).Create(c).Error)
}

func (pc *PostgresCategories) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if err := pc.store.conn(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (pc *PostgresCategories) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	if err := pc.store.conn(ctx).First(&c, "slug = ?", slug).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (pc *PostgresCategories) Update(ctx context.Context, c *domain.Category) error {
	res := pc.store.conn(ctx).Model(&domain.Category{ID: c.ID}).Select("*").Updates(c)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (pc *PostgresCategories) Delete(ctx context.Context, id string) error {
	return translate(pc.store.conn(ctx).Delete(&domain.Category{}, "id = ?", id).Error)
}

func (pc *PostgresCategories) List(ctx context.Context) ([]domain.Category, error) {
	var rows []domain.Category
	if err := pc.store.conn(ctx).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

type PostgresOrders struct{ store *PostgresStore }

func NewPostgresOrders(store *PostgresStore) *PostgresOrders { return &PostgresOrders{store: store} }

func (po *PostgresOrders) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = newID()
	}
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	return translate(po.store.conn(ctx).Create(o).Error)
}

func (po *PostgresOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := po.store.conn(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (po *PostgresOrders) Update(ctx context.Context, o *domain.Order) error {
	o.UpdatedAt = time.Now().UTC()
	res := po.store.conn(ctx).Model(&domain.Order{ID: o.ID}).Select("*").Omit("created_at").Updates(o)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (po *PostgresOrders) List(ctx context.Context, userID string) ([]domain.Order, error) {
	q := po.store.conn(ctx).Model(&domain.Order{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var rows []domain.Order
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

type PostgresUsers struct{ store *PostgresStore }

func NewPostgresUsers(store *PostgresStore) *PostgresUsers { return &PostgresUsers{store: store} }

func (pu *PostgresUsers) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return translate(pu.store.conn(ctx).Create(u).Error)
}

func (pu *PostgresUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := pu.store.conn(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (pu *PostgresUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := pu.store.conn(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (pu *PostgresUsers) Update(ctx context.Context, u *domain.User) error {
	res := pu.store.conn(ctx).Model(&domain.User{ID: u.ID}).Select("*").Omit("created_at").Updates(u)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (pu *PostgresUsers) Delete(ctx context.Context, id string) error {
	return translate(pu.store.conn(ctx).Delete(&domain.User{}, "id = ?", id).Error)
}

func (pu *PostgresUsers) List(ctx context.Context) ([]domain.User, error) {
	var rows []domain.User
	if err := pu.store.conn(ctx).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

type PostgresCarts struct{ store *PostgresStore }

func NewPostgresCarts(store *PostgresStore) *PostgresCarts { return &PostgresCarts{store: store} }

func (pc *PostgresCarts) Get(ctx context.Context, userID string) ([]domain.CartItem, error) {
	var rec cartRecord
	err := pc.store.conn(ctx).First(&rec, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []domain.CartItem{}, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return rec.Items, nil
}

func (pc *PostgresCarts) Save(ctx context.Context, userID string, items []domain.CartItem) error {
	rec := cartRecord{UserID: userID, Items: items}
	return translate(pc.store.conn(ctx).Save(&rec).Error)
}

func (pc *PostgresCarts) Clear(ctx context.Context, userID string) error {
	return translate(pc.store.conn(ctx).Delete(&cartRecord{}, "user_id = ?", userID).Error)
}

// PostgresTx настоящая транзакция через gorm.Transaction

type PostgresTx struct{ store *PostgresStore }

func NewPostgresTx(store *PostgresStore) *PostgresTx { return &PostgresTx{store: store} }

func (t *PostgresTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, pgTxKey{}, tx))
	})
}
