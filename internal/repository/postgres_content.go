package repository

import (
	"context"
	"time"

	"storefront/internal/domain"
)

// Postgres-репозитории контента админки

var (
	_ ReviewRepository   = (*PostgresReviews)(nil)
	_ BannerRepository   = (*PostgresBanners)(nil)
	_ SiteLinkRepository = (*PostgresSiteLinks)(nil)
	_ SiteLogoRepository = (*PostgresSiteLogos)(nil)
)

type PostgresReviews struct{ store *PostgresStore }

func NewPostgresReviews(store *PostgresStore) *PostgresReviews { return &PostgresReviews{store: store} }

func (pr *PostgresReviews) Create(ctx context.Context, r *domain.Review) error {
	if r.ID == "" {
		r.ID = newID()
	}
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	return translate(pr.store.conn(ctx).Create(r).Error)
}

func (pr *PostgresReviews) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var r domain.Review
	if err := pr.store.conn(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (pr *PostgresReviews) Update(ctx context.Context, r *domain.Review) error {
	r.UpdatedAt = time.Now().UTC()
	res := pr.store.conn(ctx).Model(&domain.Review{ID: r.ID}).Select("*").Omit("created_at").Updates(r)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (pr *PostgresReviews) Delete(ctx context.Context, id string) error {
	return translate(pr.store.conn(ctx).Delete(&domain.Review{}, "id = ?", id).Error)
}

func (pr *PostgresReviews) ListForProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	var rows []domain.Review
	if err := pr.store.conn(ctx).Find(&rows, "product_id = ?", productID).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (pr *PostgresReviews) ListAll(ctx context.Context) ([]domain.Review, error) {
	var rows []domain.Review
	if err := pr.store.conn(ctx).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

type PostgresBanners struct{ store *PostgresStore }

func NewPostgresBanners(store *PostgresStore) *PostgresBanners { return &PostgresBanners{store: store} }

func (pb *PostgresBanners) Create(ctx context.Context, b *domain.Banner) error {
	if b.ID == "" {
		b.ID = newID()
	}
	return translate(pb.store.conn(ctx).Create(b).Error)
}

func (pb *PostgresBanners) GetByID(ctx context.Context, id string) (*domain.Banner, error) {
	var b domain.Banner
	if err := pb.store.conn(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (pb *PostgresBanners) Update(ctx context.Context, b *domain.Banner) error {
	res := pb.store.conn(ctx).Model(&domain.Banner{ID: b.ID}).Select("*").Updates(b)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (pb *PostgresBanners) Delete(ctx context.Context, id string) error {
	return translate(pb.store.conn(ctx).Delete(&domain.Banner{}, "id = ?", id).Error)
}

func (pb *PostgresBanners) List(ctx context.Context) ([]domain.Banner, error) {
	var rows []domain.Banner
	if err := pb.store.conn(ctx).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

type PostgresSiteLinks struct{ store *PostgresStore }

func NewPostgresSiteLinks(store *PostgresStore) *PostgresSiteLinks {
	return &PostgresSiteLinks{store: store}
}

func (pl *PostgresSiteLinks) Create(ctx context.Context, l *domain.SiteLink) error {
	if l.ID == "" {
		l.ID = newID()
	}
	return translate(pl.store.conn(ctx).Create(l).Error)
}

func (pl *PostgresSiteLinks) GetByID(ctx context.Context, id string) (*domain.SiteLink, error) {
	var l domain.SiteLink
	if err := pl.store.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (pl *PostgresSiteLinks) Update(ctx context.Context, l *domain.SiteLink) error {
	res := pl.store.conn(ctx).Model(&domain.SiteLink{ID: l.ID}).Select("*").Updates(l)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (pl *PostgresSiteLinks) Delete(ctx context.Context, id string) error {
	return translate(pl.store.conn(ctx).Delete(&domain.SiteLink{}, "id = ?", id).Error)
}

func (pl *PostgresSiteLinks) List(ctx context.Context) ([]domain.SiteLink, error) {
	var rows []domain.SiteLink
	if err := pl.store.conn(ctx).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

type PostgresSiteLogos struct{ store *PostgresStore }

func NewPostgresSiteLogos(store *PostgresStore) *PostgresSiteLogos {
	return &PostgresSiteLogos{store: store}
}

func (pl *PostgresSiteLogos) Create(ctx context.Context, l *domain.SiteLogo) error {
	if l.ID == "" {
		l.ID = newID()
	}
	return translate(pl.store.conn(ctx).Create(l).Error)
}

func (pl *PostgresSiteLogos) GetByID(ctx context.Context, id string) (*domain.SiteLogo, error) {
	var l domain.SiteLogo
	if err := pl.store.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (pl *PostgresSiteLogos) Update(ctx context.Context, l *domain.SiteLogo) error {
	res := pl.store.conn(ctx).Model(&domain.SiteLogo{ID: l.ID}).Select("*").Updates(l)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (pl *PostgresSiteLogos) Delete(ctx context.Context, id string) error {
	return translate(pl.store.conn(ctx).Delete(&domain.SiteLogo{}, "id = ?", id).Error)
}

func (pl *PostgresSiteLogos) List(ctx context.Context) ([]domain.SiteLogo, error) {
	var rows []domain.SiteLogo
	if err := pl.store.conn(ctx).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}
