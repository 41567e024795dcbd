package repository

import (
	"context"
	"time"

	"storefront/internal/domain"
)

// In-memory репозитории контента админки: отзывы, баннеры, ссылки,
// логотипы. Все разделяют блокировку общего MemoryStore.

var (
	_ ReviewRepository   = (*MemoryReviews)(nil)
	_ BannerRepository   = (*MemoryBanners)(nil)
	_ SiteLinkRepository = (*MemorySiteLinks)(nil)
	_ SiteLogoRepository = (*MemorySiteLogos)(nil)
)

type MemoryReviews struct{ store *MemoryStore }

func NewMemoryReviews(store *MemoryStore) *MemoryReviews { return &MemoryReviews{store: store} }

func (mr *MemoryReviews) Create(ctx context.Context, r *domain.Review) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	if r.ID == "" {
		r.ID = newID()
	}
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	mr.store.reviews[r.ID] = *r
	return nil
}

func (mr *MemoryReviews) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	mr.store.rlock(ctx)
	defer mr.store.runlock(ctx)
	r, ok := mr.store.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := r
	return &cp, nil
}

func (mr *MemoryReviews) Update(ctx context.Context, r *domain.Review) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	if _, ok := mr.store.reviews[r.ID]; !ok {
		return ErrNotFound
	}
	r.UpdatedAt = time.Now().UTC()
	mr.store.reviews[r.ID] = *r
	return nil
}

func (mr *MemoryReviews) Delete(ctx context.Context, id string) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	delete(mr.store.reviews, id)
	return nil
}

func (mr *MemoryReviews) ListForProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	mr.store.rlock(ctx)
	defer mr.store.runlock(ctx)
	out := make([]domain.Review, 0)
	for _, r := range mr.store.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (mr *MemoryReviews) ListAll(ctx context.Context) ([]domain.Review, error) {
	mr.store.rlock(ctx)
	defer mr.store.runlock(ctx)
	out := make([]domain.Review, 0, len(mr.store.reviews))
	for _, r := range mr.store.reviews {
		out = append(out, r)
	}
	return out, nil
}

type MemoryBanners struct{ store *MemoryStore }

func NewMemoryBanners(store *MemoryStore) *MemoryBanners { return &MemoryBanners{store: store} }

func (mb *MemoryBanners) Create(ctx context.Context, b *domain.Banner) error {
	mb.store.wlock(ctx)
	defer mb.store.wunlock(ctx)
	if b.ID == "" {
		b.ID = newID()
	}
	mb.store.banners[b.ID] = *b
	return nil
}

func (mb *MemoryBanners) GetByID(ctx context.Context, id string) (*domain.Banner, error) {
	mb.store.rlock(ctx)
	defer mb.store.runlock(ctx)
	b, ok := mb.store.banners[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := b
	return &cp, nil
}

func (mb *MemoryBanners) Update(ctx context.Context, b *domain.Banner) error {
	mb.store.wlock(ctx)
	defer mb.store.wunlock(ctx)
	if _, ok := mb.store.banners[b.ID]; !ok {
		return ErrNotFound
	}
	mb.store.banners[b.ID] = *b
	return nil
}

func (mb *MemoryBanners) Delete(ctx context.Context, id string) error {
	mb.store.wlock(ctx)
	defer mb.store.wunlock(ctx)
	delete(mb.store.banners, id)
	return nil
}

func (mb *MemoryBanners) List(ctx context.Context) ([]domain.Banner, error) {
	mb.store.rlock(ctx)
	defer mb.store.runlock(ctx)
	out := make([]domain.Banner, 0, len(mb.store.banners))
	for _, b := range mb.store.banners {
		out = append(out, b)
	}
	return out, nil
}

type MemorySiteLinks struct{ store *MemoryStore }

func NewMemorySiteLinks(store *MemoryStore) *MemorySiteLinks { return &MemorySiteLinks{store: store} }

func (ml *MemorySiteLinks) Create(ctx context.Context, l *domain.SiteLink) error {
	ml.store.wlock(ctx)
	defer ml.store.wunlock(ctx)
	if l.ID == "" {
		l.ID = newID()
	}
	ml.store.links[l.ID] = *l
	return nil
}

func (ml *MemorySiteLinks) GetByID(ctx context.Context, id string) (*domain.SiteLink, error) {
	ml.store.rlock(ctx)
	defer ml.store.runlock(ctx)
	l, ok := ml.store.links[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := l
	return &cp, nil
}

func (ml *MemorySiteLinks) Update(ctx context.Context, l *domain.SiteLink) error {
	ml.store.wlock(ctx)
	defer ml.store.wunlock(ctx)
	if _, ok := ml.store.links[l.ID]; !ok {
		return ErrNotFound
	}
	ml.store.links[l.ID] = *l
	return nil
}

func (ml *MemorySiteLinks) Delete(ctx context.Context, id string) error {
	ml.store.wlock(ctx)
	defer ml.store.wunlock(ctx)
	delete(ml.store.links, id)
	return nil
}

func (ml *MemorySiteLinks) List(ctx context.Context) ([]domain.SiteLink, error) {
	ml.store.rlock(ctx)
	defer ml.store.runlock(ctx)
	out := make([]domain.SiteLink, 0, len(ml.store.links))
	for _, l := range ml.store.links {
		out = append(out, l)
	}
	return out, nil
}

type MemorySiteLogos struct{ store *MemoryStore }

func NewMemorySiteLogos(store *MemoryStore) *MemorySiteLogos { return &MemorySiteLogos{store: store} }

func (ml *MemorySiteLogos) Create(ctx context.Context, l *domain.SiteLogo) error {
	ml.store.wlock(ctx)
	defer ml.store.wunlock(ctx)
	if l.ID == "" {
		l.ID = newID()
	}
	ml.store.logos[l.ID] = *l
	return nil
}

func (ml *MemorySiteLogos) GetByID(ctx context.Context, id string) (*domain.SiteLogo, error) {
	ml.store.rlock(ctx)
	defer ml.store.runlock(ctx)
	l, ok := ml.store.logos[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := l
	return &cp, nil
}

func (ml *MemorySiteLogos) Update(ctx context.Context, l *domain.SiteLogo) error {
	ml.store.wlock(ctx)
	defer ml.store.wunlock(ctx)
	if _, ok := ml.store.logos[l.ID]; !ok {
		return ErrNotFound
	}
	ml.store.logos[l.ID] = *l
	return nil
}

func (ml *MemorySiteLogos) Delete(ctx context.Context, id string) error {
	ml.store.wlock(ctx)
	defer ml.store.wunlock(ctx)
	delete(ml.store.logos, id)
	return nil
}

func (ml *MemorySiteLogos) List(ctx context.Context) ([]domain.SiteLogo, error) {
	ml.store.rlock(ctx)
	defer ml.store.runlock(ctx)
	out := make([]domain.SiteLogo, 0, len(ml.store.logos))
	for _, l := range ml.store.logos {
		out = append(out, l)
	}
	return out, nil
}
