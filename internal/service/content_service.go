package service

import (
	"context"
	"sort"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ContentService баннеры, ссылки и логотипы витрины. Админка
// редактирует записи целиком, витрина читает только активные.
type ContentService struct {
	banners repository.BannerRepository
	links   repository.SiteLinkRepository
	logos   repository.SiteLogoRepository
}

func NewContentService(banners repository.BannerRepository, links repository.SiteLinkRepository, logos repository.SiteLogoRepository) *ContentService {
	return &ContentService{banners: banners, links: links, logos: logos}
}

// Banners

func (s *ContentService) CreateBanner(ctx context.Context, b domain.Banner) (*domain.Banner, error) {
	if b.Title == "" || b.ImageURL == "" {
		return nil, ErrInvalidInput
	}
	if b.StartDate.IsZero() {
		b.StartDate = time.Now().UTC()
	}
	cp := b
	if err := s.banners.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ContentService) UpdateBanner(ctx context.Context, b domain.Banner) (*domain.Banner, error) {
	if b.ID == "" || b.Title == "" || b.ImageURL == "" {
		return nil, ErrInvalidInput
	}
	cp := b
	if err := s.banners.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ContentService) DeleteBanner(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.banners.Delete(ctx, id)
}

func (s *ContentService) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	out, err := s.banners.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// ActiveBanners активные баннеры в границах дат показа
func (s *ContentService) ActiveBanners(ctx context.Context) ([]domain.Banner, error) {
	all, err := s.ListBanners(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]domain.Banner, 0, len(all))
	for _, b := range all {
		if !b.IsActive || b.StartDate.After(now) {
			continue
		}
		if b.EndDate != nil && b.EndDate.Before(now) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// Site links

func (s *ContentService) CreateLink(ctx context.Context, l domain.SiteLink) (*domain.SiteLink, error) {
	if l.Name == "" || l.URL == "" {
		return nil, ErrInvalidInput
	}
	cp := l
	if err := s.links.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ContentService) UpdateLink(ctx context.Context, l domain.SiteLink) (*domain.SiteLink, error) {
	if l.ID == "" || l.Name == "" || l.URL == "" {
		return nil, ErrInvalidInput
	}
	cp := l
	if err := s.links.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ContentService) DeleteLink(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.links.Delete(ctx, id)
}

func (s *ContentService) ListLinks(ctx context.Context, activeOnly bool) ([]domain.SiteLink, error) {
	all, err := s.links.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SiteLink, 0, len(all))
	for _, l := range all {
		if activeOnly && !l.IsActive {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

// Logos

func (s *ContentService) CreateLogo(ctx context.Context, l domain.SiteLogo) (*domain.SiteLogo, error) {
	if l.Name == "" || l.ImageURL == "" {
		return nil, ErrInvalidInput
	}
	cp := l
	if err := s.logos.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ContentService) UpdateLogo(ctx context.Context, l domain.SiteLogo) (*domain.SiteLogo, error) {
	if l.ID == "" || l.Name == "" || l.ImageURL == "" {
		return nil, ErrInvalidInput
	}
	cp := l
	if err := s.logos.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ContentService) DeleteLogo(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.logos.Delete(ctx, id)
}

func (s *ContentService) ListLogos(ctx context.Context, activeOnly bool) ([]domain.SiteLogo, error) {
	all, err := s.logos.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SiteLogo, 0, len(all))
	for _, l := range all {
		if activeOnly && !l.IsActive {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
