package service

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// CategoryUpdate частичное обновление категории
type CategoryUpdate struct {
	Name           *string
	Slug           *string
	Description    *string
	ParentCategory *string
	Image          *string
}

// CategoryService управляет деревом категорий (одна степень вложенности)
type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if c.Name == "" || c.Slug == "" {
		return nil, ErrInvalidInput
	}
	cp := c
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	if slug == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *CategoryService) Update(ctx context.Context, id string, upd CategoryUpdate) (*domain.Category, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Slug != nil {
		c.Slug = *upd.Slug
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.ParentCategory != nil {
		c.ParentCategory = *upd.ParentCategory
	}
	if upd.Image != nil {
		c.Image = *upd.Image
	}
	if c.Name == "" || c.Slug == "" {
		return nil, ErrInvalidInput
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}
