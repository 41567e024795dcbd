package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

// Ключи сортировки каталога. Неизвестный ключ оставляет порядок
// выдачи репозитория нетронутым.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// ProductQuery фильтр каталога плюс ключ сортировки
type ProductQuery struct {
	repository.ProductFilter
	Sort string
}

// ProductUpdate частичное обновление: nil-поля не трогаются
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Price       *int64
	Stock       *int64
	Images      *[]string
	Tags        *[]string
	Variants    *[]domain.ProductVariant
}

// ProductService инкапсулирует бизнес-логику вокруг каталога
type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Name == "" || p.Price < 0 || p.Stock < 0 {
		return nil, ErrInvalidInput
	}
	cp := p
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Update накладывает частичные изменения на существующую запись
func (s *ProductService) Update(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Images != nil {
		p.Images = *upd.Images
	}
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	if upd.Variants != nil {
		p.Variants = *upd.Variants
	}
	if p.Price < 0 || p.Stock < 0 || p.Name == "" {
		return nil, ErrInvalidInput
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete идемпотентен, отсутствие id не считается ошибкой
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// List применяет фильтр репозитория и затем сортировку. Фильтры и
// сортировка независимы и комбинируются.
func (s *ProductService) List(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	out, err := s.repo.List(ctx, q.ProductFilter)
	if err != nil {
		return nil, err
	}
	sortProducts(out, q.Sort)
	return out, nil
}

func sortProducts(list []domain.Product, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price < list[j].Price })
	case SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Price > list[j].Price })
	case SortNameAsc:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	case SortRating:
		// missing rating sorts as 0
		sort.SliceStable(list, func(i, j int) bool { return list[i].Rating > list[j].Rating })
	case SortNewest:
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	}
}
