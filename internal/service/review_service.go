package service

import (
	"context"
	"sort"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ReviewUpdate частичное обновление отзыва
type ReviewUpdate struct {
	Rating  *int
	Title   *string
	Comment *string
}

// ReviewService отзывы и агрегат рейтинга товара. Любая мутация
// пересчитывает Rating/ReviewCount на карточке.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

func (s *ReviewService) Create(ctx context.Context, r domain.Review) (*domain.Review, error) {
	if r.ProductID == "" || r.UserID == "" || r.Comment == "" || r.Rating < 1 || r.Rating > 5 {
		return nil, ErrInvalidInput
	}
	if _, err := s.products.GetByID(ctx, r.ProductID); err != nil {
		return nil, err
	}
	cp := r
	if err := s.reviews.Create(ctx, &cp); err != nil {
		return nil, err
	}
	if err := s.recalcProduct(ctx, cp.ProductID); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ReviewService) Update(ctx context.Context, id string, upd ReviewUpdate) (*domain.Review, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	r, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Rating != nil {
		if *upd.Rating < 1 || *upd.Rating > 5 {
			return nil, ErrInvalidInput
		}
		r.Rating = *upd.Rating
	}
	if upd.Title != nil {
		r.Title = *upd.Title
	}
	if upd.Comment != nil {
		r.Comment = *upd.Comment
	}
	if err := s.reviews.Update(ctx, r); err != nil {
		return nil, err
	}
	if err := s.recalcProduct(ctx, r.ProductID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	r, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil
		}
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	return s.recalcProduct(ctx, r.ProductID)
}

// MarkHelpful увеличивает счётчик "полезно"
func (s *ReviewService) MarkHelpful(ctx context.Context, id string) (*domain.Review, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	r, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.HelpfulCount++
	if err := s.reviews.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListForProduct отзывы товара от новых к старым
func (s *ReviewService) ListForProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	if productID == "" {
		return nil, ErrInvalidInput
	}
	out, err := s.reviews.ListForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *ReviewService) ListAll(ctx context.Context) ([]domain.Review, error) {
	out, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// recalcProduct пересчитывает агрегат рейтинга на карточке товара.
// Товар мог быть удалён после отзыва — тогда пересчитывать нечего.
func (s *ReviewService) recalcProduct(ctx context.Context, productID string) error {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil
		}
		return err
	}
	list, err := s.reviews.ListForProduct(ctx, productID)
	if err != nil {
		return err
	}
	p.ReviewCount = int64(len(list))
	if len(list) == 0 {
		p.Rating = 0
	} else {
		sum := 0
		for _, r := range list {
			sum += r.Rating
		}
		p.Rating = float64(sum) / float64(len(list))
	}
	return s.products.Update(ctx, p)
}
