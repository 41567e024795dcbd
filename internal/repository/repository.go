package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists возвращается при конфликте уникального поля
// (email пользователя, slug категории)
var ErrAlreadyExists = errors.New("already exists")

// ProductFilter параметры фильтрации списка товаров. Все условия
// комбинируются через AND; сортировка — забота сервисного слоя.
type ProductFilter struct {
	Category string
	Search   string
	MinPrice *int64
	MaxPrice *int64
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
}

// CategoryRepository интерфейс репозитория категорий
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Category, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, userID string) ([]domain.Order, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
}

// CartRepository хранит позиции корзины по id пользователя.
// Это единственное место, где корзина персистится; состояние в
// памяти всегда производно от него.
type CartRepository interface {
	Get(ctx context.Context, userID string) ([]domain.CartItem, error)
	Save(ctx context.Context, userID string, items []domain.CartItem) error
	Clear(ctx context.Context, userID string) error
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id string) error
	ListForProduct(ctx context.Context, productID string) ([]domain.Review, error)
	ListAll(ctx context.Context) ([]domain.Review, error)
}

// BannerRepository интерфейс репозитория баннеров
type BannerRepository interface {
	Create(ctx context.Context, b *domain.Banner) error
	GetByID(ctx context.Context, id string) (*domain.Banner, error)
	Update(ctx context.Context, b *domain.Banner) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Banner, error)
}

// SiteLinkRepository интерфейс репозитория ссылок сайта
type SiteLinkRepository interface {
	Create(ctx context.Context, l *domain.SiteLink) error
	GetByID(ctx context.Context, id string) (*domain.SiteLink, error)
	Update(ctx context.Context, l *domain.SiteLink) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.SiteLink, error)
}

// SiteLogoRepository интерфейс репозитория логотипов
type SiteLogoRepository interface {
	Create(ctx context.Context, l *domain.SiteLogo) error
	GetByID(ctx context.Context, id string) (*domain.SiteLogo, error)
	Update(ctx context.Context, l *domain.SiteLogo) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.SiteLogo, error)
}

// TxManager абстракция транзакции. Для in-memory — глобальная
// блокировка записи, для Postgres — настоящая транзакция.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MatchesFilter применяет ProductFilter к товару; используется обоими
// бэкендами, чтобы семантика поиска не расходилась
func MatchesFilter(p domain.Product, f ProductFilter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return matchesSearch(p, f.Search)
}

// helper: case-insensitive substring over name, description and tags
func matchesSearch(p domain.Product, search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Name), s) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), s) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), s) {
			return true
		}
	}
	return false
}
