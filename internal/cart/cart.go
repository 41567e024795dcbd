// Package cart держит авторитетное состояние корзины одного
// пользователя: позиции, денормализованный кэш товаров для цен и
// подписку на изменения. Любая мутация сначала персистится через
// repository.CartRepository и только потом рассылается подписчикам.
package cart

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ProductSource источник карточек товаров для кэша корзины
type ProductSource interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Snapshot согласованный срез корзины для подписчиков
type Snapshot struct {
	Items []domain.CartItem
	Total int64
	Count int64
}

// Cart корзина одного пользователя. Инвариант: в items (и в
// персистентном состоянии) нет позиций с Quantity <= 0.
type Cart struct {
	mu       sync.Mutex
	userID   string
	items    []domain.CartItem
	products map[string]domain.Product
	repo     repository.CartRepository
	source   ProductSource
	subs     []func(Snapshot)
}

func New(userID string, repo repository.CartRepository, source ProductSource) *Cart {
	return &Cart{
		userID:   userID,
		products: make(map[string]domain.Product),
		repo:     repo,
		source:   source,
	}
}

// Load восстанавливает позиции из хранилища и подтягивает карточки
// товаров. Позиция, чей товар исчез из каталога, остаётся висеть —
// она просто не участвует в сумме, пока товар не найдётся.
func (c *Cart) Load(ctx context.Context) error {
	items, err := c.repo.Get(ctx, c.userID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	for _, it := range items {
		if _, err := c.ResolveProduct(ctx, it.ProductID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	c.notify()
	return nil
}

// Add сливает дельту (возможно отрицательную) в позицию. Итог <= 0
// убирает позицию; вставка с неположительной дельтой — no-op.
// Остаток товара здесь намеренно не проверяется, это забота вызывающего.
func (c *Cart) Add(ctx context.Context, productID string, delta int64, variant map[string]string) error {
	if productID == "" {
		return repository.ErrNotFound
	}
	c.mu.Lock()
	idx := c.indexLocked(productID)
	switch {
	case idx >= 0:
		c.items[idx].Quantity += delta
		if c.items[idx].Quantity <= 0 {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
		}
	case delta > 0:
		c.items = append(c.items, domain.CartItem{ProductID: productID, Quantity: delta, Variant: variant})
	default:
		c.mu.Unlock()
		return nil
	}
	if err := c.persistLocked(ctx); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	// best effort warm-up of the price cache; a missing product keeps
	// the line dangling with zero contribution
	if _, err := c.ResolveProduct(ctx, productID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	c.notify()
	return nil
}

// SetQuantity выставляет абсолютное количество. q <= 0 убирает
// позицию; отсутствующая позиция — no-op.
func (c *Cart) SetQuantity(ctx context.Context, productID string, q int64) error {
	c.mu.Lock()
	idx := c.indexLocked(productID)
	if idx < 0 {
		c.mu.Unlock()
		return nil
	}
	if q <= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	} else {
		c.items[idx].Quantity = q
	}
	if err := c.persistLocked(ctx); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// Remove убирает позицию; отсутствие позиции — no-op
func (c *Cart) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	idx := c.indexLocked(productID)
	if idx < 0 {
		c.mu.Unlock()
		return nil
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	if err := c.persistLocked(ctx); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// Clear опустошает корзину и стирает персистентное состояние
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.items = nil
	if err := c.repo.Clear(ctx, c.userID); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// Items возвращает копию списка позиций
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total сумма price*quantity по кэшу товаров. Позиции, чей товар ещё
// не загружен, дают 0 — временный недосчёт до завершения загрузки.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

// Count суммарное количество единиц (значение для бейджа, не число позиций)
func (c *Cart) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countLocked()
}

// ResolveProduct возвращает товар из кэша или загружает и кэширует.
// Кэш никогда не вытесняется.
func (c *Cart) ResolveProduct(ctx context.Context, productID string) (*domain.Product, error) {
	c.mu.Lock()
	if p, ok := c.products[productID]; ok {
		c.mu.Unlock()
		cp := p
		return &cp, nil
	}
	c.mu.Unlock()

	p, err := c.source.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.products[p.ID] = *p
	c.mu.Unlock()
	return p, nil
}

// Subscribe регистрирует получателя снапшотов; уведомление приходит
// после каждой мутации и после Load
func (c *Cart) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

func (c *Cart) indexLocked(productID string) int {
	for i, it := range c.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) totalLocked() int64 {
	var total int64
	for _, it := range c.items {
		if p, ok := c.products[it.ProductID]; ok {
			total += p.Price * it.Quantity
		}
	}
	return total
}

func (c *Cart) countLocked() int64 {
	var count int64
	for _, it := range c.items {
		count += it.Quantity
	}
	return count
}

func (c *Cart) persistLocked(ctx context.Context) error {
	return c.repo.Save(ctx, c.userID, c.items)
}

// notify собирает снапшот под локом, но зовёт подписчиков без него,
// чтобы подписчик мог дернуть корзину обратно
func (c *Cart) notify() {
	c.mu.Lock()
	snap := Snapshot{
		Items: make([]domain.CartItem, len(c.items)),
		Total: c.totalLocked(),
		Count: c.countLocked(),
	}
	copy(snap.Items, c.items)
	subs := make([]func(Snapshot), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
