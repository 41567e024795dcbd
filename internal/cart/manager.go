package cart

import (
	"context"
	"sync"

	"storefront/internal/repository"
)

// Manager выдаёт корзину по id пользователя: один владелец состояния
// на пользователя, повторные обращения получают тот же экземпляр.
type Manager struct {
	mu     sync.Mutex
	carts  map[string]*Cart
	repo   repository.CartRepository
	source ProductSource
}

func NewManager(repo repository.CartRepository, source ProductSource) *Manager {
	return &Manager{
		carts:  make(map[string]*Cart),
		repo:   repo,
		source: source,
	}
}

// ForUser возвращает корзину пользователя, при первом обращении
// поднимая её из хранилища
func (m *Manager) ForUser(ctx context.Context, userID string) (*Cart, error) {
	m.mu.Lock()
	c, ok := m.carts[userID]
	if !ok {
		c = New(userID, m.repo, m.source)
		m.carts[userID] = c
	}
	m.mu.Unlock()
	if !ok {
		if err := c.Load(ctx); err != nil {
			m.mu.Lock()
			delete(m.carts, userID)
			m.mu.Unlock()
			return nil, err
		}
	}
	return c, nil
}
