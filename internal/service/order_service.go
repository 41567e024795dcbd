package service

import (
	"context"
	"sort"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// OrderNotifier получает события заказов (лента админки).
// nil-реализация допустима.
type OrderNotifier interface {
	OrderCreated(o domain.Order)
	OrderUpdated(o domain.Order)
}

// OrderService реализует логику заказов: оформление со снимком товаров,
// смена статуса, выборки. Остатки товара при оформлении намеренно не
// списываются — поведение исходной системы сохранено как есть.
type OrderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	tx       repository.TxManager
	notifier OrderNotifier
}

func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository, tx repository.TxManager) *OrderService {
	return &OrderService{products: products, orders: orders, tx: tx}
}

// SetNotifier подключает ленту событий; вызывается один раз при сборке
func (s *OrderService) SetNotifier(n OrderNotifier) { s.notifier = n }

// Create снимает денормализованные копии товаров и создаёт заказ в
// статусе pending. total приходит от checkout-слоя уже со скидкой.
func (s *OrderService) Create(ctx context.Context, userID string, items []domain.CartItem, shipping domain.Address, total int64) (*domain.Order, error) {
	if userID == "" || len(items) == 0 || total < 0 {
		return nil, ErrInvalidInput
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		snapshots := make([]domain.OrderProduct, 0, len(items))
		for _, it := range items {
			p, err := s.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			snapshots = append(snapshots, domain.OrderProduct{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				Price:       p.Price,
				Image:       p.PrimaryImage(),
			})
		}

		o := domain.Order{
			UserID:          userID,
			Products:        snapshots,
			Status:          domain.OrderStatusPending,
			TotalPrice:      total,
			ShippingAddress: shipping,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.OrderCreated(*created)
	}
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// UpdateStatus перезаписывает статус без проверки графа переходов:
// админка исходной системы позволяет любой переход, включая обратные
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if id == "" || !status.Valid() {
		return nil, ErrInvalidInput
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = status
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.OrderUpdated(*o)
	}
	return o, nil
}

// ListForUser возвращает заказы пользователя от новых к старым
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	out, err := s.orders.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

// ListAll возвращает все заказы от новых к старым
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	out, err := s.orders.List(ctx, "")
	if err != nil {
		return nil, err
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func sortOrdersNewestFirst(list []domain.Order) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}
