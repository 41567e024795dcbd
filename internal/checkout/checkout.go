// Package checkout ведёт оформление заказа тремя шагами:
// адрес доставки -> оплата -> подтверждение. Купоны — фиксированная
// таблица кодов с процентной скидкой.
package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

// Stage шаг оформления
type Stage string

const (
	StageShipping     Stage = "shipping"
	StagePayment      Stage = "payment"
	StageConfirmation Stage = "confirmation"
)

var (
	// ErrInvalidCoupon код не найден в таблице; сумма не меняется
	ErrInvalidCoupon = errors.New("invalid coupon code")
	// ErrCartEmpty пустая корзина вне шага подтверждения прерывает оформление
	ErrCartEmpty = errors.New("cart is empty")
	// ErrValidation не заполнены обязательные поля доставки
	ErrValidation = errors.New("validation failed")
	// ErrWrongStage операция не соответствует текущему шагу
	ErrWrongStage = errors.New("wrong checkout stage")
)

// Coupon применённый купон
type Coupon struct {
	Code    string `json:"code"`
	Percent int64  `json:"percent"`
}

// фиксированная таблица кодов
var coupons = map[string]int64{
	"SAVE10":  10,
	"SAVE20":  20,
	"FIRST50": 50,
}

// LookupCoupon ищет код без учёта регистра
func LookupCoupon(code string) (Coupon, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	percent, ok := coupons[c]
	if !ok {
		return Coupon{}, ErrInvalidCoupon
	}
	return Coupon{Code: c, Percent: percent}, nil
}

// OrderPlacer создаёт заказ; реализуется сервисом заказов
type OrderPlacer interface {
	Create(ctx context.Context, userID string, items []domain.CartItem, shipping domain.Address, total int64) (*domain.Order, error)
}

// Flow оформление заказа одного пользователя
type Flow struct {
	mu       sync.Mutex
	stage    Stage
	userID   string
	cart     *cart.Cart
	orders   OrderPlacer
	shipping domain.Address
	coupon   *Coupon
	orderID  string
}

func NewFlow(userID string, c *cart.Cart, orders OrderPlacer) *Flow {
	return &Flow{stage: StageShipping, userID: userID, cart: c, orders: orders}
}

func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// OrderID id созданного заказа, заполняется на шаге подтверждения
func (f *Flow) OrderID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderID
}

// SubmitShipping принимает адрес: все поля обязательны
func (f *Flow) SubmitShipping(a domain.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StageShipping {
		return ErrWrongStage
	}
	if f.cart.Count() == 0 {
		return ErrCartEmpty
	}
	if a.Street == "" || a.City == "" || a.State == "" || a.ZipCode == "" || a.Country == "" {
		return ErrValidation
	}
	f.shipping = a
	f.stage = StagePayment
	return nil
}

// ApplyCoupon применяет код; неверный код оставляет суммы как были
func (f *Flow) ApplyCoupon(code string) (Coupon, error) {
	c, err := LookupCoupon(code)
	if err != nil {
		return Coupon{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage == StageConfirmation {
		return Coupon{}, ErrWrongStage
	}
	f.coupon = &c
	return c, nil
}

func (f *Flow) RemoveCoupon() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coupon = nil
}

// AppliedCoupon текущий купон или nil
func (f *Flow) AppliedCoupon() *Coupon {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.coupon == nil {
		return nil
	}
	cp := *f.coupon
	return &cp
}

// Subtotal сумма корзины до скидки
func (f *Flow) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(f.cart.Total())
}

// Discount скидка по применённому купону
func (f *Flow) Discount() decimal.Decimal {
	f.mu.Lock()
	coupon := f.coupon
	f.mu.Unlock()
	if coupon == nil {
		return decimal.Zero
	}
	return f.Subtotal().Mul(decimal.NewFromInt(coupon.Percent)).Div(decimal.NewFromInt(100))
}

// FinalTotal сумма к оплате
func (f *Flow) FinalTotal() decimal.Decimal {
	return f.Subtotal().Sub(f.Discount())
}

// PlaceOrder создаёт заказ, очищает корзину и переводит оформление в
// подтверждение. Требует шага оплаты и непустой корзины.
func (f *Flow) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	f.mu.Lock()
	if f.stage != StagePayment {
		f.mu.Unlock()
		return nil, ErrWrongStage
	}
	shipping := f.shipping
	f.mu.Unlock()

	items := f.cart.Items()
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	total := f.FinalTotal().Round(0).IntPart()

	o, err := f.orders.Create(ctx, f.userID, items, shipping, total)
	if err != nil {
		return nil, err
	}
	if err := f.cart.Clear(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.orderID = o.ID
	f.stage = StageConfirmation
	f.mu.Unlock()
	return o, nil
}
