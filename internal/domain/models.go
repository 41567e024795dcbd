package domain

import "time"

// Product представляет товар каталога. Цена хранится в минимальных
// денежных единицах (целое число).
type Product struct {
	ID          string           `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       int64            `json:"price"`
	Stock       int64            `json:"stock"`
	Images      []string         `json:"images" gorm:"serializer:json"`
	Tags        []string         `json:"tags" gorm:"serializer:json"`
	Rating      float64          `json:"rating,omitempty"`
	ReviewCount int64            `json:"reviews,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time        `json:"created_at"`
}

// PrimaryImage возвращает первую картинку товара или "" если их нет
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductVariant вариант товара (вес, размер и т.п.)
type ProductVariant struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Category категория каталога, slug уникален
type Category struct {
	ID             string `json:"id" gorm:"primaryKey"`
	Name           string `json:"name"`
	Slug           string `json:"slug" gorm:"uniqueIndex"`
	Description    string `json:"description,omitempty"`
	ParentCategory string `json:"parent_category,omitempty"`
	Image          string `json:"image,omitempty"`
}

// CartItem позиция корзины: товар упоминается по id, не копируется
type CartItem struct {
	ProductID string            `json:"product_id"`
	Quantity  int64             `json:"quantity"`
	Variant   map[string]string `json:"variant,omitempty"`
}

// OrderStatus статус заказа. Граф переходов нигде не ограничен:
// админка может выставить любой статус в любой момент.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid проверяет, что значение входит в перечень статусов
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderProduct денормализованный снимок товара на момент оформления,
// чтобы последующие правки каталога не переписывали историю заказов
type OrderProduct struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
}

// Order сущность заказа
type Order struct {
	ID              string         `json:"id" gorm:"primaryKey"`
	UserID          string         `json:"user_id"`
	Products        []OrderProduct `json:"products" gorm:"serializer:json"`
	Status          OrderStatus    `json:"status"`
	TotalPrice      int64          `json:"total_price"`
	ShippingAddress Address        `json:"shipping_address" gorm:"serializer:json"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Role роль пользователя
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User учётная запись покупателя или администратора
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Addresses    []Address `json:"address" gorm:"serializer:json"`
	CreatedAt    time.Time `json:"created_at"`
}

// Address адрес доставки из адресной книги пользователя
type Address struct {
	ID        string `json:"id"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}
