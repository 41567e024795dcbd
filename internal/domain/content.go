package domain

import "time"

// Review отзыв покупателя о товаре
type Review struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	ProductID        string    `json:"product_id"`
	UserID           string    `json:"user_id"`
	UserName         string    `json:"user_name"`
	Rating           int       `json:"rating"`
	Title            string    `json:"title,omitempty"`
	Comment          string    `json:"comment"`
	VerifiedPurchase bool      `json:"verified_purchase"`
	HelpfulCount     int64     `json:"helpful_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Banner промо-баннер витрины, управляется из админки
type Banner struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url"`
	LinkURL     string     `json:"link_url,omitempty"`
	ButtonText  string     `json:"button_text,omitempty"`
	Position    int        `json:"position"`
	IsActive    bool       `json:"is_active"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// SiteLink ссылка навигации/футера, сгруппирована по категории
type SiteLink struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}

// SiteLogo логотип сайта (основной, футер и т.п.)
type SiteLogo struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text,omitempty"`
	IsActive bool   `json:"is_active"`
}
