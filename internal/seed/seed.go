// Package seed наполняет пустое хранилище демонстрационными данными,
// как это делала инициализация исходной витрины.
package seed

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// Repos набор репозиториев, которые наполняет сид
type Repos struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Banners    repository.BannerRepository
	Links      repository.SiteLinkRepository
	Logos      repository.SiteLogoRepository
}

// Run выходит без изменений, если пользователи уже есть
func Run(ctx context.Context, r Repos) error {
	existing, err := r.Users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	// демо-пароль общий для обоих пользователей
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []domain.User{
		{ID: "1", Name: "Admin User", Email: "admin@n2h.com", PasswordHash: string(hash), Role: domain.RoleAdmin, Addresses: []domain.Address{}},
		{ID: "2", Name: "John Doe", Email: "user@example.com", PasswordHash: string(hash), Role: domain.RoleUser, Addresses: []domain.Address{
			{ID: "a1", Street: "123 Main St", City: "Mumbai", State: "Maharashtra", ZipCode: "400001", Country: "India", IsDefault: true},
		}},
	}
	for i := range users {
		if err := r.Users.Create(ctx, &users[i]); err != nil {
			return err
		}
	}

	categories := []domain.Category{
		{ID: "c1", Name: "Dry Powders", Slug: "dry-powders", Description: "Premium quality spice powders"},
		{ID: "c2", Name: "Masala Blends", Slug: "masala", Description: "Traditional Indian masala blends", ParentCategory: "c1"},
		{ID: "c3", Name: "Snacks", Slug: "snacks", Description: "Delicious traditional snacks"},
		{ID: "c4", Name: "Tea Varieties", Slug: "tea", Description: "Premium tea collections"},
	}
	for i := range categories {
		if err := r.Categories.Create(ctx, &categories[i]); err != nil {
			return err
		}
	}

	products := []domain.Product{
		{
			ID: "p1", Name: "Premium Garam Masala", Category: "c2", Price: 299, Stock: 50,
			Description: "Authentic blend of aromatic spices perfect for Indian cuisine.",
			Images:      []string{"https://images.example.com/garam-masala.jpg"},
			Tags:        []string{"spices", "masala", "indian"},
			Rating:      4.5, ReviewCount: 128,
			Variants: []domain.ProductVariant{{ID: "v1", Name: "Weight", Options: []string{"100g", "250g", "500g"}}},
		},
		{
			ID: "p2", Name: "Red Chilli Powder", Category: "c1", Price: 199, Stock: 75,
			Description: "Pure and fiery red chilli powder with no additives.",
			Images:      []string{"https://images.example.com/chilli-powder.jpg"},
			Tags:        []string{"spices", "chilli", "hot"},
			Rating:      4.8, ReviewCount: 95,
			Variants: []domain.ProductVariant{
				{ID: "v2", Name: "Weight", Options: []string{"100g", "250g", "500g", "1kg"}},
				{ID: "v3", Name: "Heat Level", Options: []string{"Medium", "Hot", "Extra Hot"}},
			},
		},
		{
			ID: "p3", Name: "Turmeric Powder", Category: "c1", Price: 149, Stock: 100,
			Description: "Golden turmeric powder with rich color and aroma.",
			Images:      []string{"https://images.example.com/turmeric.jpg"},
			Tags:        []string{"spices", "turmeric", "healthy"},
			Rating:      4.6, ReviewCount: 210,
		},
		{
			ID: "p4", Name: "Masala Chai Mix", Category: "c4", Price: 249, Stock: 60,
			Description: "Aromatic chai blend with cardamom, ginger and cinnamon.",
			Images:      []string{"https://images.example.com/chai-mix.jpg"},
			Tags:        []string{"tea", "chai", "beverages"},
			Rating:      4.7, ReviewCount: 156,
		},
	}
	for i := range products {
		if err := r.Products.Create(ctx, &products[i]); err != nil {
			return err
		}
	}

	banner := domain.Banner{
		ID: "b1", Title: "Festive Spice Sale", Description: "Up to 20% off on masala blends",
		ImageURL: "https://images.example.com/banner-sale.jpg", LinkURL: "/products?category=c2",
		ButtonText: "Shop Now", Position: 1, IsActive: true,
	}
	if err := r.Banners.Create(ctx, &banner); err != nil {
		return err
	}
	links := []domain.SiteLink{
		{ID: "l1", Name: "About Us", URL: "/about", Category: "company", Position: 1, IsActive: true},
		{ID: "l2", Name: "Shipping Policy", URL: "/shipping", Category: "support", Position: 1, IsActive: true},
	}
	for i := range links {
		if err := r.Links.Create(ctx, &links[i]); err != nil {
			return err
		}
	}
	logo := domain.SiteLogo{ID: "lg1", Name: "Primary", ImageURL: "https://images.example.com/logo.svg", AltText: "N2H Spices", IsActive: true}
	return r.Logos.Create(ctx, &logo)
}
