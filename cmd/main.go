package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/cart"
	"storefront/internal/config"
	httpapi "storefront/internal/http"
	"storefront/internal/repository"
	"storefront/internal/seed"
	"storefront/internal/service"

	_ "storefront/docs"
)

// repos собирает выбранный бэкенд хранения в одном месте
type repos struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	orders     repository.OrderRepository
	users      repository.UserRepository
	carts      repository.CartRepository
	reviews    repository.ReviewRepository
	banners    repository.BannerRepository
	links      repository.SiteLinkRepository
	logos      repository.SiteLogoRepository
	tx         repository.TxManager
}

func buildRepos(cfg config.Config) (repos, error) {
	if cfg.DatabaseDSN != "" {
		store, err := repository.NewPostgresStore(cfg.DatabaseDSN)
		if err != nil {
			return repos{}, err
		}
		return repos{
			products:   repository.NewPostgresProducts(store),
			categories: repository.NewPostgresCategories(store),
			orders:     repository.NewPostgresOrders(store),
			users:      repository.NewPostgresUsers(store),
			carts:      repository.NewPostgresCarts(store),
			reviews:    repository.NewPostgresReviews(store),
			banners:    repository.NewPostgresBanners(store),
			links:      repository.NewPostgresSiteLinks(store),
			logos:      repository.NewPostgresSiteLogos(store),
			tx:         repository.NewPostgresTx(store),
		}, nil
	}
	store := repository.NewMemoryStore()
	return repos{
		products:   store,
		categories: repository.NewMemoryCategories(store),
		orders:     repository.NewMemoryOrders(store),
		users:      repository.NewMemoryUsers(store),
		carts:      repository.NewMemoryCarts(store),
		reviews:    repository.NewMemoryReviews(store),
		banners:    repository.NewMemoryBanners(store),
		links:      repository.NewMemorySiteLinks(store),
		logos:      repository.NewMemorySiteLogos(store),
		tx:         repository.NewMemoryTx(store),
	}, nil
}

func main() {
	cfg := config.Load()

	r, err := buildRepos(cfg)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	if cfg.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := seed.Run(ctx, seed.Repos{
			Users:      r.users,
			Categories: r.categories,
			Products:   r.products,
			Banners:    r.banners,
			Links:      r.links,
			Logos:      r.logos,
		}); err != nil {
			log.Fatalf("seed: %v", err)
		}
		cancel()
	}

	productsSvc := service.NewProductService(r.products)
	categoriesSvc := service.NewCategoryService(r.categories)
	ordersSvc := service.NewOrderService(r.products, r.orders, r.tx)
	usersSvc := service.NewUserService(r.users)
	authSvc := service.NewAuthService(r.users, cfg.JWTSecret)
	reviewsSvc := service.NewReviewService(r.reviews, r.products)
	contentSvc := service.NewContentService(r.banners, r.links, r.logos)
	carts := cart.NewManager(r.carts, productsSvc)

	srv := httpapi.NewServer(httpapi.Deps{
		Products:   productsSvc,
		Categories: categoriesSvc,
		Orders:     ordersSvc,
		Users:      usersSvc,
		Auth:       authSvc,
		Reviews:    reviewsSvc,
		Content:    contentSvc,
		Carts:      carts,
	})

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
