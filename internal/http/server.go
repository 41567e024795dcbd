package httpapi

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// Deps сервисы, которые обслуживает HTTP-слой
type Deps struct {
	Products   *service.ProductService
	Categories *service.CategoryService
	Orders     *service.OrderService
	Users      *service.UserService
	Auth       *service.AuthService
	Reviews    *service.ReviewService
	Content    *service.ContentService
	Carts      *cart.Manager
}

// Server HTTP-обвязка витрины и админки
type Server struct {
	engine *gin.Engine
	deps   Deps
	hub    *orderHub

	flowsMu sync.Mutex
	flows   map[string]*checkout.Flow
}

func NewServer(deps Deps) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors.Default())
	s := &Server{
		engine: r,
		deps:   deps,
		hub:    newOrderHub(),
		flows:  make(map[string]*checkout.Flow),
	}
	deps.Orders.SetNotifier(s.hub)
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.POST("/forgot-password", s.forgotPassword)
		auth.GET("/me", s.authRequired(), s.me)

		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.GET(":id/reviews", s.listProductReviews)
		products.POST(":id/reviews", s.authRequired(), s.createReview)

		v1.POST("/reviews/:id/helpful", s.markReviewHelpful)

		categories := v1.Group("/categories")
		categories.GET("", s.listCategories)
		categories.GET(":id", s.getCategory)

		content := v1.Group("/content")
		content.GET("/banners", s.activeBanners)
		content.GET("/links", s.activeLinks)
		content.GET("/logos", s.activeLogos)

		userCart := v1.Group("/cart", s.authRequired())
		userCart.GET("", s.getCart)
		userCart.POST("/items", s.addCartItem)
		userCart.PUT("/items/:productId", s.updateCartItem)
		userCart.DELETE("/items/:productId", s.removeCartItem)
		userCart.DELETE("", s.clearCart)

		co := v1.Group("/checkout", s.authRequired())
		co.GET("", s.checkoutState)
		co.POST("/shipping", s.checkoutShipping)
		co.POST("/coupon", s.checkoutApplyCoupon)
		co.DELETE("/coupon", s.checkoutRemoveCoupon)
		co.POST("/confirm", s.checkoutConfirm)

		orders := v1.Group("/orders", s.authRequired())
		orders.GET("", s.listMyOrders)
		orders.GET(":id", s.getOrder)

		profile := v1.Group("/profile", s.authRequired())
		profile.PUT("", s.updateProfile)
		profile.POST("/addresses", s.addAddress)
		profile.PUT("/addresses/:addressId", s.updateAddress)
		profile.DELETE("/addresses/:addressId", s.deleteAddress)

		admin := v1.Group("/admin", s.authRequired(), s.adminRequired())
		{
			admin.POST("/products", s.createProduct)
			admin.PUT("/products/:id", s.updateProduct)
			admin.DELETE("/products/:id", s.deleteProduct)
			admin.GET("/products/export", s.exportProducts)

			admin.POST("/categories", s.createCategory)
			admin.PUT("/categories/:id", s.updateCategory)
			admin.DELETE("/categories/:id", s.deleteCategory)

			admin.GET("/orders", s.listAllOrders)
			admin.PUT("/orders/:id/status", s.updateOrderStatus)
			admin.GET("/orders/ws", s.orderFeed)

			admin.GET("/users", s.listUsers)
			admin.GET("/users/:id", s.getUser)
			admin.PUT("/users/:id", s.updateUser)
			admin.DELETE("/users/:id", s.deleteUser)

			admin.GET("/reviews", s.listAllReviews)
			admin.PUT("/reviews/:id", s.updateReview)
			admin.DELETE("/reviews/:id", s.deleteReview)

			admin.GET("/banners", s.listBanners)
			admin.POST("/banners", s.createBanner)
			admin.PUT("/banners/:id", s.updateBanner)
			admin.DELETE("/banners/:id", s.deleteBanner)

			admin.GET("/links", s.listLinks)
			admin.POST("/links", s.createLink)
			admin.PUT("/links/:id", s.updateLink)
			admin.DELETE("/links/:id", s.deleteLink)

			admin.GET("/logos", s.listLogos)
			admin.POST("/logos", s.createLogo)
			admin.PUT("/logos/:id", s.updateLogo)
			admin.DELETE("/logos/:id", s.deleteLogo)
		}
	}
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, checkout.ErrValidation),
		errors.Is(err, checkout.ErrCartEmpty),
		errors.Is(err, checkout.ErrInvalidCoupon):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrAlreadyExists),
		errors.Is(err, checkout.ErrWrongStage):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
}
