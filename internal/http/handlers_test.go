package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"
)

func setupServer(t *testing.T) (*Server, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := repository.NewMemoryStore()
	usersRepo := repository.NewMemoryUsers(store)
	ordersRepo := repository.NewMemoryOrders(store)
	tx := repository.NewMemoryTx(store)

	productsSvc := service.NewProductService(store)
	categoriesSvc := service.NewCategoryService(repository.NewMemoryCategories(store))
	ordersSvc := service.NewOrderService(store, ordersRepo, tx)
	usersSvc := service.NewUserService(usersRepo)
	authSvc := service.NewAuthService(usersRepo, "test-secret")
	reviewsSvc := service.NewReviewService(repository.NewMemoryReviews(store), store)
	contentSvc := service.NewContentService(
		repository.NewMemoryBanners(store),
		repository.NewMemorySiteLinks(store),
		repository.NewMemorySiteLogos(store),
	)
	carts := cart.NewManager(repository.NewMemoryCarts(store), productsSvc)

	s := NewServer(Deps{
		Products:   productsSvc,
		Categories: categoriesSvc,
		Orders:     ordersSvc,
		Users:      usersSvc,
		Auth:       authSvc,
		Reviews:    reviewsSvc,
		Content:    contentSvc,
		Carts:      carts,
	})

	// admin account: register, promote, then log in again so the token
	// carries the admin role
	admin, _, err := authSvc.Register(ctx, "Admin", "admin@example.com", "password123")
	if err != nil {
		t.Fatal(err)
	}
	role := domain.RoleAdmin
	if _, err := usersSvc.Update(ctx, admin.ID, service.UserUpdate{Role: &role}); err != nil {
		t.Fatal(err)
	}
	_, adminToken, err := authSvc.Login(ctx, "admin@example.com", "password123")
	if err != nil {
		t.Fatal(err)
	}
	_, userToken, err := authSvc.Register(ctx, "John", "john@example.com", "password123")
	if err != nil {
		t.Fatal(err)
	}
	return s, adminToken, userToken
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("bad json %q: %v", w.Body.String(), err)
	}
}

func createProduct(t *testing.T, s *Server, adminToken string, body map[string]any) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/v1/admin/products", adminToken, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: %d %s", w.Code, w.Body.String())
	}
	var p domain.Product
	decode(t, w, &p)
	return p.ID
}

func TestAuthFlow(t *testing.T) {
	s, _, _ := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "Jane", "email": "jane@example.com", "password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	var reg struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	decode(t, w, &reg)
	if reg.Token == "" || reg.User.Role != domain.RoleUser {
		t.Fatalf("register payload wrong: %+v", reg)
	}

	// duplicate email conflicts
	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "Jane2", "email": "jane@example.com", "password": "password123",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: want 409, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "jane@example.com", "password": "wrong-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: want 401, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/auth/me", reg.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d", w.Code)
	}
	var me domain.User
	decode(t, w, &me)
	if me.Email != "jane@example.com" {
		t.Fatalf("me payload wrong: %+v", me)
	}
}

func TestAdminGate(t *testing.T) {
	s, _, userToken := setupServer(t)

	body := map[string]any{"name": "Garam Masala", "price": 299, "stock": 10}
	w := doJSON(t, s, http.MethodPost, "/api/v1/admin/products", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: want 401, got %d", w.Code)
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/admin/products", userToken, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin: want 403, got %d", w.Code)
	}
}

func TestProductCatalog(t *testing.T) {
	s, adminToken, _ := setupServer(t)
	createProduct(t, s, adminToken, map[string]any{"name": "Garam Masala", "category": "c1", "price": 299, "stock": 10, "tags": []string{"spicy"}})
	createProduct(t, s, adminToken, map[string]any{"name": "Turmeric", "category": "c1", "price": 149, "stock": 5})
	createProduct(t, s, adminToken, map[string]any{"name": "Chai Mix", "category": "c4", "price": 249, "stock": 3})

	var list []domain.Product
	w := doJSON(t, s, http.MethodGet, "/api/v1/products?category=c1&sort=price_asc", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	decode(t, w, &list)
	if len(list) != 2 || list[0].Price != 149 {
		t.Fatalf("filtered sorted list wrong: %+v", list)
	}

	// single-character search is ignored, everything comes back
	w = doJSON(t, s, http.MethodGet, "/api/v1/products?search=g", "", nil)
	decode(t, w, &list)
	if len(list) != 3 {
		t.Fatalf("short search must be ignored: got %d", len(list))
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/products?search=chai", "", nil)
	decode(t, w, &list)
	if len(list) != 1 || list[0].Name != "Chai Mix" {
		t.Fatalf("search failed: %+v", list)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/products/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing product: want 404, got %d", w.Code)
	}
}

func TestCartEndpoints(t *testing.T) {
	s, adminToken, userToken := setupServer(t)
	pid := createProduct(t, s, adminToken, map[string]any{"name": "Garam Masala", "price": 299, "stock": 10})

	var view struct {
		Items []domain.CartItem `json:"items"`
		Total int64             `json:"total"`
		Count int64             `json:"count"`
	}

	w := doJSON(t, s, http.MethodPost, "/api/v1/cart/items", userToken, map[string]any{"product_id": pid, "quantity": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("add: %d %s", w.Code, w.Body.String())
	}
	decode(t, w, &view)
	if view.Count != 2 || view.Total != 598 {
		t.Fatalf("cart view wrong: %+v", view)
	}

	// negative delta shrinks the line
	w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", userToken, map[string]any{"product_id": pid, "quantity": -1})
	decode(t, w, &view)
	if view.Count != 1 {
		t.Fatalf("after -1: %+v", view)
	}

	w = doJSON(t, s, http.MethodPut, "/api/v1/cart/items/"+pid, userToken, map[string]any{"quantity": 5})
	decode(t, w, &view)
	if view.Count != 5 {
		t.Fatalf("set quantity: %+v", view)
	}

	w = doJSON(t, s, http.MethodDelete, "/api/v1/cart/items/"+pid, userToken, nil)
	decode(t, w, &view)
	if len(view.Items) != 0 {
		t.Fatalf("remove: %+v", view)
	}

	w = doJSON(t, s, http.MethodDelete, "/api/v1/cart", userToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("clear: %d", w.Code)
	}
}

func TestCheckoutFlow(t *testing.T) {
	s, adminToken, userToken := setupServer(t)
	pid := createProduct(t, s, adminToken, map[string]any{"name": "Garam Masala", "price": 500, "stock": 10})

	w := doJSON(t, s, http.MethodPost, "/api/v1/cart/items", userToken, map[string]any{"product_id": pid, "quantity": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("add to cart: %d", w.Code)
	}

	// shipping with a missing field is rejected
	w = doJSON(t, s, http.MethodPost, "/api/v1/checkout/shipping", userToken, map[string]any{
		"street": "1 Main St", "city": "Mumbai", "state": "MH", "zip_code": "400001",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("partial shipping: want 400, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/checkout/shipping", userToken, map[string]any{
		"street": "1 Main St", "city": "Mumbai", "state": "MH", "zip_code": "400001", "country": "IN",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("shipping: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/checkout/coupon", userToken, map[string]any{"code": "save10"})
	if w.Code != http.StatusOK {
		t.Fatalf("coupon: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/checkout/coupon", userToken, map[string]any{"code": "NOPE"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad coupon: want 400, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/checkout/confirm", userToken, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("confirm: %d %s", w.Code, w.Body.String())
	}
	var order domain.Order
	decode(t, w, &order)
	if order.TotalPrice != 450 || order.Status != domain.OrderStatusPending {
		t.Fatalf("order wrong: %+v", order)
	}

	// the cart is empty after the order is placed
	var view struct {
		Count int64 `json:"count"`
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/cart", userToken, nil)
	decode(t, w, &view)
	if view.Count != 0 {
		t.Fatalf("cart not cleared: %+v", view)
	}

	// the order shows up in history
	var orders []domain.Order
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders", userToken, nil)
	decode(t, w, &orders)
	if len(orders) != 1 || orders[0].ID != order.ID {
		t.Fatalf("order history wrong: %+v", orders)
	}
}

func TestOrderVisibilityAndStatus(t *testing.T) {
	s, adminToken, userToken := setupServer(t)
	pid := createProduct(t, s, adminToken, map[string]any{"name": "A", "price": 100, "stock": 10})

	doJSON(t, s, http.MethodPost, "/api/v1/cart/items", userToken, map[string]any{"product_id": pid, "quantity": 1})
	doJSON(t, s, http.MethodPost, "/api/v1/checkout/shipping", userToken, map[string]any{
		"street": "1 Main St", "city": "Mumbai", "state": "MH", "zip_code": "400001", "country": "IN",
	})
	w := doJSON(t, s, http.MethodPost, "/api/v1/checkout/confirm", userToken, nil)
	var order domain.Order
	decode(t, w, &order)

	// a stranger's order reads as missing, not forbidden
	_, strangerToken := register(t, s, "stranger@example.com")
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders/"+order.ID, strangerToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("stranger order access: want 404, got %d", w.Code)
	}

	// admin can flip the status arbitrarily, backwards included
	for _, st := range []string{"delivered", "processing"} {
		w = doJSON(t, s, http.MethodPut, "/api/v1/admin/orders/"+order.ID+"/status", adminToken, map[string]any{"status": st})
		if w.Code != http.StatusOK {
			t.Fatalf("status %s: %d %s", st, w.Code, w.Body.String())
		}
	}
	w = doJSON(t, s, http.MethodPut, "/api/v1/admin/orders/"+order.ID+"/status", adminToken, map[string]any{"status": "shredded"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: want 400, got %d", w.Code)
	}
}

func register(t *testing.T, s *Server, email string) (domain.User, string) {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "User", "email": email, "password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: %d", email, w.Code)
	}
	var reg struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	decode(t, w, &reg)
	return reg.User, reg.Token
}

func TestReviewEndpoints(t *testing.T) {
	s, adminToken, userToken := setupServer(t)
	pid := createProduct(t, s, adminToken, map[string]any{"name": "Garam Masala", "price": 299, "stock": 10})

	w := doJSON(t, s, http.MethodPost, "/api/v1/products/"+pid+"/reviews", userToken, map[string]any{
		"rating": 5, "comment": "excellent blend",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create review: %d %s", w.Code, w.Body.String())
	}
	var rev domain.Review
	decode(t, w, &rev)
	if rev.VerifiedPurchase {
		t.Fatalf("no purchase yet, must not be verified")
	}

	var list []domain.Review
	w = doJSON(t, s, http.MethodGet, "/api/v1/products/"+pid+"/reviews", "", nil)
	decode(t, w, &list)
	if len(list) != 1 {
		t.Fatalf("list reviews: %+v", list)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/reviews/"+rev.ID+"/helpful", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("helpful: %d", w.Code)
	}
	decode(t, w, &rev)
	if rev.HelpfulCount != 1 {
		t.Fatalf("helpful count: %+v", rev)
	}

	// the product aggregate follows the reviews
	var p domain.Product
	w = doJSON(t, s, http.MethodGet, "/api/v1/products/"+pid, "", nil)
	decode(t, w, &p)
	if p.Rating != 5 || p.ReviewCount != 1 {
		t.Fatalf("aggregate wrong: %+v", p)
	}
}

func TestContentEndpoints(t *testing.T) {
	s, adminToken, _ := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/admin/banners", adminToken, map[string]any{
		"title": "Diwali Sale", "image_url": "sale.jpg", "is_active": true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create banner: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/admin/banners", adminToken, map[string]any{
		"title": "Hidden", "image_url": "hidden.jpg", "is_active": false,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create banner: %d", w.Code)
	}

	// storefront sees only the active banner
	var banners []domain.Banner
	w = doJSON(t, s, http.MethodGet, "/api/v1/content/banners", "", nil)
	decode(t, w, &banners)
	if len(banners) != 1 || banners[0].Title != "Diwali Sale" {
		t.Fatalf("active banners wrong: %+v", banners)
	}

	// admin sees both
	w = doJSON(t, s, http.MethodGet, "/api/v1/admin/banners", adminToken, nil)
	decode(t, w, &banners)
	if len(banners) != 2 {
		t.Fatalf("admin banners: %+v", banners)
	}
}

func TestProfileAddresses(t *testing.T) {
	s, _, userToken := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/profile/addresses", userToken, map[string]any{
		"street": "1 Main St", "city": "Mumbai", "state": "MH", "zip_code": "400001", "country": "IN",
	})
	if w.Code != http.StatusOK && w.Code != http.StatusCreated {
		t.Fatalf("add address: %d %s", w.Code, w.Body.String())
	}
	var u domain.User
	decode(t, w, &u)
	if len(u.Addresses) != 1 || !u.Addresses[0].IsDefault {
		t.Fatalf("first address must be default: %+v", u.Addresses)
	}

	w = doJSON(t, s, http.MethodDelete, "/api/v1/profile/addresses/"+u.Addresses[0].ID, userToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete address: %d", w.Code)
	}
}
