package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/checkout"
	"storefront/internal/domain"
)

// flowFor выдаёт оформление текущего пользователя. fresh=true начинает
// новое оформление, если предыдущее уже завершилось подтверждением.
func (s *Server) flowFor(c *gin.Context, fresh bool) (*checkout.Flow, bool) {
	crt, ok := s.userCart(c)
	if !ok {
		return nil, false
	}
	uid := currentUserID(c)
	s.flowsMu.Lock()
	defer s.flowsMu.Unlock()
	f, exists := s.flows[uid]
	if !exists || (fresh && f.Stage() == checkout.StageConfirmation) {
		f = checkout.NewFlow(uid, crt, s.deps.Orders)
		s.flows[uid] = f
	}
	return f, true
}

func flowView(f *checkout.Flow) gin.H {
	view := gin.H{
		"stage":       f.Stage(),
		"subtotal":    f.Subtotal().StringFixed(2),
		"discount":    f.Discount().StringFixed(2),
		"final_total": f.FinalTotal().StringFixed(2),
	}
	if coupon := f.AppliedCoupon(); coupon != nil {
		view["coupon"] = coupon
	}
	if id := f.OrderID(); id != "" {
		view["order_id"] = id
	}
	return view
}

// @Summary Checkout state and totals
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /checkout [get]
func (s *Server) checkoutState(c *gin.Context) {
	f, ok := s.flowFor(c, false)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, flowView(f))
}

type shippingReq struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zip_code" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// @Summary Submit the shipping address
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body shippingReq true "Shipping address"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /checkout/shipping [post]
func (s *Server) checkoutShipping(c *gin.Context) {
	var req shippingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	f, ok := s.flowFor(c, true)
	if !ok {
		return
	}
	err := f.SubmitShipping(domain.Address{
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Country: req.Country,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, flowView(f))
}

type couponReq struct {
	Code string `json:"code" binding:"required"`
}

// @Summary Apply a coupon code
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body couponReq true "Coupon code"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /checkout/coupon [post]
func (s *Server) checkoutApplyCoupon(c *gin.Context) {
	var req couponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	f, ok := s.flowFor(c, false)
	if !ok {
		return
	}
	if _, err := f.ApplyCoupon(req.Code); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, flowView(f))
}

// @Summary Remove the applied coupon
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /checkout/coupon [delete]
func (s *Server) checkoutRemoveCoupon(c *gin.Context) {
	f, ok := s.flowFor(c, false)
	if !ok {
		return
	}
	f.RemoveCoupon()
	c.JSON(http.StatusOK, flowView(f))
}

// @Summary Place the order and enter confirmation
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /checkout/confirm [post]
func (s *Server) checkoutConfirm(c *gin.Context) {
	f, ok := s.flowFor(c, false)
	if !ok {
		return
	}
	o, err := f.PlaceOrder(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}
