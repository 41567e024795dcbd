package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
)

func (s *Server) userCart(c *gin.Context) (*cart.Cart, bool) {
	crt, err := s.deps.Carts.ForUser(c, currentUserID(c))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return crt, true
}

func cartView(crt *cart.Cart) gin.H {
	return gin.H{
		"items": crt.Items(),
		"total": crt.Total(),
		"count": crt.Count(),
	}
}

// @Summary Cart contents with totals
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	crt, ok := s.userCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartView(crt))
}

type addCartItemReq struct {
	ProductID string            `json:"product_id" binding:"required"`
	Quantity  int64             `json:"quantity" binding:"required"`
	Variant   map[string]string `json:"variant"`
}

// @Summary Merge a signed quantity delta into the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body addCartItemReq true "Line item delta"
// @Success 200 {object} map[string]interface{}
// @Router /cart/items [post]
func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	crt, ok := s.userCart(c)
	if !ok {
		return
	}
	if err := crt.Add(c, req.ProductID, req.Quantity, req.Variant); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(crt))
}

type setQuantityReq struct {
	Quantity int64 `json:"quantity"`
}

// @Summary Set the absolute quantity of a cart line
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param input body setQuantityReq true "Quantity, <= 0 removes the line"
// @Success 200 {object} map[string]interface{}
// @Router /cart/items/{productId} [put]
func (s *Server) updateCartItem(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	crt, ok := s.userCart(c)
	if !ok {
		return
	}
	if err := crt.SetQuantity(c, c.Param("productId"), req.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(crt))
}

// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Router /cart/items/{productId} [delete]
func (s *Server) removeCartItem(c *gin.Context) {
	crt, ok := s.userCart(c)
	if !ok {
		return
	}
	if err := crt.Remove(c, c.Param("productId")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(crt))
}

// @Summary Empty the cart
// @Tags cart
// @Security BearerAuth
// @Success 204
// @Router /cart [delete]
func (s *Server) clearCart(c *gin.Context) {
	crt, ok := s.userCart(c)
	if !ok {
		return
	}
	if err := crt.Clear(c); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
