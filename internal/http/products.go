package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service"
)

// @Summary List products
// @Tags products
// @Produce json
// @Param category query string false "Category ID"
// @Param search query string false "Substring over name, description, tags"
// @Param sort query string false "price_asc | price_desc | name_asc | rating | newest"
// @Param min_price query int false "Min price"
// @Param max_price query int false "Max price"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	var q service.ProductQuery
	q.Category = c.Query("category")
	// under two characters the UI would not have fired the search yet
	if search := c.Query("search"); len(search) >= 2 {
		q.Search = search
	}
	q.Sort = c.Query("sort")
	if v := c.Query("min_price"); v != "" {
		if x, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.MinPrice = &x
		}
	}
	if v := c.Query("max_price"); v != "" {
		if x, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.MaxPrice = &x
		}
	}
	list, err := s.deps.Products.List(c, q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.deps.Products.GetByID(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type createProductReq struct {
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	Category    string                  `json:"category"`
	Price       int64                   `json:"price"`
	Stock       int64                   `json:"stock"`
	Images      []string                `json:"images"`
	Tags        []string                `json:"tags"`
	Variants    []domain.ProductVariant `json:"variants"`
}

// @Summary Create product
// @Tags admin
// @Accept json
// @Produce json
// @Param input body createProductReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /admin/products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.deps.Products.Create(c, domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
		Tags:        req.Tags,
		Variants:    req.Variants,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

type updateProductReq struct {
	Name        *string                  `json:"name"`
	Description *string                  `json:"description"`
	Category    *string                  `json:"category"`
	Price       *int64                   `json:"price"`
	Stock       *int64                   `json:"stock"`
	Images      *[]string                `json:"images"`
	Tags        *[]string                `json:"tags"`
	Variants    *[]domain.ProductVariant `json:"variants"`
}

// @Summary Update product (partial)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body updateProductReq true "Fields to update"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /admin/products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.deps.Products.Update(c, c.Param("id"), service.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
		Tags:        req.Tags,
		Variants:    req.Variants,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product
// @Tags admin
// @Param id path string true "Product ID"
// @Success 204
// @Router /admin/products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.deps.Products.Delete(c, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
