package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service"
)

// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	list, err := s.deps.Categories.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get category by id
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} domain.Category
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [get]
func (s *Server) getCategory(c *gin.Context) {
	cat, err := s.deps.Categories.GetByID(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

type createCategoryReq struct {
	Name           string `json:"name" binding:"required"`
	Slug           string `json:"slug" binding:"required"`
	Description    string `json:"description"`
	ParentCategory string `json:"parent_category"`
	Image          string `json:"image"`
}

// @Summary Create category
// @Tags admin
// @Accept json
// @Produce json
// @Param input body createCategoryReq true "Category"
// @Success 201 {object} domain.Category
// @Failure 409 {object} map[string]string
// @Router /admin/categories [post]
func (s *Server) createCategory(c *gin.Context) {
	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cat, err := s.deps.Categories.Create(c, domain.Category{
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		ParentCategory: req.ParentCategory,
		Image:          req.Image,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

type updateCategoryReq struct {
	Name           *string `json:"name"`
	Slug           *string `json:"slug"`
	Description    *string `json:"description"`
	ParentCategory *string `json:"parent_category"`
	Image          *string `json:"image"`
}

// @Summary Update category (partial)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param input body updateCategoryReq true "Fields to update"
// @Success 200 {object} domain.Category
// @Failure 404 {object} map[string]string
// @Router /admin/categories/{id} [put]
func (s *Server) updateCategory(c *gin.Context) {
	var req updateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cat, err := s.deps.Categories.Update(c, c.Param("id"), service.CategoryUpdate{
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		ParentCategory: req.ParentCategory,
		Image:          req.Image,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// @Summary Delete category
// @Tags admin
// @Param id path string true "Category ID"
// @Success 204
// @Router /admin/categories/{id} [delete]
func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.deps.Categories.Delete(c, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
