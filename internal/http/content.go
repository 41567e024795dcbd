package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

// storefront read side

// @Summary Active banners in display order
// @Tags content
// @Produce json
// @Success 200 {array} domain.Banner
// @Router /content/banners [get]
func (s *Server) activeBanners(c *gin.Context) {
	list, err := s.deps.Content.ActiveBanners(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Active site links grouped by category
// @Tags content
// @Produce json
// @Success 200 {array} domain.SiteLink
// @Router /content/links [get]
func (s *Server) activeLinks(c *gin.Context) {
	list, err := s.deps.Content.ListLinks(c, true)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Active site logos
// @Tags content
// @Produce json
// @Success 200 {array} domain.SiteLogo
// @Router /content/logos [get]
func (s *Server) activeLogos(c *gin.Context) {
	list, err := s.deps.Content.ListLogos(c, true)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// admin banner management

type bannerReq struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url" binding:"required"`
	LinkURL     string     `json:"link_url"`
	ButtonText  string     `json:"button_text"`
	Position    int        `json:"position"`
	IsActive    bool       `json:"is_active"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (r bannerReq) toDomain(id string) domain.Banner {
	return domain.Banner{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		LinkURL:     r.LinkURL,
		ButtonText:  r.ButtonText,
		Position:    r.Position,
		IsActive:    r.IsActive,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// @Summary List all banners
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Banner
// @Router /admin/banners [get]
func (s *Server) listBanners(c *gin.Context) {
	list, err := s.deps.Content.ListBanners(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create banner
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body bannerReq true "Banner"
// @Success 201 {object} domain.Banner
// @Router /admin/banners [post]
func (s *Server) createBanner(c *gin.Context) {
	var req bannerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	b, err := s.deps.Content.CreateBanner(c, req.toDomain(""))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// @Summary Update banner
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Banner ID"
// @Param input body bannerReq true "Banner"
// @Success 200 {object} domain.Banner
// @Failure 404 {object} map[string]string
// @Router /admin/banners/{id} [put]
func (s *Server) updateBanner(c *gin.Context) {
	var req bannerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	b, err := s.deps.Content.UpdateBanner(c, req.toDomain(c.Param("id")))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Delete banner
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Banner ID"
// @Success 204
// @Router /admin/banners/{id} [delete]
func (s *Server) deleteBanner(c *gin.Context) {
	if err := s.deps.Content.DeleteBanner(c, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// admin site link management

type siteLinkReq struct {
	Name     string `json:"name" binding:"required"`
	URL      string `json:"url" binding:"required"`
	Category string `json:"category"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}

// @Summary List all site links
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.SiteLink
// @Router /admin/links [get]
func (s *Server) listLinks(c *gin.Context) {
	list, err := s.deps.Content.ListLinks(c, false)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create site link
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body siteLinkReq true "Site link"
// @Success 201 {object} domain.SiteLink
// @Router /admin/links [post]
func (s *Server) createLink(c *gin.Context) {
	var req siteLinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	l, err := s.deps.Content.CreateLink(c, domain.SiteLink{
		Name: req.Name, URL: req.URL, Category: req.Category,
		Position: req.Position, IsActive: req.IsActive,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// @Summary Update site link
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Link ID"
// @Param input body siteLinkReq true "Site link"
// @Success 200 {object} domain.SiteLink
// @Failure 404 {object} map[string]string
// @Router /admin/links/{id} [put]
func (s *Server) updateLink(c *gin.Context) {
	var req siteLinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	l, err := s.deps.Content.UpdateLink(c, domain.SiteLink{
		ID: c.Param("id"), Name: req.Name, URL: req.URL,
		Category: req.Category, Position: req.Position, IsActive: req.IsActive,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// @Summary Delete site link
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Link ID"
// @Success 204
// @Router /admin/links/{id} [delete]
func (s *Server) deleteLink(c *gin.Context) {
	if err := s.deps.Content.DeleteLink(c, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// admin logo management

type logoReq struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url" binding:"required"`
	AltText  string `json:"alt_text"`
	IsActive bool   `json:"is_active"`
}

// @Summary List all logos
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.SiteLogo
// @Router /admin/logos [get]
func (s *Server) listLogos(c *gin.Context) {
	list, err := s.deps.Content.ListLogos(c, false)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create logo
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body logoReq true "Logo"
// @Success 201 {object} domain.SiteLogo
// @Router /admin/logos [post]
func (s *Server) createLogo(c *gin.Context) {
	var req logoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	l, err := s.deps.Content.CreateLogo(c, domain.SiteLogo{
		Name: req.Name, ImageURL: req.ImageURL, AltText: req.AltText, IsActive: req.IsActive,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// @Summary Update logo
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Logo ID"
// @Param input body logoReq true "Logo"
// @Success 200 {object} domain.SiteLogo
// @Failure 404 {object} map[string]string
// @Router /admin/logos/{id} [put]
func (s *Server) updateLogo(c *gin.Context) {
	var req logoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	l, err := s.deps.Content.UpdateLogo(c, domain.SiteLogo{
		ID: c.Param("id"), Name: req.Name, ImageURL: req.ImageURL,
		AltText: req.AltText, IsActive: req.IsActive,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// @Summary Delete logo
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Logo ID"
// @Success 204
// @Router /admin/logos/{id} [delete]
func (s *Server) deleteLogo(c *gin.Context) {
	if err := s.deps.Content.DeleteLogo(c, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
