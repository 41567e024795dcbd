package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service"
)

// @Summary Reviews of a product, newest first
// @Tags reviews
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} domain.Review
// @Router /products/{id}/reviews [get]
func (s *Server) listProductReviews(c *gin.Context) {
	list, err := s.deps.Reviews.ListForProduct(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type createReviewReq struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title"`
	Comment string `json:"comment" binding:"required"`
}

// @Summary Leave a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param input body createReviewReq true "Review"
// @Success 201 {object} domain.Review
// @Failure 404 {object} map[string]string
// @Router /products/{id}/reviews [post]
func (s *Server) createReview(c *gin.Context) {
	var req createReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.deps.Users.GetByID(c, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	// a reviewer who bought the product gets the verified badge
	verified := false
	orders, err := s.deps.Orders.ListForUser(c, u.ID)
	if err == nil {
		for _, o := range orders {
			for _, p := range o.Products {
				if p.ProductID == c.Param("id") {
					verified = true
				}
			}
		}
	}
	r, err := s.deps.Reviews.Create(c, domain.Review{
		ProductID:        c.Param("id"),
		UserID:           u.ID,
		UserName:         u.Name,
		Rating:           req.Rating,
		Title:            req.Title,
		Comment:          req.Comment,
		VerifiedPurchase: verified,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// @Summary Mark a review as helpful
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} domain.Review
// @Failure 404 {object} map[string]string
// @Router /reviews/{id}/helpful [post]
func (s *Server) markReviewHelpful(c *gin.Context) {
	r, err := s.deps.Reviews.MarkHelpful(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary All reviews
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Review
// @Router /admin/reviews [get]
func (s *Server) listAllReviews(c *gin.Context) {
	list, err := s.deps.Reviews.ListAll(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type updateReviewReq struct {
	Rating  *int    `json:"rating"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

// @Summary Moderate a review (partial update)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param input body updateReviewReq true "Fields to update"
// @Success 200 {object} domain.Review
// @Failure 404 {object} map[string]string
// @Router /admin/reviews/{id} [put]
func (s *Server) updateReview(c *gin.Context) {
	var req updateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	r, err := s.deps.Reviews.Update(c, c.Param("id"), service.ReviewUpdate{
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary Delete a review
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204
// @Router /admin/reviews/{id} [delete]
func (s *Server) deleteReview(c *gin.Context) {
	if err := s.deps.Reviews.Delete(c, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
