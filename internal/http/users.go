package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service"
)

type updateProfileReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body updateProfileReq true "Fields to update"
// @Success 200 {object} domain.User
// @Router /profile [put]
func (s *Server) updateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.deps.Users.Update(c, currentUserID(c), service.UserUpdate{Name: req.Name, Email: req.Email})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type addressReq struct {
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

// @Summary Add an address to the address book
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body addressReq true "Address"
// @Success 200 {object} domain.User
// @Router /profile/addresses [post]
func (s *Server) addAddress(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.deps.Users.AddAddress(c, currentUserID(c), domain.Address{
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateAddressReq struct {
	Street    *string `json:"street"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zip_code"`
	Country   *string `json:"country"`
	IsDefault *bool   `json:"is_default"`
}

// @Summary Update an address (partial)
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param addressId path string true "Address ID"
// @Param input body updateAddressReq true "Fields to update"
// @Success 200 {object} domain.User
// @Failure 404 {object} map[string]string
// @Router /profile/addresses/{addressId} [put]
func (s *Server) updateAddress(c *gin.Context) {
	var req updateAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.deps.Users.UpdateAddress(c, currentUserID(c), c.Param("addressId"), service.AddressUpdate{
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Delete an address
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param addressId path string true "Address ID"
// @Success 200 {object} domain.User
// @Router /profile/addresses/{addressId} [delete]
func (s *Server) deleteAddress(c *gin.Context) {
	u, err := s.deps.Users.DeleteAddress(c, currentUserID(c), c.Param("addressId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// admin user management

// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.User
// @Router /admin/users [get]
func (s *Server) listUsers(c *gin.Context) {
	list, err := s.deps.Users.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get user by id
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id} [get]
func (s *Server) getUser(c *gin.Context) {
	u, err := s.deps.Users.GetByID(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type adminUpdateUserReq struct {
	Name  *string      `json:"name"`
	Email *string      `json:"email"`
	Role  *domain.Role `json:"role"`
}

// @Summary Update user (partial), including role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param input body adminUpdateUserReq true "Fields to update"
// @Success 200 {object} domain.User
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id} [put]
func (s *Server) updateUser(c *gin.Context) {
	var req adminUpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.deps.Users.Update(c, c.Param("id"), service.UserUpdate{Name: req.Name, Email: req.Email, Role: req.Role})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Delete user
// @Tags admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Router /admin/users/{id} [delete]
func (s *Server) deleteUser(c *gin.Context) {
	if err := s.deps.Users.Delete(c, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
