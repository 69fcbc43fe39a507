package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/httpresp"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/validators"
)

// StaffHandler lets a salon owner manage stylist accounts, including the
// commission rate captured into each completed booking.
type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

func (h *StaffHandler) List(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	var stylists []models.User
	if err := h.db.
		Where("business_profile_id = ? AND role = ?", businessID, models.RoleStylist).
		Order("name ASC").
		Find(&stylists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	httpresp.List(c, stylists)
}

type CreateStylistRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=6"`
	Phone          string   `json:"phone"`
	CommissionRate *float64 `json:"commission_rate,omitempty"`
}

func (h *StaffHandler) Create(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	var req CreateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not accept mail.")
		return
	}

	rate := 15.0
	if req.CommissionRate != nil {
		if *req.CommissionRate < 0 || *req.CommissionRate > 100 {
			httperr.BadRequest(c, "invalid_commission_rate", "Commission rate must be between 0 and 100.")
			return
		}
		rate = *req.CommissionRate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not hash password.")
		return
	}

	stylist := models.User{
		BusinessProfileID: &businessID,
		Name:              req.Name,
		Email:             email,
		PasswordHash:      string(hashed),
		Phone:             req.Phone,
		Role:              models.RoleStylist,
		CommissionRate:    rate,
	}

	if err := h.db.Create(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_create_stylist", "Could not create stylist.")
		return
	}

	c.JSON(http.StatusCreated, userJSON(&stylist))
}

type UpdateStylistRequest struct {
	Name           *string  `json:"name,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	CommissionRate *float64 `json:"commission_rate,omitempty"`
}

func (h *StaffHandler) Update(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	stylistID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid stylist id.")
		return
	}

	var stylist models.User
	if err := h.db.
		Where("id = ? AND business_profile_id = ? AND role = ?", stylistID, businessID, models.RoleStylist).
		First(&stylist).Error; err != nil {
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
		return
	}

	var req UpdateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		stylist.Name = *req.Name
	}
	if req.Phone != nil {
		stylist.Phone = *req.Phone
	}
	if req.CommissionRate != nil {
		if *req.CommissionRate < 0 || *req.CommissionRate > 100 {
			httperr.BadRequest(c, "invalid_commission_rate", "Commission rate must be between 0 and 100.")
			return
		}
		stylist.CommissionRate = *req.CommissionRate
	}

	if err := h.db.Save(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_stylist", "Could not update stylist.")
		return
	}

	c.JSON(http.StatusOK, userJSON(&stylist))
}

func (h *StaffHandler) Remove(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	stylistID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid stylist id.")
		return
	}

	var stylist models.User
	if err := h.db.
		Where("id = ? AND business_profile_id = ? AND role = ?", stylistID, businessID, models.RoleStylist).
		First(&stylist).Error; err != nil {
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
		return
	}

	// Detach rather than delete so completed bookings keep pointing at a
	// real user row.
	stylist.BusinessProfileID = nil
	if err := h.db.Save(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_remove_stylist", "Could not remove stylist.")
		return
	}

	c.Status(http.StatusNoContent)
}
