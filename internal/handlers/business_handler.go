package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/timezone"
	ucVerification "github.com/glowbook/salon-api/internal/usecase/verification"
)

type BusinessHandler struct {
	db        *gorm.DB
	setStatus *ucVerification.SetProfileStatus
}

func NewBusinessHandler(db *gorm.DB, setStatus *ucVerification.SetProfileStatus) *BusinessHandler {
	return &BusinessHandler{db: db, setStatus: setStatus}
}

func (h *BusinessHandler) GetMyBusiness(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	var profile models.BusinessProfile
	if err := h.db.First(&profile, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	var checklist models.VerificationChecklist
	completion := 0
	if err := h.db.Where("business_profile_id = ?", businessID).First(&checklist).Error; err == nil {
		completion = checklist.CompletionPercent()
	}

	c.JSON(http.StatusOK, gin.H{
		"business":                profile,
		"verification_completion": completion,
	})
}

type UpdateBusinessRequest struct {
	Description   *string `json:"description,omitempty"`
	BusinessEmail *string `json:"business_email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	Timezone      *string `json:"timezone,omitempty"`
}

func (h *BusinessHandler) UpdateMyBusiness(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	var profile models.BusinessProfile
	if err := h.db.First(&profile, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.BusinessEmail != nil {
		profile.BusinessEmail = *req.BusinessEmail
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		profile.Timezone = *req.Timezone
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Could not update business.")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SubmitForReview moves a pending or rejected business into in_review; the
// same notification path as the reviewer console fires.
func (h *BusinessHandler) SubmitForReview(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	var profile models.BusinessProfile
	if err := h.db.First(&profile, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	current := domain.Status(profile.VerificationStatus)
	if current != domain.StatusPending && current != domain.StatusRejected {
		httperr.BadRequest(c, "invalid_state", "Business is already in review or approved.")
		return
	}

	out, err := h.setStatus.Execute(c.Request.Context(), ucVerification.SetProfileStatusInput{
		ProfileID:  businessID,
		Status:     domain.StatusInReview,
		ReviewerID: userID,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_submit", "Could not submit for review.")
		return
	}

	c.JSON(http.StatusOK, out)
}
