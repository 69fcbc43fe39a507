package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/httpresp"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	ucVerification "github.com/glowbook/salon-api/internal/usecase/verification"
)

// VerificationHandler is the review console surface. All routes behind it
// require the employee or super role.
type VerificationHandler struct {
	db            *gorm.DB
	getOrCreate   *ucVerification.GetOrCreateChecklist
	setItem       *ucVerification.SetChecklistItem
	grantApproval *ucVerification.GrantFinalApproval
	setStatus     *ucVerification.SetProfileStatus
}

func NewVerificationHandler(
	db *gorm.DB,
	getOrCreate *ucVerification.GetOrCreateChecklist,
	setItem *ucVerification.SetChecklistItem,
	grantApproval *ucVerification.GrantFinalApproval,
	setStatus *ucVerification.SetProfileStatus,
) *VerificationHandler {
	return &VerificationHandler{
		db:            db,
		getOrCreate:   getOrCreate,
		setItem:       setItem,
		grantApproval: grantApproval,
		setStatus:     setStatus,
	}
}

// --------- Business listing ---------

func (h *VerificationHandler) ListBusinesses(c *gin.Context) {
	q := h.db.Model(&models.BusinessProfile{})

	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseStatus(raw)
		if !ok {
			httperr.BadRequest(c, "invalid_status", "Unknown verification status.")
			return
		}
		q = q.Where("verification_status = ?", string(status))
	}

	var profiles []models.BusinessProfile
	if err := q.Order("created_at DESC").Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_businesses", "Could not list businesses.")
		return
	}

	httpresp.List(c, profiles)
}

func (h *VerificationHandler) GetBusiness(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	var profile models.BusinessProfile
	if err := h.db.First(&profile, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	var owner models.User
	h.db.Where("business_profile_id = ? AND role = ?", businessID, models.RoleOwner).First(&owner)

	c.JSON(http.StatusOK, gin.H{
		"business": profile,
		"owner":    userJSON(&owner),
	})
}

// --------- Checklist ---------

func (h *VerificationHandler) GetChecklist(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	cl, err := h.getOrCreate.Execute(c.Request.Context(), uint(businessID))
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checklist":          cl,
		"completion_percent": cl.CompletionPercent(),
		"prerequisites_met":  cl.PrerequisitesMet(),
	})
}

type SetChecklistItemRequest struct {
	Item  string `json:"item" binding:"required"`
	Value *bool  `json:"value" binding:"required"`

	PaystackBusinessName *string `json:"paystack_business_name,omitempty"`
	VerificationNotes    *string `json:"verification_notes,omitempty"`
}

func (h *VerificationHandler) SetChecklistItem(c *gin.Context) {
	reviewerID := c.MustGet(middleware.ContextUserID).(uint)

	checklistID, err := strconv.Atoi(c.Param("checklistId"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid checklist id.")
		return
	}

	var req SetChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	item, ok := domain.ParseItem(req.Item)
	if !ok {
		httperr.BadRequest(c, "invalid_checklist_item", "Unknown checklist item.")
		return
	}

	cl, err := h.setItem.Execute(c.Request.Context(), ucVerification.SetChecklistItemInput{
		ChecklistID:          uint(checklistID),
		Item:                 item,
		Value:                *req.Value,
		ReviewerID:           reviewerID,
		PaystackBusinessName: req.PaystackBusinessName,
		VerificationNotes:    req.VerificationNotes,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checklist":          cl,
		"completion_percent": cl.CompletionPercent(),
		"prerequisites_met":  cl.PrerequisitesMet(),
	})
}

func (h *VerificationHandler) GrantFinalApproval(c *gin.Context) {
	reviewerID := c.MustGet(middleware.ContextUserID).(uint)

	checklistID, err := strconv.Atoi(c.Param("checklistId"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid checklist id.")
		return
	}

	out, err := h.grantApproval.Execute(c.Request.Context(), uint(checklistID), reviewerID)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// --------- Direct status transitions ---------

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *VerificationHandler) SetStatus(c *gin.Context) {
	reviewerID := c.MustGet(middleware.ContextUserID).(uint)

	businessID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		httperr.BadRequest(c, "invalid_status", "Unknown verification status.")
		return
	}

	out, err := h.setStatus.Execute(c.Request.Context(), ucVerification.SetProfileStatusInput{
		ProfileID:  uint(businessID),
		Status:     status,
		ReviewerID: reviewerID,
		Notes:      req.Notes,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// --------- Notification trail ---------

func (h *VerificationHandler) ListEmailLogs(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	var logs []models.VerificationEmailLog
	if err := h.db.
		Where("business_profile_id = ?", businessID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_email_logs", "Could not list email logs.")
		return
	}

	httpresp.List(c, logs)
}
