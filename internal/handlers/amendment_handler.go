package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/httpresp"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	ucAmendment "github.com/glowbook/salon-api/internal/usecase/amendment"
)

type AmendmentHandler struct {
	db      *gorm.DB
	request *ucAmendment.RequestAmendment
	resolve *ucAmendment.ResolveAmendment
}

func NewAmendmentHandler(
	db *gorm.DB,
	request *ucAmendment.RequestAmendment,
	resolve *ucAmendment.ResolveAmendment,
) *AmendmentHandler {
	return &AmendmentHandler{
		db:      db,
		request: request,
		resolve: resolve,
	}
}

type CreateAmendmentRequest struct {
	Field    string `json:"field" binding:"required"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value" binding:"required"`
	Reason   string `json:"reason"`
}

func (h *AmendmentHandler) Create(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	businessID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	var req CreateAmendmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	out, err := h.request.Execute(c.Request.Context(), ucAmendment.RequestAmendmentInput{
		ProfileID:   uint(businessID),
		Field:       req.Field,
		OldValue:    req.OldValue,
		NewValue:    req.NewValue,
		Reason:      req.Reason,
		RequestedBy: requesterID,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

func (h *AmendmentHandler) List(c *gin.Context) {
	q := h.db.Model(&models.AmendmentRequest{})

	if businessID := c.Query("business_id"); businessID != "" {
		q = q.Where("business_profile_id = ?", businessID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []models.AmendmentRequest
	if err := q.Order("created_at DESC").Find(&requests).Error; err != nil {
		httperr.Internal(c, "failed_to_list_amendments", "Could not list amendment requests.")
		return
	}

	httpresp.List(c, requests)
}

type ResolveAmendmentRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

func (h *AmendmentHandler) Resolve(c *gin.Context) {
	reviewerID := c.MustGet(middleware.ContextUserID).(uint)

	amendmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid amendment id.")
		return
	}

	var req ResolveAmendmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	out, err := h.resolve.Execute(c.Request.Context(), ucAmendment.ResolveAmendmentInput{
		AmendmentID: uint(amendmentID),
		Action:      req.Action,
		ReviewerID:  reviewerID,
		Reason:      req.Reason,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
