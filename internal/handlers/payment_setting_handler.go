package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/cache"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/timezone"
	"github.com/glowbook/salon-api/internal/validators"
)

const statsCacheKey = "admin:payment_stats"
const statsCacheTTL = 60 * time.Second

// PaymentSettingHandler manages the Paystack subaccount binding per
// business, plus the aggregate stats view on the review console.
type PaymentSettingHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPaymentSettingHandler(db *gorm.DB, cacheClient *cache.Cache) *PaymentSettingHandler {
	return &PaymentSettingHandler{db: db, cache: cacheClient}
}

func (h *PaymentSettingHandler) Get(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	var setting models.PaymentSetting
	if err := h.db.
		Where("business_profile_id = ?", businessID).
		First(&setting).Error; err != nil {
		httperr.NotFound(c, "payment_setting_not_found", "No payment settings for this business.")
		return
	}

	c.JSON(http.StatusOK, setting)
}

type UpsertPaymentSettingRequest struct {
	SubaccountCode string `json:"subaccount_code" binding:"required"`
	Notes          string `json:"notes"`
}

// Upsert creates or replaces the subaccount binding. The reviewer doing
// the write is recorded as the verifier.
func (h *PaymentSettingHandler) Upsert(c *gin.Context) {
	reviewerID := c.MustGet(middleware.ContextUserID).(uint)

	businessID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	var req UpsertPaymentSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validators.IsSubaccountCode(req.SubaccountCode) {
		httperr.BadRequest(c, "invalid_subaccount_code", "Subaccount code must look like ACCT_xxxxxxxx.")
		return
	}

	var profile models.BusinessProfile
	if err := h.db.First(&profile, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	now := timezone.Now()

	var setting models.PaymentSetting
	err = h.db.Where("business_profile_id = ?", businessID).First(&setting).Error
	switch {
	case err == nil:
		setting.SubaccountCode = req.SubaccountCode
		setting.Notes = req.Notes
		setting.VerifiedBy = &reviewerID
		setting.VerifiedAt = &now
		err = h.db.Save(&setting).Error
	case err == gorm.ErrRecordNotFound:
		setting = models.PaymentSetting{
			BusinessProfileID: uint(businessID),
			SubaccountCode:    req.SubaccountCode,
			Notes:             req.Notes,
			VerifiedBy:        &reviewerID,
			VerifiedAt:        &now,
		}
		err = h.db.Create(&setting).Error
	}
	if err != nil {
		httperr.Internal(c, "failed_to_save_payment_setting", "Could not save payment settings.")
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), statsCacheKey)
	}

	c.JSON(http.StatusOK, setting)
}

type paymentStats struct {
	TotalBusinesses      int64 `json:"total_businesses"`
	ApprovedBusinesses   int64 `json:"approved_businesses"`
	ConfiguredForPayment int64 `json:"configured_for_payment"`
	PendingReview        int64 `json:"pending_review"`
}

// Stats serves the console dashboard counters, cached for a minute.
func (h *PaymentSettingHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if cached, ok := h.cache.Get(ctx, statsCacheKey); ok {
			var stats paymentStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				c.JSON(http.StatusOK, stats)
				return
			}
		}
	}

	var stats paymentStats
	h.db.Model(&models.BusinessProfile{}).Count(&stats.TotalBusinesses)
	h.db.Model(&models.BusinessProfile{}).
		Where("verification_status = ?", "approved").
		Count(&stats.ApprovedBusinesses)
	h.db.Model(&models.PaymentSetting{}).Count(&stats.ConfiguredForPayment)
	h.db.Model(&models.BusinessProfile{}).
		Where("verification_status = ?", "in_review").
		Count(&stats.PendingReview)

	if h.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			h.cache.Set(ctx, statsCacheKey, string(raw), statsCacheTTL)
		}
	}

	c.JSON(http.StatusOK, stats)
}
