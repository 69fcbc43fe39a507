package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/logger"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/paystack"
)

// PaymentHandler drives the hosted checkout flow. The business subaccount
// receives its share through the split configured at initialize time; a
// business without payment settings gets an unsplit charge.
type PaymentHandler struct {
	db       *gorm.DB
	paystack *paystack.Client
}

func NewPaymentHandler(db *gorm.DB, ps *paystack.Client) *PaymentHandler {
	return &PaymentHandler{db: db, paystack: ps}
}

func (h *PaymentHandler) Initialize(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	var booking models.Booking
	if err := h.db.
		Preload("Service").
		Where("id = ? AND customer_id = ?", bookingID, customerID).
		First(&booking).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if booking.PaymentStatus == models.PaymentPaid {
		httperr.BadRequest(c, "already_paid", "Booking is already paid.")
		return
	}

	var customer models.User
	if err := h.db.First(&customer, customerID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load customer.")
		return
	}

	subaccount := ""
	var setting models.PaymentSetting
	if err := h.db.
		Where("business_profile_id = ?", booking.BusinessProfileID).
		First(&setting).Error; err == nil {
		subaccount = setting.SubaccountCode
	}

	reference := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	amountCents := int64(math.Round(booking.Service.Price * 100))

	auth, err := h.paystack.InitializeTransaction(c.Request.Context(), paystack.InitializeInput{
		Email:          customer.Email,
		AmountCents:    amountCents,
		Currency:       "ZAR",
		Reference:      reference,
		SubaccountCode: subaccount,
	})
	if err != nil {
		logger.Error("paystack initialize failed",
			zap.Uint("booking_id", booking.ID),
			zap.Error(err),
		)
		httperr.BadGateway(c, "payment_provider_error", "Payment provider is unavailable.")
		return
	}

	booking.PaymentReference = reference
	if err := h.db.Save(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_save_reference", "Could not record payment reference.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorization_url": auth.AuthorizationURL,
		"access_code":       auth.AccessCode,
		"reference":         auth.Reference,
	})
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)
	reference := c.Param("reference")

	var booking models.Booking
	if err := h.db.
		Where("payment_reference = ? AND customer_id = ?", reference, customerID).
		First(&booking).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "No booking with that reference.")
		return
	}

	tx, err := h.paystack.VerifyTransaction(c.Request.Context(), reference)
	if err != nil {
		logger.Error("paystack verify failed",
			zap.String("reference", reference),
			zap.Error(err),
		)
		httperr.BadGateway(c, "payment_provider_error", "Payment provider is unavailable.")
		return
	}

	switch tx.Status {
	case "success":
		booking.PaymentStatus = models.PaymentPaid
	case "failed":
		booking.PaymentStatus = models.PaymentFailed
	default:
		// abandoned, ongoing, pending: leave as is.
	}

	if err := h.db.Save(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_update_payment", "Could not record payment state.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_status": booking.PaymentStatus,
		"provider":       tx,
	})
}
