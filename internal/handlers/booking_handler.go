package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/httpresp"
	"github.com/glowbook/salon-api/internal/logger"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/sms"
	"github.com/glowbook/salon-api/internal/timezone"
	"github.com/glowbook/salon-api/internal/validators"
)

type BookingHandler struct {
	db  *gorm.DB
	sms *sms.Client
}

func NewBookingHandler(db *gorm.DB, smsClient *sms.Client) *BookingHandler {
	return &BookingHandler{db: db, sms: smsClient}
}

// --------- Create ---------

type CreateBookingRequest struct {
	SalonSlug     string `json:"salon_slug" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	HairdresserID uint   `json:"hairdresser_id" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"` // RFC3339
	Notes         string `json:"notes"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "start_time must be RFC3339.")
		return
	}

	var salon models.BusinessProfile
	if err := h.db.
		Where("slug = ? AND verification_status = ?", req.SalonSlug, "approved").
		First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	if startTime.Before(timezone.NowIn(salon.Timezone)) {
		httperr.BadRequest(c, "start_time_in_past", "Cannot book in the past.")
		return
	}

	var service models.SalonService
	if err := h.db.
		Where("id = ? AND business_profile_id = ? AND active = true", req.ServiceID, salon.ID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var stylist models.User
	if err := h.db.
		Where("id = ? AND business_profile_id = ? AND role = ?", req.HairdresserID, salon.ID, models.RoleStylist).
		First(&stylist).Error; err != nil {
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
		return
	}

	endTime := startTime.Add(time.Duration(service.DurationMin) * time.Minute)

	booking := models.Booking{
		BusinessProfileID: salon.ID,
		HairdresserID:     stylist.ID,
		CustomerID:        customerID,
		ServiceID:         service.ID,
		StartTime:         startTime,
		EndTime:           endTime,
		Status:            models.BookingScheduled,
		Notes:             req.Notes,
	}

	// Conflict check and insert share one transaction so two customers
	// cannot grab the same slot.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var conflicts int64
		if err := tx.Model(&models.Booking{}).
			Where(
				"hairdresser_id = ? AND status = ? AND start_time < ? AND end_time > ?",
				stylist.ID, models.BookingScheduled, endTime, startTime,
			).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			httperr.Write(c, http.StatusConflict, "slot_unavailable", "That slot is no longer available.")
			return
		}
		httperr.Internal(c, "failed_to_create_booking", "Could not create booking.")
		return
	}

	h.notifyCustomer(c.Request.Context(), customerID, &salon, &booking)

	c.JSON(http.StatusCreated, booking)
}

// notifyCustomer fires a confirmation SMS without blocking the response.
// Delivery failure is logged and otherwise ignored.
func (h *BookingHandler) notifyCustomer(ctx context.Context, customerID uint, salon *models.BusinessProfile, booking *models.Booking) {
	if h.sms == nil {
		return
	}

	var customer models.User
	if err := h.db.First(&customer, customerID).Error; err != nil {
		return
	}

	phone, ok := validators.NormalizeZA(customer.Phone)
	if !ok {
		return
	}

	local := booking.StartTime.In(timezone.Location(salon.Timezone))
	body := fmt.Sprintf(
		"Your booking at %s on %s is confirmed. See you there!",
		salon.BusinessName, local.Format("Mon 2 Jan 15:04"),
	)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 20*time.Second)
		defer cancel()
		if _, err := h.sms.Send(sendCtx, sms.Message{To: phone, Body: body}); err != nil {
			logger.Warn("booking confirmation sms failed",
				zap.Uint("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}()
}

// --------- Listing ---------

func (h *BookingHandler) ListMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var bookings []models.Booking
	if err := h.db.
		Preload("Service").
		Preload("BusinessProfile").
		Where("customer_id = ?", customerID).
		Order("start_time DESC").
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "year must be between 2000 and 2100.")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "month must be between 1 and 12.")
		return
	}

	var salon models.BusinessProfile
	if err := h.db.First(&salon, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	loc := timezone.Location(salon.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	q := h.db.
		Preload("Service").
		Preload("Customer").
		Preload("Hairdresser").
		Where("business_profile_id = ? AND start_time >= ? AND start_time < ?", businessID, start, end)

	if stylistID := c.Query("hairdresser_id"); stylistID != "" {
		q = q.Where("hairdresser_id = ?", stylistID)
	}

	var bookings []models.Booking
	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// --------- Lifecycle ---------

// Complete marks a booking done and captures the service price and the
// stylist's commission rate as they stand right now. Later edits to either
// never touch past invoices.
func (h *BookingHandler) Complete(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	var booking models.Booking
	if err := h.db.
		Where("id = ? AND business_profile_id = ?", bookingID, businessID).
		First(&booking).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if booking.Status != models.BookingScheduled {
		httperr.BadRequest(c, "invalid_state", "Only scheduled bookings can be completed.")
		return
	}

	var service models.SalonService
	if err := h.db.First(&service, booking.ServiceID).Error; err != nil {
		httperr.Internal(c, "service_not_found", "Booked service no longer exists.")
		return
	}

	var stylist models.User
	if err := h.db.First(&stylist, booking.HairdresserID).Error; err != nil {
		httperr.Internal(c, "stylist_not_found", "Booked stylist no longer exists.")
		return
	}

	now := timezone.Now()
	booking.Status = models.BookingCompleted
	booking.CompletedAt = &now
	booking.ServiceCost = service.Price
	booking.CommissionRate = stylist.CommissionRate

	if err := h.db.Save(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_complete_booking", "Could not complete booking.")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	q := h.db.Where("id = ?", bookingID)
	if role == models.RoleCustomer {
		q = q.Where("customer_id = ?", userID)
	} else {
		businessID, ok := middleware.BusinessID(c)
		if !ok {
			httperr.Forbidden(c, "no_business", "No business attached to this account.")
			return
		}
		q = q.Where("business_profile_id = ?", businessID)
	}

	var booking models.Booking
	if err := q.First(&booking).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if booking.Status != models.BookingScheduled {
		httperr.BadRequest(c, "invalid_state", "Only scheduled bookings can be cancelled.")
		return
	}

	now := timezone.Now()
	booking.Status = models.BookingCancelled
	booking.CancelledAt = &now

	if err := h.db.Save(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_cancel_booking", "Could not cancel booking.")
		return
	}

	c.JSON(http.StatusOK, booking)
}
