package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glowbook/salon-api/internal/domain/verification"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/httpresp"
	"github.com/glowbook/salon-api/internal/models"
)

// PublicHandler serves the unauthenticated marketplace surface. Only
// approved businesses are visible here.
type PublicHandler struct {
	db *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

func (h *PublicHandler) ListSalons(c *gin.Context) {
	city := strings.ToLower(strings.TrimSpace(c.Query("city")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("verification_status = ?", string(domain.StatusApproved))

	if city != "" {
		q = q.Where("LOWER(city) = ?", city)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(business_name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var salons []models.BusinessProfile
	if err := q.Order("business_name ASC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Could not list salons.")
		return
	}

	httpresp.List(c, salons)
}

func (h *PublicHandler) GetSalon(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.BusinessProfile
	if err := h.db.
		Where("slug = ? AND verification_status = ?", slug, string(domain.StatusApproved)).
		First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	q := h.db.Where("business_profile_id = ? AND active = true", salon.ID)
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var services []models.SalonService
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	var stylists []models.User
	h.db.
		Select("id", "public_id", "name", "avatar_url").
		Where("business_profile_id = ? AND role = ?", salon.ID, models.RoleStylist).
		Order("name ASC").
		Find(&stylists)

	c.JSON(http.StatusOK, gin.H{
		"salon":    salon,
		"services": services,
		"stylists": stylists,
	})
}
