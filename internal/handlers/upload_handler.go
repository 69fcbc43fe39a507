package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/httpresp"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/storage"
)

const maxDocumentBytes = 10 << 20

// UploadHandler covers salon imagery (avatar, banner) and the verification
// documents the review team works from. Images are normalized to webp;
// documents are stored as received.
type UploadHandler struct {
	db    *gorm.DB
	store *storage.Store
}

func NewUploadHandler(db *gorm.DB, store *storage.Store) *UploadHandler {
	return &UploadHandler{db: db, store: store}
}

// --------- Images ---------

func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	h.uploadImage(c, "avatars", storage.MaxAvatarBytes, storage.AvatarMaxWidth, func(p *models.BusinessProfile, url string) {
		p.AvatarURL = url
	})
}

func (h *UploadHandler) UploadBanner(c *gin.Context) {
	h.uploadImage(c, "banners", storage.MaxBannerBytes, storage.BannerMaxWidth, func(p *models.BusinessProfile, url string) {
		p.BannerURL = url
	})
}

func (h *UploadHandler) uploadImage(c *gin.Context, prefix string, maxBytes int64, maxWidth int, assign func(*models.BusinessProfile, string)) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Multipart field 'file' is required.")
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		httperr.BadRequest(c, "file_too_large", fmt.Sprintf("File exceeds %d bytes.", maxBytes))
		return
	}

	raw, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read upload.")
		return
	}
	if int64(len(raw)) > maxBytes {
		httperr.BadRequest(c, "file_too_large", fmt.Sprintf("File exceeds %d bytes.", maxBytes))
		return
	}

	encoded, err := storage.EncodeWebP(raw, maxWidth)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "File is not a valid JPEG or PNG image.")
			return
		}
		httperr.Internal(c, "failed_to_encode_image", "Could not process image.")
		return
	}

	key := fmt.Sprintf("%s/%d/%s.webp", prefix, businessID, uuid.NewString())
	if err := h.store.Upload(c.Request.Context(), key, "image/webp", encoded); err != nil {
		httperr.Internal(c, "failed_to_store_image", "Could not store image.")
		return
	}

	var profile models.BusinessProfile
	if err := h.db.First(&profile, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	url := h.store.PublicURL(key)
	assign(&profile, url)

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Could not save image URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// --------- Documents ---------

var allowedDocumentKinds = map[string]bool{
	models.DocumentKindIdentity:       true,
	models.DocumentKindRegistration:   true,
	models.DocumentKindProofOfAddress: true,
}

func (h *UploadHandler) UploadDocument(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	kind := c.PostForm("kind")
	if !allowedDocumentKinds[kind] {
		httperr.BadRequest(c, "invalid_document_kind", "Unknown document kind.")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Multipart field 'file' is required.")
		return
	}
	defer file.Close()

	if header.Size > maxDocumentBytes {
		httperr.BadRequest(c, "file_too_large", fmt.Sprintf("File exceeds %d bytes.", maxDocumentBytes))
		return
	}

	raw, err := io.ReadAll(io.LimitReader(file, maxDocumentBytes+1))
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read upload.")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf("documents/%d/%s/%s%s", businessID, kind, uuid.NewString(), ext)

	if err := h.store.Upload(c.Request.Context(), key, contentType, raw); err != nil {
		httperr.Internal(c, "failed_to_store_document", "Could not store document.")
		return
	}

	doc := models.BusinessDocument{
		BusinessProfileID: businessID,
		Kind:              kind,
		FileName:          header.Filename,
		StorageKey:        key,
		ContentType:       contentType,
		SizeBytes:         int64(len(raw)),
		UploadedBy:        userID,
	}

	if err := h.db.Create(&doc).Error; err != nil {
		httperr.Internal(c, "failed_to_save_document", "Could not record document.")
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (h *UploadHandler) ListDocuments(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		httperr.Forbidden(c, "no_business", "No business attached to this account.")
		return
	}

	h.listDocumentsFor(c, businessID)
}

// ListDocumentsAdmin serves the review console; the business id comes from
// the path, not the token.
func (h *UploadHandler) ListDocumentsAdmin(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid business id.")
		return
	}

	h.listDocumentsFor(c, uint(businessID))
}

func (h *UploadHandler) listDocumentsFor(c *gin.Context, businessID uint) {
	var docs []models.BusinessDocument
	if err := h.db.
		Where("business_profile_id = ?", businessID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_documents", "Could not list documents.")
		return
	}

	httpresp.List(c, docs)
}

// DownloadDocument streams a stored document to a reviewer. Documents live
// in a private prefix so this is the only way out.
func (h *UploadHandler) DownloadDocument(c *gin.Context) {
	docID, err := strconv.Atoi(c.Param("docId"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid document id.")
		return
	}

	var doc models.BusinessDocument
	if err := h.db.First(&doc, docID).Error; err != nil {
		httperr.NotFound(c, "document_not_found", "Document not found.")
		return
	}

	data, contentType, err := h.store.Download(c.Request.Context(), doc.StorageKey)
	if err != nil {
		httperr.Internal(c, "failed_to_fetch_document", "Could not fetch document.")
		return
	}

	if contentType == "" {
		contentType = doc.ContentType
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, contentType, data)
}
