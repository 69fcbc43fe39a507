package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-api/internal/httperr"
	ucInvoice "github.com/glowbook/salon-api/internal/usecase/invoice"
)

type InvoiceHandler struct {
	generate *ucInvoice.GenerateInvoice
}

func NewInvoiceHandler(generate *ucInvoice.GenerateInvoice) *InvoiceHandler {
	return &InvoiceHandler{generate: generate}
}

// Generate recomputes the commission invoice for one hairdresser and month.
// Same inputs always produce the same document.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	hairdresserID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid hairdresser id.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "month must be between 1 and 12.")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "year must be between 2000 and 2100.")
		return
	}

	invoice, err := h.generate.Execute(c.Request.Context(), uint(hairdresserID), month, year)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}
