package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/dto"
	"github.com/SscSPs/smart_accounting/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler exposes the ledger tables.
type ledgerHandler struct {
	ledger portssvc.LedgerSvcFacade
	export portssvc.ExportSvc
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, export portssvc.ExportSvc) {
	h := &ledgerHandler{ledger: ledger, export: export}

	ledgers := rg.Group("/ledgers")
	{
		ledgers.GET("", h.listLedgers)
		ledgers.GET("/:ledger", h.getLedger)
		ledgers.POST("/:ledger/rows", h.appendRow)
		ledgers.POST("/save", h.saveLedgers)
		ledgers.POST("/load", h.loadLedgers)
	}
}

// listLedgers godoc
// @Summary List ledgers
// @Description Returns the row count and amount total of every ledger
// @Tags ledgers
// @Produce  json
// @Success 200 {object} dto.ListLedgersResponse
// @Security BearerAuth
// @Router /ledgers [get]
func (h *ledgerHandler) listLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	resp := dto.ListLedgersResponse{Ledgers: make([]domain.LedgerSummary, 0, len(domain.Ledgers()))}
	for _, l := range domain.Ledgers() {
		sum, err := h.ledger.Summary(l)
		if err != nil {
			respondError(c, logger, err, "Failed to summarise ledgers")
			return
		}
		resp.Ledgers = append(resp.Ledgers, sum)
	}
	c.JSON(http.StatusOK, resp)
}

// getLedger godoc
// @Summary Get a ledger
// @Description Returns the rows and summary of one ledger. With format=csv the ledger is downloaded as a UTF-8 CSV report.
// @Tags ledgers
// @Produce  json
// @Produce  text/csv
// @Param   ledger path string true "Ledger name" Enums(Sales, Purchases, Expenses, Customers, Suppliers, Journal)
// @Param   format query string false "Response format" Enums(json, csv)
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Unknown ledger"
// @Security BearerAuth
// @Router /ledgers/{ledger} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name, ok := domain.ParseLedgerName(c.Param("ledger"))
	if !ok {
		respondError(c, logger, fmt.Errorf("%w: unknown ledger %q", apperrors.ErrNotFound, c.Param("ledger")), "Unknown ledger")
		return
	}
	logger = logger.With(slog.String("ledger", string(name)))

	if c.Query("format") == "csv" {
		data, err := h.export.LedgerCSV(c.Request.Context(), name)
		if err != nil {
			respondError(c, logger, err, "Failed to export ledger")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, name))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
		return
	}

	rows, err := h.ledger.Rows(name)
	if err != nil {
		respondError(c, logger, err, "Failed to read ledger")
		return
	}
	sum, err := h.ledger.Summary(name)
	if err != nil {
		respondError(c, logger, err, "Failed to read ledger")
		return
	}
	c.JSON(http.StatusOK, dto.LedgerResponse{Ledger: name, Columns: name.Columns(), Rows: rows, Summary: sum})
}

// appendRow godoc
// @Summary Append a raw row
// @Description Appends one row to a ledger and saves. Columns outside the ledger schema are rejected.
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   ledger path string true "Ledger name"
// @Param   request body dto.AppendRowRequest true "Row"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid row"
// @Security BearerAuth
// @Router /ledgers/{ledger}/rows [post]
func (h *ledgerHandler) appendRow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name, ok := domain.ParseLedgerName(c.Param("ledger"))
	if !ok {
		respondError(c, logger, fmt.Errorf("%w: unknown ledger %q", apperrors.ErrNotFound, c.Param("ledger")), "Unknown ledger")
		return
	}
	var req dto.AppendRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AppendRow", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.ledger.Append(name, domain.Record(req.Record)); err != nil {
		respondError(c, logger, err, "Failed to append row")
		return
	}
	if err := h.ledger.Save(c.Request.Context()); err != nil {
		respondError(c, logger, err, "Row appended but ledgers could not be saved")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ledger": name, "saved": true})
}

// saveLedgers godoc
// @Summary Save ledgers
// @Description Writes every ledger to the configured persistence medium
// @Tags ledgers
// @Success 204 "Saved"
// @Failure 500 {object} map[string]string "Save failed"
// @Security BearerAuth
// @Router /ledgers/save [post]
func (h *ledgerHandler) saveLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.ledger.Save(c.Request.Context()); err != nil {
		respondError(c, logger, err, "Failed to save ledgers")
		return
	}
	logger.Info("Ledgers saved")
	c.Status(http.StatusNoContent)
}

// loadLedgers godoc
// @Summary Reload ledgers
// @Description Replaces in-memory ledgers with their persisted versions where readable
// @Tags ledgers
// @Produce  json
// @Success 200 {object} dto.ListLedgersResponse
// @Security BearerAuth
// @Router /ledgers/load [post]
func (h *ledgerHandler) loadLedgers(c *gin.Context) {
	h.ledger.Load(c.Request.Context())
	h.listLedgers(c)
}
