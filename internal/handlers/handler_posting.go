package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/dto"
	"github.com/SscSPs/smart_accounting/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler appends reviewed transactions to the ledgers.
type postingHandler struct {
	poster portssvc.PosterSvc
}

func registerPostingRoutes(rg *gin.RouterGroup, poster portssvc.PosterSvc) {
	h := &postingHandler{poster: poster}

	postings := rg.Group("/postings")
	{
		postings.POST("", h.postBlock)
		postings.POST("/manual", h.postManual)
	}
}

// postBlock godoc
// @Summary Post a reviewed transaction block
// @Description Parses a reviewed block, appends the ledger row and its journal lines, then saves the ledgers.
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   request body dto.PostBlockRequest true "Reviewed block"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Block missing or invalid"
// @Failure 500 {object} map[string]interface{} "Appended but not saved"
// @Security BearerAuth
// @Router /postings [post]
func (h *postingHandler) postBlock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostBlock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.poster.PostBlock(c.Request.Context(), req.Block)
	h.respond(c, logger, resp, err)
}

// postManual godoc
// @Summary Post a manual entry
// @Description Appends a sale, purchase or expense entered by hand with status Completed, then saves the ledgers.
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   request body dto.ManualEntryRequest true "Manual entry"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]interface{} "Appended but not saved"
// @Security BearerAuth
// @Router /postings/manual [post]
func (h *postingHandler) postManual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostManual", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.poster.PostManual(c.Request.Context(), req)
	h.respond(c, logger, resp, err)
}

func (h *postingHandler) respond(c *gin.Context, logger *slog.Logger, resp *dto.PostingResponse, err error) {
	if err != nil {
		if errors.Is(err, apperrors.ErrPersistence) && resp != nil {
			logger.Error("Posting appended but ledgers were not saved", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ledgers could not be saved", "posting": resp})
			return
		}
		respondError(c, logger, err, "Failed to post transaction")
		return
	}
	logger.Info("Transaction posted", slog.String("ledger", string(resp.Ledger)), slog.String("entry", resp.EntryID))
	c.JSON(http.StatusCreated, resp)
}
