package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/dto"
	"github.com/SscSPs/smart_accounting/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps document and audio uploads.
const maxUploadBytes = 20 << 20

// interpretHandler handles interpretation of raw input into reviewable blocks.
type interpretHandler struct {
	interpreter portssvc.InterpreterSvc
}

func registerInterpretRoutes(rg *gin.RouterGroup, interpreter portssvc.InterpreterSvc) {
	h := &interpretHandler{interpreter: interpreter}

	interpret := rg.Group("/interpret")
	{
		interpret.POST("/text", h.interpretText)
		interpret.POST("/document", h.interpretDocument)
		interpret.POST("/speech", h.interpretSpeech)
	}
}

// interpretText godoc
// @Summary Interpret free-form text
// @Description Classifies a transaction description and returns the typed transaction with its review block. Nothing is posted.
// @Tags interpret
// @Accept  json
// @Produce  json
// @Param   request body dto.InterpretTextRequest true "Transaction text"
// @Success 200 {object} dto.InterpretResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /interpret/text [post]
func (h *interpretHandler) interpretText(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InterpretTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for InterpretText", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.interpreter.InterpretText(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, logger, err, "Failed to interpret text")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// interpretDocument godoc
// @Summary Interpret a scanned invoice
// @Description Runs OCR over the uploaded image and interprets it as an invoice. Nothing is posted.
// @Tags interpret
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Invoice image"
// @Success 200 {object} dto.InterpretResponse
// @Failure 400 {object} map[string]string "Missing file"
// @Failure 502 {object} map[string]string "OCR failed"
// @Security BearerAuth
// @Router /interpret/document [post]
func (h *interpretHandler) interpretDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	data, name, err := readUpload(c)
	if err != nil {
		respondError(c, logger, err, "Failed to read upload")
		return
	}
	logger.Info("Received document for interpretation", slog.String("filename", name), slog.Int("bytes", len(data)))

	resp, err := h.interpreter.InterpretDocument(c.Request.Context(), data, name)
	if err != nil {
		respondError(c, logger, err, "Failed to interpret document")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// interpretSpeech godoc
// @Summary Interpret recorded speech
// @Description Transcribes the uploaded audio within the listen timeout and classifies the transcript. Nothing is posted.
// @Tags interpret
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Audio recording"
// @Success 200 {object} dto.InterpretResponse
// @Failure 422 {object} map[string]string "No speech detected"
// @Failure 502 {object} map[string]string "Speech recognition failed"
// @Security BearerAuth
// @Router /interpret/speech [post]
func (h *interpretHandler) interpretSpeech(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	data, name, err := readUpload(c)
	if err != nil {
		respondError(c, logger, err, "Failed to read upload")
		return
	}

	resp, err := h.interpreter.InterpretSpeech(c.Request.Context(), data, name)
	if err != nil {
		respondError(c, logger, err, "Failed to interpret speech")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// readUpload reads the multipart field "file".
func readUpload(c *gin.Context) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("%w: multipart field \"file\" is required", apperrors.ErrValidation)
	}
	if fh.Size > maxUploadBytes {
		return nil, "", fmt.Errorf("%w: file exceeds %d bytes", apperrors.ErrValidation, maxUploadBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	return data, fh.Filename, nil
}
