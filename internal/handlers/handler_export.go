package handlers

import (
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportHandler struct {
	export portssvc.ExportSvc
}

func registerExportRoutes(rg *gin.RouterGroup, export portssvc.ExportSvc) {
	h := &exportHandler{export: export}
	rg.GET("/export/workbook", h.exportWorkbook)
}

// exportWorkbook godoc
// @Summary Export all ledgers
// @Description Downloads every ledger as one sheet of an XLSX workbook
// @Tags export
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} map[string]string "Export failed"
// @Security BearerAuth
// @Router /export/workbook [get]
func (h *exportHandler) exportWorkbook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	data, err := h.export.WorkbookXLSX(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to export workbook")
		return
	}
	filename := fmt.Sprintf("accounting_export_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
