package handlers

import (
	"context"
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

// auditHandler runs audits as background tasks and serves their reports.
type auditHandler struct {
	ledger portssvc.LedgerReaderSvc
	audit  portssvc.AuditSvc
	export portssvc.ExportSvc
	tasks  portssvc.TaskRunnerSvc
}

func registerAuditRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerReaderSvc, audit portssvc.AuditSvc, export portssvc.ExportSvc, tasks portssvc.TaskRunnerSvc) {
	h := &auditHandler{ledger: ledger, audit: audit, export: export, tasks: tasks}

	audits := rg.Group("/audits")
	{
		audits.POST("", h.startAudit)
		audits.GET("/:taskID/report", h.getAuditReport)
	}
	rg.GET("/tasks/:taskID", h.getTask)
}

// startAudit godoc
// @Summary Start an audit
// @Description Snapshots the ledgers and audits them in the background
// @Tags audits
// @Produce  json
// @Success 202 {object} dto.TaskAcceptedResponse
// @Security BearerAuth
// @Router /audits [post]
func (h *auditHandler) startAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	snapshot := h.ledger.Snapshot()
	task := h.tasks.Submit(domain.TaskAudit, func(ctx context.Context) (any, error) {
		return h.audit.Run(ctx, snapshot), nil
	})
	logger.Info("Audit submitted", slog.String("task_id", task.ID))
	c.JSON(http.StatusAccepted, dto.ToTaskAcceptedResponse(task))
}

// getTask godoc
// @Summary Get a background task
// @Description Returns the state of a background task and its result once finished
// @Tags tasks
// @Produce  json
// @Param   taskID path string true "Task ID"
// @Success 200 {object} domain.Task
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID} [get]
func (h *auditHandler) getTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	task, err := h.tasks.Get(c.Param("taskID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// getAuditReport godoc
// @Summary Get an audit report as text
// @Description Renders the report of a finished audit task in the configured locale
// @Tags audits
// @Produce  plain
// @Param   taskID path string true "Audit task ID"
// @Success 200 {string} string "Report"
// @Failure 404 {object} map[string]string "No such audit"
// @Failure 409 {object} map[string]string "Audit still running"
// @Security BearerAuth
// @Router /audits/{taskID}/report [get]
func (h *auditHandler) getAuditReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taskID := c.Param("taskID")
	task, err := h.tasks.Get(taskID)
	if err != nil {
		respondError(c, logger, err, "Failed to get audit")
		return
	}
	if task.Kind != domain.TaskAudit {
		respondError(c, logger, fmt.Errorf("%w: task %s is not an audit", apperrors.ErrNotFound, taskID), "Audit not found")
		return
	}
	if !task.Finished() {
		c.JSON(http.StatusConflict, gin.H{"error": "Audit has not finished", "state": task.State})
		return
	}
	report, ok := task.Result.(domain.AuditReport)
	if task.State == domain.TaskFailed || !ok {
		logger.Error("Audit task failed", slog.String("task_id", taskID), slog.String("error", task.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Audit failed"})
		return
	}
	c.String(http.StatusOK, h.export.AuditReportText(report))
}
