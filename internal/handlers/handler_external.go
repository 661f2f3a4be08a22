package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/dto"
	"github.com/SscSPs/smart_accounting/internal/middleware"
	"github.com/gin-gonic/gin"
)

type externalHandler struct {
	feed  portssvc.ExternalFeedSvc
	tasks portssvc.TaskRunnerSvc
}

func registerExternalRoutes(rg *gin.RouterGroup, feed portssvc.ExternalFeedSvc, tasks portssvc.TaskRunnerSvc) {
	h := &externalHandler{feed: feed, tasks: tasks}

	external := rg.Group("/external")
	{
		external.POST("/refresh", h.refreshRates)
		external.POST("/test", h.testConnections)
		external.GET("/rates", h.getRates)
	}
}

// refreshRates godoc
// @Summary Refresh exchange rates
// @Description Fetches the latest rates in the background
// @Tags external
// @Produce  json
// @Success 202 {object} dto.TaskAcceptedResponse
// @Security BearerAuth
// @Router /external/refresh [post]
func (h *externalHandler) refreshRates(c *gin.Context) {
	task := h.tasks.Submit(domain.TaskRefreshRates, func(ctx context.Context) (any, error) {
		return h.feed.RefreshRates(ctx)
	})
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Rates refresh submitted", slog.String("task_id", task.ID))
	c.JSON(http.StatusAccepted, dto.ToTaskAcceptedResponse(task))
}

// testConnections godoc
// @Summary Test external connections
// @Description Probes every configured external endpoint in the background
// @Tags external
// @Produce  json
// @Success 202 {object} dto.TaskAcceptedResponse
// @Security BearerAuth
// @Router /external/test [post]
func (h *externalHandler) testConnections(c *gin.Context) {
	task := h.tasks.Submit(domain.TaskTestConnections, func(ctx context.Context) (any, error) {
		return h.feed.TestConnections(ctx)
	})
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Connection test submitted", slog.String("task_id", task.ID))
	c.JSON(http.StatusAccepted, dto.ToTaskAcceptedResponse(task))
}

// getRates godoc
// @Summary Get cached exchange rates
// @Tags external
// @Produce  json
// @Success 200 {object} dto.RatesResponse
// @Security BearerAuth
// @Router /external/rates [get]
func (h *externalHandler) getRates(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RatesResponse{Rates: h.feed.Rates()})
}
