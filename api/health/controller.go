// Package healthapi serves liveness and the prometheus metrics.
package healthapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthController registers the public operational routes.
type HealthController struct {
	metrics http.Handler
}

// NewHealthController serves the metrics gathered by g.
func NewHealthController(g prometheus.Gatherer) *HealthController {
	return &HealthController{
		metrics: promhttp.HandlerFor(g, promhttp.HandlerOpts{}),
	}
}

// RegisterPublic registers public routes.
func (hc *HealthController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/health", hc.health)
	route.GET("/metrics", gin.WrapH(hc.metrics))
}

// RegisterProtected registers protected routes.
func (hc *HealthController) RegisterProtected(route *gin.RouterGroup) {}

func (hc *HealthController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
