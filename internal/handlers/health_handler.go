package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const rootMessage = "Sistema de Agendamento"

// HealthCheck is a named dependency probe for /health.
type HealthCheck struct {
	Name  string
	Check func(context.Context) error
}

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, rootMessage)
}

func (h *HealthHandler) Health(c *gin.Context) {
	failures := map[string]string{}

	for _, check := range h.checks {
		if check.Check == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		err := check.Check(ctx)
		cancel()
		if err != nil {
			failures[check.Name] = err.Error()
		}
	}

	if len(failures) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"failures": failures,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
