package main

import (
	"net/http"

	"line-billing/internal/httpapi"
	"line-billing/internal/observability/metrics"
	"line-billing/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal
// modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.POST("/v1/auth/login", h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(authMW)
	{
		// Day-to-day billing operations: operators and billing admins.
		linesGroup := v1.Group("/lines")
		linesGroup.Use(rbac.RequireAnyRole(rbac.RoleOperator, rbac.RoleBillingAdmin))
		{
			linesGroup.POST("", h.CreateLine)
			linesGroup.GET("/:line_id", h.GetLine)
			linesGroup.POST("/:line_id/cycles", h.AdvanceCycle)
			linesGroup.POST("/:line_id/calls", h.BillCall)
		}

		// Settlement is final; restricted to billing admins.
		v1.POST("/lines/:line_id/terminate",
			rbac.RequireAnyRole(rbac.RoleBillingAdmin),
			h.TerminateLine,
		)
	}
}
