package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/werkportal/accounting_backend/internal/core/services"
	"github.com/werkportal/accounting_backend/internal/middleware"
	"github.com/werkportal/accounting_backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// from the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svcs *services.Container) {
	registerCustomValidators()

	// Health check stays public.
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, svcs)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, svcs *services.Container) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerAccountRoutes(v1, svcs.Account)
	registerBookingRoutes(v1, svcs.Booking, svcs.Ledger)
	registerProvisionRoutes(v1, svcs.Provision)
	registerDepreciationRoutes(v1, svcs.Depreciation)
	registerClosingRoutes(v1, svcs.Closing)
	registerInvoiceRoutes(v1, svcs.InvoiceBridge)
}

// registerCustomValidators wires binding validators used by the DTOs.
// gtzerodecimal rejects zero and negative decimal amounts at the edge, so
// the services only ever see positive money.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("gtzerodecimal", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return d.IsPositive()
	})
}
