package httpgin

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/eventdocs/internal/document"
	"github.com/kirinyoku/eventdocs/internal/domain"
	"github.com/kirinyoku/eventdocs/internal/pricing"
	"github.com/kirinyoku/eventdocs/internal/repository"
	"github.com/kirinyoku/eventdocs/internal/service"
	"github.com/kirinyoku/eventdocs/internal/service/documents"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Options struct {
	// Limiter throttles document rendering per client IP; nil disables it.
	Limiter Limiter
	// JWTSecret enables bearer authentication on document and admin routes.
	JWTSecret string
}

func NewRouter(
	svcs *service.Services,
	opts Options,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Pricing calculator, public
	calc := r.Group("/pricing")
	{
		calc.GET("/plans", handleListPlans(svcs))
		calc.GET("/calculate", handleCalculateQuery(svcs))
		calc.POST("/calculate", handleCalculateJSON(svcs))
		calc.GET("/live", handleLiveCalculator(svcs, logger))
	}

	// Documents
	docs := r.Group("/events/:id", BearerAuth(opts.JWTSecret), RateLimitMiddleware(opts.Limiter, logger))
	{
		docs.GET("/participants/:pid/certificate", handleDocument(svcs, logger, "pid", svcs.Documents.Certificate))
		docs.GET("/participants/:pid/badge", handleDocument(svcs, logger, "pid", svcs.Documents.Badge))
		docs.GET("/collaborators/:cid/badge", handleDocument(svcs, logger, "cid", svcs.Documents.CollaboratorBadge))
	}

	// Admin-API
	admin := r.Group("/admin", BearerAuth(opts.JWTSecret))
	{
		admin.POST("/events/:id/changed", handleEventChanged(svcs, logger))
	}

	return r
}

type composeFunc func(ctx context.Context, eventID, personID uuid.UUID) (*document.Page, error)

// @Summary  Render a document (certificate or badge)
// @Param    id      path   string  true   "Event ID (uuid)"
// @Param    pid     path   string  true   "Participant or collaborator ID (uuid)"
// @Param    format  query  string  false  "json returns the page description instead of the PDF"
// @Produce  application/pdf
// @Success  200  {file}    binary
// @Failure  404  {object}  ErrorResponse
// @Failure  429  {object}  ErrorResponse "rate limited"
// @Router   /events/{id}/participants/{pid}/certificate [get]
// @Router   /events/{id}/participants/{pid}/badge [get]
// @Router   /events/{id}/collaborators/{pid}/badge [get]
func handleDocument(svcs *service.Services, logger *slog.Logger, param string, compose composeFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		personID, ok := parseUUIDParam(c, param)
		if !ok {
			return
		}

		page, err := compose(c.Request.Context(), eventID, personID)
		if err != nil {
			respondErr(c, logger, err)
			return
		}

		if c.Query("format") == "json" {
			writeJSONWithCache(c, http.StatusOK, page, "private, max-age=60", true)
			return
		}

		b, err := svcs.Documents.Render(page)
		if err != nil {
			respondErr(c, logger, err)
			return
		}

		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": page.FileName(),
		}))
		writeWithCache(c, http.StatusOK, "application/pdf", b, "private, max-age=60", false)
	}
}

// @Summary  List pricing plans
// @Success  200  {object}  PlansResponse
// @Router   /pricing/plans [get]
func handleListPlans(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := PlansResponse{
			Currency: svcs.Pricing.Currency(),
			Plans:    svcs.Pricing.Plans(),
		}
		writeJSONWithCache(c, http.StatusOK, resp, "public, max-age=300", true)
	}
}

// @Summary  Calculate revenue from query parameters
// @Param    ticket_price        query  string  false  "price per ticket"
// @Param    num_tickets         query  string  false  "tickets sold"
// @Param    no_third_party_ads  query  bool    false  "opt out of third-party ads"
// @Success  200  {object}  CalculateResponse
// @Router   /pricing/calculate [get]
func handleCalculateQuery(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		noAds, _ := strconv.ParseBool(c.Query("no_third_party_ads"))
		req := CalculateRequest{
			TicketPrice:     FlexNumber(c.Query("ticket_price")),
			NumTickets:      FlexNumber(c.Query("num_tickets")),
			NoThirdPartyAds: noAds,
		}
		c.JSON(http.StatusOK, calculate(svcs, req.Input()))
	}
}

// @Summary  Calculate revenue
// @Param    req  body  CalculateRequest  true  "payload"
// @Success  200  {object}  CalculateResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /pricing/calculate [post]
func handleCalculateJSON(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CalculateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, calculate(svcs, req.Input()))
	}
}

// @Summary  Notify that an event or its organizer changed
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  202
// @Router   /admin/events/{id}/changed [post]
func handleEventChanged(svcs *service.Services, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		if err := svcs.Admin.EventChanged(c.Request.Context(), eventID); err != nil {
			respondErr(c, logger, err)
			return
		}
		c.Status(http.StatusAccepted)
	}
}

// --- Helpers ---

func calculate(svcs *service.Services, in domain.CalculationInput) CalculateResponse {
	res := svcs.Pricing.Calculate(in)
	return CalculateResponse{
		Input:           pricing.Sanitize(in),
		Plan:            res.Plan,
		GrossRevenue:    res.GrossRevenue,
		TotalCommission: res.TotalCommission,
		NetRevenue:      res.NetRevenue,
		Currency:        svcs.Pricing.Currency(),
		Formatted:       svcs.Money.Breakdown(res.GrossRevenue, res.TotalCommission, res.NetRevenue),
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	v, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, logger *slog.Logger, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	case errors.Is(err, documents.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
	case errors.Is(err, documents.ErrParticipantNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "participant not found"})
	case errors.Is(err, documents.ErrCollaboratorNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "collaborator not found"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "timeout"})
	case errors.Is(err, repository.ErrRetryable):
		// serialization failure or deadlock on the snapshot read
		logger.Warn("retryable store error", "path", c.FullPath(), "error", err)
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "temporarily unavailable"})
	default:
		_ = c.Error(err)
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
