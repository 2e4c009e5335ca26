package api

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	models "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
	domrepo "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/repository"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/service/metrics"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/usecase"
	pcache "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/cache"
	xhttp "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/http"
	xlogger "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/logger"

	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// PropsEchoHandler exposes the analytics endpoints over Echo.
type PropsEchoHandler struct {
	logger  *xlogger.Logger
	reports *usecase.PropReportUseCase
	scans   *usecase.AlertScanUseCase
	rules   domrepo.CriteriaSource
	cache   pcache.Service
	ttl     map[string]time.Duration
}

func NewPropsEchoHandler(
	logger *xlogger.Logger,
	reports *usecase.PropReportUseCase,
	scans *usecase.AlertScanUseCase,
	rules domrepo.CriteriaSource,
) *PropsEchoHandler {
	metrics.Register()
	return &PropsEchoHandler{
		logger:  logger,
		reports: reports,
		scans:   scans,
		rules:   rules,
		ttl:     map[string]time.Duration{},
	}
}

// SetCache injects a result cache for the read endpoints.
func (h *PropsEchoHandler) SetCache(c pcache.Service) { h.cache = c }

// SetTTL overrides the cache TTL for one endpoint.
func (h *PropsEchoHandler) SetTTL(endpoint string, ttl time.Duration) { h.ttl[endpoint] = ttl }

func (h *PropsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.Use(emw.RateLimiterWithConfig(emw.RateLimiterConfig{
		Store: emw.NewRateLimiterMemoryStoreWithConfig(emw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(2),
			Burst:     5,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			h.logger.Warn("rate limited", xlogger.String("remote", identifier))
			return xhttp.AppErrorResponse(c, tooManyRequests())
		},
	}))

	g.GET("/distribution", h.Distribution)
	g.GET("/streaks", h.Streaks)
	g.GET("/convergence", h.Convergence)
	g.GET("/report", h.Report)
	g.POST("/correlation", h.Correlation)
	g.POST("/criteria/scan", h.CriteriaScan)
	g.PUT("/criteria", h.ReplaceCriteria)
}

func (h *PropsEchoHandler) Distribution(c echo.Context) error {
	endpoint := "distribution"
	start := time.Now()
	defer func() { metrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.DistributionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := pcache.GenerateKeyWithParams(endpoint, req.PlayerID, req.Stat, req.Line, req.N)
	if b, ok := h.cached(c.Request().Context(), key); ok {
		return xhttp.SuccessResponse(c, json.RawMessage(b))
	}

	res, err := h.reports.Distribution(c.Request().Context(), *req)
	if err != nil {
		metrics.AnalyticsErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("distribution usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.store(c.Request().Context(), endpoint, key, res)
	return xhttp.SuccessResponse(c, res)
}

func (h *PropsEchoHandler) Streaks(c echo.Context) error {
	endpoint := "streaks"
	start := time.Now()
	defer func() { metrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.StreakRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := pcache.GenerateKeyWithParams(endpoint, req.PlayerID, req.Stat, req.Line, req.Window)
	if b, ok := h.cached(c.Request().Context(), key); ok {
		return xhttp.SuccessResponse(c, json.RawMessage(b))
	}

	res, err := h.reports.Streak(c.Request().Context(), *req)
	if err != nil {
		metrics.AnalyticsErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("streaks usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.store(c.Request().Context(), endpoint, key, res)
	return xhttp.SuccessResponse(c, res)
}

func (h *PropsEchoHandler) Convergence(c echo.Context) error {
	endpoint := "convergence"
	start := time.Now()
	defer func() { metrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ConvergenceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := pcache.GenerateKeyWithParams(endpoint, req.PlayerID, req.Stat, req.Line)
	if b, ok := h.cached(c.Request().Context(), key); ok {
		return xhttp.SuccessResponse(c, json.RawMessage(b))
	}

	res, err := h.reports.Convergence(c.Request().Context(), *req)
	if err != nil {
		metrics.AnalyticsErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("convergence usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.store(c.Request().Context(), endpoint, key, res)
	return xhttp.SuccessResponse(c, res)
}

func (h *PropsEchoHandler) Report(c echo.Context) error {
	endpoint := "report"
	start := time.Now()
	defer func() { metrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.StreakRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.reports.Report(c.Request().Context(), usecase.ReportParams{
		PlayerID: req.PlayerID,
		Stat:     req.Stat,
		Line:     req.Line,
		Window:   req.Window,
	})
	if err != nil {
		metrics.AnalyticsErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("report usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PropsEchoHandler) Correlation(c echo.Context) error {
	endpoint := "correlation"
	start := time.Now()
	defer func() { metrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.CorrelationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.reports.Correlation(c.Request().Context(), *req)
	if err != nil {
		metrics.AnalyticsErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("correlation usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PropsEchoHandler) CriteriaScan(c echo.Context) error {
	endpoint := "criteria_scan"
	start := time.Now()
	defer func() { metrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.CriteriaScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	matches, err := h.scans.Scan(c.Request().Context(), req.Sport, req.Lookback)
	if err != nil {
		metrics.AnalyticsErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("criteria scan error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, matches)
}

// ReplaceCriteria swaps in the rule set pushed by the subscription service.
func (h *PropsEchoHandler) ReplaceCriteria(c echo.Context) error {
	endpoint := "criteria_replace"
	start := time.Now()
	defer func() { metrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.CriteriaReplaceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rules := make([]models.Criteria, 0, len(req.Criteria))
	for _, r := range req.Criteria {
		rules = append(rules, r.ToCriteria())
	}
	if err := h.rules.Replace(c.Request().Context(), rules); err != nil {
		metrics.AnalyticsErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("criteria replace error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.logger.Info("criteria replaced", xlogger.Int("rules", len(rules)))
	return xhttp.SuccessResponse(c, map[string]int{"rules": len(rules)})
}

func (h *PropsEchoHandler) cached(ctx context.Context, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	var s string
	err := h.cache.Get(ctx, key, &s)
	if err != nil {
		if !errors.Is(err, pcache.ErrCacheMiss) {
			h.logger.Warn("cache get error", xlogger.String("key", key), xlogger.Error(err))
		}
		return nil, false
	}
	return []byte(s), true
}

func (h *PropsEchoHandler) store(ctx context.Context, endpoint, key string, v interface{}) {
	if h.cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ttl := h.ttl[endpoint]
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	if err := h.cache.Set(ctx, key, string(b), ttl); err != nil {
		h.logger.Warn("cache set error", xlogger.String("key", key), xlogger.Error(err))
	}
}

func tooManyRequests() error {
	return xhttp.NewAppError("ERR_RATE_LIMITED", "", "rate limited", 429)
}
