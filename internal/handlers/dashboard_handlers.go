package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/services"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           *logging.StructuredLogger
	metrics          *metrics.Collector
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboardService *services.DashboardService,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
		metrics:          metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// GetOptions handles GET /api/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/api/options").Observe(time.Since(startTime).Seconds())
	}()

	h.metrics.RecordAPIRequest("/api/options", "GET", "200")
	h.sendJSON(w, h.dashboardService.Options(), http.StatusOK)
}

// GetDataset handles GET /api/dataset, the complete-dataset view.
func (h *DashboardHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/api/dataset").Observe(time.Since(startTime).Seconds())
	}()

	h.metrics.RecordAPIRequest("/api/dataset", "GET", "200")
	h.sendJSON(w, h.dashboardService.Dataset(), http.StatusOK)
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/api/dashboard").Observe(time.Since(startTime).Seconds())
	}()

	sel, err := parseSelection(r)
	if err != nil {
		h.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.dashboardService.BuildView(ctx, *sel)
	if err != nil {
		var valErr *models.ValidationError
		if errors.As(err, &valErr) {
			h.metrics.RecordAPIError("validation_error", "/api/dashboard")
			h.sendError(w, r, valErr.Message, http.StatusBadRequest)
			return
		}

		h.logger.Error(ctx, "[API_DASHBOARD_ERROR] Failed to build dashboard view", logging.Fields{
			"year":   sel.Year,
			"region": sel.Region,
			"chart":  sel.Chart,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/dashboard")
		h.sendError(w, r, "failed to build dashboard view", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/dashboard", "GET", "200")
	h.sendJSON(w, view, http.StatusOK)
}

// parseSelection builds a Selection from query parameters. Metric and chart
// defaults mirror the dashboard's initial controls.
func parseSelection(r *http.Request) (*models.Selection, error) {
	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		return nil, &models.ValidationError{
			Field:   "year",
			Message: "year query parameter is required",
		}
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, &models.ValidationError{
			Field:   "year",
			Value:   yearStr,
			Message: "year must be an integer",
		}
	}

	region := r.URL.Query().Get("region")
	if region == "" {
		region = models.RegionAll
	}

	metricsParam := r.URL.Query().Get("metrics")
	if metricsParam == "" {
		metricsParam = string(models.MetricTemperature)
	}
	var selMetrics []models.Metric
	seen := make(map[models.Metric]bool)
	for _, part := range strings.Split(metricsParam, ",") {
		m, err := models.ParseMetric(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if !seen[m] {
			seen[m] = true
			selMetrics = append(selMetrics, m)
		}
	}

	chartParam := r.URL.Query().Get("chart")
	if chartParam == "" {
		chartParam = string(models.ChartLine)
	}
	chart, err := models.ParseChartType(chartParam)
	if err != nil {
		return nil, err
	}

	return &models.Selection{
		Year:    year,
		Region:  region,
		Metrics: selMetrics,
		Chart:   chart,
	}, nil
}

// HealthCheck handles GET /health
func (h *DashboardHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]interface{}{
		"status":          "healthy",
		"dataset_records": h.dashboardService.Dataset().Len(),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// sendJSON sends a JSON response
func (h *DashboardHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *DashboardHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all dashboard API routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/dashboard", h.GetDashboard).Methods("GET")
	router.HandleFunc("/api/dataset", h.GetDataset).Methods("GET")
	router.HandleFunc("/api/options", h.GetOptions).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/api/docs", OpenAPISpec).Methods("GET")
	router.HandleFunc("/docs", SwaggerUI).Methods("GET")
}
