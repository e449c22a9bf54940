// Package chi serves the restaurant API over HTTP with a chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tablefinder/internal/domain"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/query"
	"github.com/kailas-cloud/tablefinder/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/tablefinder/internal/usecase/health"
	"github.com/kailas-cloud/tablefinder/internal/version"
)

const maxBodyBytes = 1 << 20

// RestaurantService is the use case contract consumed by the HTTP layer.
type RestaurantService interface {
	Search(ctx context.Context, raw query.Raw) (result.Page, error)
	List(ctx context.Context, page, limit int) (result.Page, error)
	Get(ctx context.Context, id int64) (domrest.Restaurant, error)
}

// HealthChecker reports store health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers.
type Server struct {
	restaurants   RestaurantService
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(restaurants RestaurantService, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		restaurants: restaurants,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, true),
		sentinelHandler(domain.ErrInvalidGeometry, http.StatusBadRequest, true),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, true),
		retryableHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable),
		retryableHandler(domain.ErrStoreTimeout, http.StatusGatewayTimeout),
		sentinelHandler(domain.ErrCanceled, http.StatusServiceUnavailable, false),
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r gochi.Router) {
		r.Post("/all-restaurants", s.ListRestaurants)
		r.Post("/restaurant", s.LookupRestaurant)
		r.Post("/restaurants-by-location", s.SearchRestaurants)

		r.Get("/restaurants", s.ListRestaurantsQuery)
		r.Get("/restaurants/search", s.SearchRestaurantsQuery)
		r.Get("/restaurants/{id}", s.GetRestaurant)
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "tablefinder api working ("+version.String()+")\n")
}

// SearchRestaurants handles POST /api/restaurants-by-location.
func (s *Server) SearchRestaurants(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.search(w, r, query.Raw{
		Lat:      req.Lat.v,
		Long:     req.Long.v,
		Cuisines: req.Cuisines,
		Page:     req.Page.value(),
		Limit:    req.Limit.value(),
	})
}

// SearchRestaurantsQuery handles GET /api/restaurants/search.
func (s *Server) SearchRestaurantsQuery(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.KindInvalidQuery, err.Error())
		return
	}
	s.search(w, r, params.raw())
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, raw query.Raw) {
	page, err := s.restaurants.Search(r.Context(), raw)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		TotalPages:       page.TotalPages,
		TotalRestaurants: page.TotalRestaurants,
		Restaurants:      candidatesToResponse(page.Restaurants),
	})
}

// ListRestaurants handles POST /api/all-restaurants.
func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}
	s.list(w, r, req.Page.value(), req.Limit.value())
}

// ListRestaurantsQuery handles GET /api/restaurants.
func (s *Server) ListRestaurantsQuery(w http.ResponseWriter, r *http.Request) {
	p := bindListParams(r)
	s.list(w, r, derefInt(p.Page), derefInt(p.Limit))
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, page, limit int) {
	res, err := s.restaurants.List(r.Context(), page, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Page:             res.Number,
		TotalPages:       res.TotalPages,
		TotalRestaurants: res.TotalRestaurants,
		Restaurants:      candidatesToResponse(res.Restaurants),
	})
}

// LookupRestaurant handles POST /api/restaurant {"Id": ...}.
func (s *Server) LookupRestaurant(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.ID.set || req.ID.v <= 0 {
		writeError(w, http.StatusBadRequest, domain.KindInvalidQuery, "Id must be a positive integer")
		return
	}
	s.get(w, r, int64(req.ID.v))
}

// GetRestaurant handles GET /api/restaurants/{id}.
func (s *Server) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.KindInvalidQuery, err.Error())
		return
	}
	s.get(w, r, id)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request, id int64) {
	rest, err := s.restaurants.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurantToResponse(&rest))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:      string(report.Status),
		Checks:      checks,
		Restaurants: report.Restaurants,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, domain.KindInvalidQuery, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind domain.Kind, message string) {
	writeJSON(w, status, errorResponse{
		Code:    string(kind),
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message. Client errors carry their
// own message; infrastructure errors expose only their kind.
func safeDomainMessage(err error, exposeDetail bool) string {
	var de *domain.Error
	if !errors.As(err, &de) {
		return "internal error"
	}
	if exposeDetail {
		return de.Message
	}
	return string(de.Kind)
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, exposeDetail bool) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, domain.KindOf(err), safeDomainMessage(err, exposeDetail))
		return true
	}
}

// retryableHandler is a sentinelHandler that also advertises Retry-After.
func retryableHandler(sentinel error, status int) errorHandler {
	inner := sentinelHandler(sentinel, status, false)
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		w.Header().Set("Retry-After", "1")
		return inner(w, err)
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, domain.KindPipeline, "internal error")
}
