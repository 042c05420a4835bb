package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/finance-calculators/internal/cache"
	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/eligibility"
	"github.com/iwvelando/finance-calculators/pkg/products"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// Cache kinds, also used as cache key prefixes.
const (
	kindLoan        = "loan"
	kindDeposit     = "deposit"
	kindInvestment  = "investment"
	kindEligibility = "eligibility"
	kindDownPayment = "down-payment"
)

const readyTimeout = 5 * time.Second

type handler struct {
	logger      *zap.Logger
	service     *calculator.Service
	cache       cache.Cache
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculator API. A nil
// service or cache is replaced with a default one.
func NewHandler(logger *zap.Logger, service *calculator.Service, responseCache cache.Cache, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if service == nil {
		service = calculator.NewService(logger, calculator.DefaultMemoEntries)
	}
	if responseCache == nil {
		responseCache = cache.Noop{}
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		service:     service,
		cache:       responseCache,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware, accessLogMiddleware(logger))
	router.NotFoundHandler = http.HandlerFunc(h.handleNotFound)

	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/ready", h.handleReady).Methods(http.MethodGet)
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/loans/schedule",
		calculate[config.LoanSpec](h, "server.handleLoanSchedule", kindLoan, service.LoanSchedule)).
		Methods(http.MethodPost)
	api.HandleFunc("/deposits/growth",
		calculate[config.DepositSpec](h, "server.handleDepositGrowth", kindDeposit, service.DepositGrowth)).
		Methods(http.MethodPost)
	api.HandleFunc("/investments/growth",
		calculate[config.InvestmentSpec](h, "server.handleInvestmentGrowth", kindInvestment, service.InvestmentGrowth)).
		Methods(http.MethodPost)
	api.HandleFunc("/eligibility",
		calculate[config.EligibilitySpec](h, "server.handleEligibility", kindEligibility, service.Eligibility)).
		Methods(http.MethodPost)
	api.HandleFunc("/eligibility/down-payment",
		calculate[config.EligibilitySpec](h, "server.handleDownPayment", kindDownPayment, h.downPayment)).
		Methods(http.MethodPost)

	api.HandleFunc("/products/loans", h.handleCatalog(func() interface{} { return products.LoanProfiles() })).
		Methods(http.MethodGet)
	api.HandleFunc("/products/accounts", h.handleCatalog(func() interface{} { return products.AccountProfiles() })).
		Methods(http.MethodGet)
	api.HandleFunc("/products/funds", h.handleCatalog(func() interface{} { return products.FundCategories() })).
		Methods(http.MethodGet)

	return router
}

type inputSpec[In any] interface {
	ToInput() (In, error)
}

// calculate builds a handler that decodes a spec of type S, resolves it into
// a calculator input and serves the computed result, consulting the response
// cache first.
func calculate[S inputSpec[In], In any, Out any](h *handler, op, kind string, compute func(In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec S
		if !h.decodeBody(w, r, &spec, op) {
			return
		}

		input, err := spec.ToInput()
		if err != nil {
			h.respondCalculationError(w, err, op)
			return
		}

		key, err := cache.Key(kind, input)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		if body, ok := h.cachedBody(r.Context(), key, op); ok {
			h.writeBody(w, http.StatusOK, body, "hit")
			return
		}

		result, err := compute(input)
		if err != nil {
			h.respondCalculationError(w, err, op)
			return
		}

		body, err := json.Marshal(result)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode result: %v", err), op)
			return
		}
		body = append(body, '\n')

		if err := h.cache.Set(r.Context(), key, body); err != nil {
			h.logger.Warn("failed to store cached response",
				zap.String("op", op),
				zap.Error(err),
			)
		}
		h.writeBody(w, http.StatusOK, body, "miss")
	}
}

type notApplicable struct {
	Applicable bool `json:"applicable"`
}

func (h *handler) downPayment(input eligibility.Input) (interface{}, error) {
	analysis, err := h.service.DownPayment(input)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return notApplicable{Applicable: false}, nil
	}
	return analysis, nil
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	if dec.More() {
		h.respondErrorWithOp(w, http.StatusBadRequest, "request body must contain a single JSON object", op)
		return false
	}
	return true
}

func (h *handler) cachedBody(ctx context.Context, key, op string) ([]byte, bool) {
	body, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("failed to read cached response",
			zap.String("op", op),
			zap.Error(err),
		)
		return nil, false
	}
	return body, ok
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.cache.Ping(ctx); err != nil {
		h.logger.Warn("cache is not reachable",
			zap.String("op", "server.handleReady"),
			zap.Error(err),
		)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCatalog(catalog func() interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, catalog())
	}
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

type errorResponse struct {
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

func (h *handler) respondCalculationError(w http.ResponseWriter, err error, op string) {
	if invalid, ok := validation.AsInvalidInput(err); ok {
		h.logger.Debug("rejected calculation input",
			zap.String("op", op),
			zap.String("field", invalid.Field),
			zap.String("constraint", invalid.Constraint),
		)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:      err.Error(),
			Field:      invalid.Field,
			Constraint: invalid.Constraint,
		})
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeBody(w http.ResponseWriter, status int, body []byte, cacheStatus string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
