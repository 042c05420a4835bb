package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/finance-calculators/internal/cache"
	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/deposits"
	"github.com/iwvelando/finance-calculators/pkg/eligibility"
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/products"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (http.Handler, *cache.MemoryCache) {
	t.Helper()
	memory := cache.NewMemoryCache(0)
	service := calculator.NewService(zap.NewNop(), 16)
	return NewHandler(zap.NewNop(), service, memory, 4096, "1.2.3"), memory
}

func do(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthAndVersion(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := do(t, handler, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = do(t, handler, http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.3"}`, rr.Body.String())

	rr = do(t, handler, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rr.Body.String())
}

func TestVersionDefaultsToDev(t *testing.T) {
	handler := NewHandler(nil, nil, nil, 0, "  ")
	rr := do(t, handler, http.MethodGet, "/api/version", "")
	assert.JSONEq(t, `{"version":"dev"}`, rr.Body.String())
}

func TestReadyReportsUnreachableCache(t *testing.T) {
	redisCache := cache.NewRedisCache(cache.RedisOptions{Address: "127.0.0.1:1"})
	defer redisCache.Close()

	handler := NewHandler(zap.NewNop(), nil, redisCache, 0, "")
	rr := do(t, handler, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"unavailable"`)
}

func TestLoanScheduleCaching(t *testing.T) {
	handler, memory := newTestHandler(t)
	body := `{"type":"home","principal":5000000,"annualRatePercent":8.5,"tenure":{"value":20,"unit":"years"}}`

	rr := do(t, handler, http.MethodPost, "/api/v1/loans/schedule", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "miss", rr.Header().Get("X-Cache"))
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var schedule loans.Schedule
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &schedule))
	assert.InDelta(t, 43391, schedule.Payment, 1)
	assert.Len(t, schedule.Periods, 240)
	assert.Equal(t, 1, memory.Len())

	again := do(t, handler, http.MethodPost, "/api/v1/loans/schedule", body)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, "hit", again.Header().Get("X-Cache"))
	assert.Equal(t, rr.Body.String(), again.Body.String())
}

func TestLoanScheduleDefaultsMatchExplicitInput(t *testing.T) {
	handler, memory := newTestHandler(t)

	rr := do(t, handler, http.MethodPost, "/api/v1/loans/schedule", `{"type":"personal","principal":100000}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "miss", rr.Header().Get("X-Cache"))

	explicit := `{"type":"personal","principal":100000,"annualRatePercent":12,"tenure":{"value":60,"unit":"months"}}`
	rr = do(t, handler, http.MethodPost, "/api/v1/loans/schedule", explicit)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hit", rr.Header().Get("X-Cache"))
	assert.Equal(t, 1, memory.Len())
}

func TestInvalidInputMapsToBadRequest(t *testing.T) {
	handler, memory := newTestHandler(t)

	tests := []struct {
		name  string
		path  string
		body  string
		field string
	}{
		{
			name:  "negative principal",
			path:  "/api/v1/loans/schedule",
			body:  `{"principal":-5}`,
			field: "principal",
		},
		{
			name:  "unknown loan type",
			path:  "/api/v1/loans/schedule",
			body:  `{"type":"boat","principal":1000}`,
			field: "type",
		},
		{
			name:  "bad compounding",
			path:  "/api/v1/deposits/growth",
			body:  `{"principal":1000,"compounding":"hourly"}`,
			field: "compounding",
		},
		{
			name:  "recurring without tenure",
			path:  "/api/v1/investments/growth",
			body:  `{"mode":"sip","monthlyContribution":100,"expectedAnnualReturnPercent":10}`,
			field: "tenure",
		},
		{
			name:  "zero income",
			path:  "/api/v1/eligibility",
			body:  `{"loanType":"personal","monthlyIncome":0,"creditScore":700}`,
			field: "monthlyIncome",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, handler, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.field, resp.Field)
			assert.NotEmpty(t, resp.Constraint)
			assert.Contains(t, resp.Error, "invalid input")
		})
	}
	assert.Equal(t, 0, memory.Len())
}

func TestMalformedBodies(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := do(t, handler, http.MethodPost, "/api/v1/loans/schedule", `{"principal":1000,"surprise":true}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "surprise")

	rr = do(t, handler, http.MethodPost, "/api/v1/loans/schedule", `{"principal":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, handler, http.MethodPost, "/api/v1/loans/schedule", `{"principal":1000}{"principal":2000}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	large := `{"principal":1000,"type":"` + strings.Repeat("a", 5000) + `"}`
	rr = do(t, handler, http.MethodPost, "/api/v1/loans/schedule", large)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestMethodAndRouteErrors(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := do(t, handler, http.MethodGet, "/api/v1/loans/schedule", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = do(t, handler, http.MethodGet, "/api/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rr.Body.String())
}

func TestDepositGrowth(t *testing.T) {
	handler, _ := newTestHandler(t)
	body := `{"account":"savings","principal":100000,"annualRatePercent":4.5,"compounding":"monthly","tenure":{"value":6,"unit":"months"}}`

	rr := do(t, handler, http.MethodPost, "/api/v1/deposits/growth", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var growth deposits.Growth
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &growth))
	assert.Len(t, growth.Months, 6)
	assert.Greater(t, growth.FinalBalance, 100000.0)
	assert.InDelta(t, growth.FinalBalance-100000-growth.TotalDeposited, growth.TotalInterest, 0.01)
	assert.InDelta(t, 0.04594, growth.APY, 1e-5, "apy is a fraction")
}

func TestInvestmentGrowth(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := do(t, handler, http.MethodPost, "/api/v1/investments/growth",
		`{"mode":"lumpsum","fund":"index","initialAmount":100000,"tenure":{"value":10}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result investments.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, investments.LumpSum, result.Mode)
	require.NotNil(t, result.CAGRPercent)
	assert.Greater(t, result.FinalValue, 100000.0)

	rr = do(t, handler, http.MethodPost, "/api/v1/investments/growth",
		`{"mode":"lumpsum","initialAmount":0,"expectedAnnualReturnPercent":12,"tenure":{"value":2}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"cagrPercent":null`)
}

func TestEligibilityAndDownPayment(t *testing.T) {
	handler, _ := newTestHandler(t)
	body := `{"loanType":"home","monthlyIncome":100000,"existingMonthlyDebt":15000,"creditScore":640,"annualRatePercent":8.5,"termYears":20,"propertyValue":5000000}`

	rr := do(t, handler, http.MethodPost, "/api/v1/eligibility", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result eligibility.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, products.LoanTypeHome, result.LoanType)
	assert.InDelta(t, 0.7, result.CreditMultiplier, 1e-9)
	assert.NotEmpty(t, result.Advisories)
	require.NotNil(t, result.DownPayment)

	rr = do(t, handler, http.MethodPost, "/api/v1/eligibility/down-payment", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "miss", rr.Header().Get("X-Cache"))

	var analysis eligibility.DownPaymentAnalysis
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &analysis))
	assert.InDelta(t, 500000, analysis.MinimumDownPayment, 0.01)

	rr = do(t, handler, http.MethodPost, "/api/v1/eligibility/down-payment",
		`{"loanType":"personal","monthlyIncome":60000,"creditScore":720}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"applicable":false}`, rr.Body.String())
}

func TestEligibilityRejectsOverflowingPropertyValue(t *testing.T) {
	handler, _ := newTestHandler(t)
	body := `{"loanType":"home","monthlyIncome":100000,"annualRatePercent":1000,"termYears":50,"propertyValue":1e308}`

	for _, path := range []string{"/api/v1/eligibility", "/api/v1/eligibility/down-payment"} {
		t.Run(path, func(t *testing.T) {
			rr := do(t, handler, http.MethodPost, path, body)
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "propertyValue", resp.Field)
		})
	}
}

func TestEligibilityWithoutPropertyValue(t *testing.T) {
	handler, _ := newTestHandler(t)
	body := `{"loanType":"home","monthlyIncome":100000,"creditScore":750,"annualRatePercent":8.5,"termYears":20}`

	rr := do(t, handler, http.MethodPost, "/api/v1/eligibility", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "downPaymentAnalysis")

	rr = do(t, handler, http.MethodPost, "/api/v1/eligibility/down-payment", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCatalogs(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := do(t, handler, http.MethodGet, "/api/v1/products/loans", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var loanProfiles []products.LoanProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loanProfiles))
	assert.Len(t, loanProfiles, len(products.LoanProfiles()))

	rr = do(t, handler, http.MethodGet, "/api/v1/products/accounts", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var accounts []products.AccountProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &accounts))
	assert.Len(t, accounts, len(products.AccountProfiles()))

	rr = do(t, handler, http.MethodGet, "/api/v1/products/funds", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var funds []products.FundCategory
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &funds))
	assert.Len(t, funds, len(products.FundCategories()))
}

func TestRequestIDMiddleware(t *testing.T) {
	handler, _ := newTestHandler(t)

	rr := do(t, handler, http.MethodGet, "/health", "")
	assert.Len(t, rr.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}
