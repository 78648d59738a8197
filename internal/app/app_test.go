package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/budget"
	"github.com/finboard/finboard/pkg/dashboard"
	"github.com/finboard/finboard/pkg/emi"
	"github.com/finboard/finboard/pkg/fixed_deposit"
	"github.com/finboard/finboard/pkg/savings_goal"
	"github.com/finboard/finboard/pkg/user"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*mux.Router, *Dependencies) {
	t.Helper()
	repos := Repositories{
		Users:         user.NewStubUserRepository(),
		FixedDeposits: fixed_deposit.NewRepositoryStub(),
		EMIs:          emi.NewRepositoryStub(),
		Budgets:       budget.NewStubBudgetRepo(),
		SavingsGoals:  savings_goal.NewRepositoryStub(),
	}
	clock := &utils.MockClock{FixedNow: time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)}
	deps := BuildDependencies(repos, config.Defaults(), clock)
	return NewRouter(deps), deps
}

func doRequest(r *mux.Router, method, path, uid string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if uid != "" {
		req.Header.Set("X-User-Id", uid)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRouter(t *testing.T) {
	r, deps := setupRouter(t)

	t.Run("should register a user whose uid is not known yet", func(t *testing.T) {
		// when
		rr := doRequest(r, "POST", "/api/user", "auth0|alice", user.UserDTO{Uid: "auth0|alice", Username: "alice"})

		// then
		require.Equal(t, http.StatusCreated, rr.Code)
		current := doRequest(r, "GET", "/api/user/current", "auth0|alice", nil)
		assert.Equal(t, http.StatusOK, current.Code)
		assert.Contains(t, current.Body.String(), `"username":"alice"`)
	})

	t.Run("should reject an unknown user id on other routes", func(t *testing.T) {
		// when
		rr := doRequest(r, "GET", "/api/dashboard", "auth0|mallory", nil)

		// then
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("should return forbidden when no user id is sent", func(t *testing.T) {
		// when
		rr := doRequest(r, "GET", "/api/dashboard", "", nil)

		// then
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("should reflect a created fixed deposit on the dashboard", func(t *testing.T) {
		// given
		rr := doRequest(r, "POST", "/api/fixeddeposit", "auth0|alice", fixed_deposit.FixedDepositRequestDTO{
			BankName:   "HDFC Bank",
			Principal:  100000,
			AnnualRate: 7.5,
			TermMonths: 12,
			StartDate:  "2024-01-10",
		})
		require.Equal(t, http.StatusCreated, rr.Code)

		// when
		rr = doRequest(r, "GET", "/api/dashboard", "auth0|alice", nil)

		// then
		require.Equal(t, http.StatusOK, rr.Code)
		var dto dashboard.DashboardDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Equal(t, 1, dto.FixedDeposits.Count)
		assert.InDelta(t, 107763.26, dto.FixedDeposits.TotalMaturity, 0.01)
		assert.Equal(t, "2024-07", dto.Budgets.MonthYear)
	})

	t.Run("should expose instrument events on the metrics endpoint", func(t *testing.T) {
		// given
		require.NotNil(t, deps.Metrics)

		// when
		rr := doRequest(r, "GET", "/metrics", "", nil)

		// then
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `finboard_instrument_events_total{event="fixed_deposit.created"} 1`)
		assert.Contains(t, rr.Body.String(), `route="/api/dashboard",status="403"`)
		assert.Contains(t, rr.Body.String(), "finboard_fixed_deposit_principal_total 100000")
	})
}
