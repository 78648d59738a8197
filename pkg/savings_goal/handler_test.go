package savings_goal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finboard/finboard/pkg/money"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*mux.Router, func()) {
	teardown := setup(t)
	handler := NewHandler(service, money.NewFormatter("INR", "en-IN"))
	r := mux.NewRouter()
	r.HandleFunc("/api/savings", handler.ListGoals).Methods("GET")
	r.HandleFunc("/api/savings", handler.CreateGoal).Methods("POST")
	r.HandleFunc("/api/savings/{id}", handler.UpdateGoal).Methods("PUT")
	r.HandleFunc("/api/savings/{id}", handler.DeleteGoal).Methods("DELETE")
	return r, teardown
}

func doRequest(r http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}
	req := httptest.NewRequest(method, url, &payload)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req.WithContext(ctx))
	return w
}

var validRequest = SavingsGoalRequestDTO{
	Title:         "Goa trip",
	Category:      "Vacation",
	TargetAmount:  60000,
	CurrentAmount: 15000,
	TargetDate:    "2024-12-01",
}

func TestHandler_GoalLifecycle(t *testing.T) {
	r, teardown := setupHandlerTest(t)
	defer teardown()

	w := doRequest(r, http.MethodPost, "/api/savings", validRequest)
	require.Equal(t, http.StatusCreated, w.Code)
	var created SavingsGoalDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "₹45,000", created.Formatted.Remaining)
	assert.Equal(t, "in progress", string(created.Status))

	changed := validRequest
	changed.CurrentAmount = 120000
	w = doRequest(r, http.MethodPut, "/api/savings/"+created.Id, changed)
	require.Equal(t, http.StatusOK, w.Code)
	var updated SavingsGoalDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, 100.0, updated.Progress)
	assert.Equal(t, "completed", string(updated.Status))

	w = doRequest(r, http.MethodGet, "/api/savings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []SavingsGoalDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	assert.Len(t, list, 1)

	w = doRequest(r, http.MethodDelete, "/api/savings/"+created.Id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandler_CreateGoal_Invalid(t *testing.T) {
	r, teardown := setupHandlerTest(t)
	defer teardown()

	invalid := validRequest
	invalid.Category = "Gadgets"
	w := doRequest(r, http.MethodPost, "/api/savings", invalid)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	invalid = validRequest
	invalid.TargetDate = ""
	w = doRequest(r, http.MethodPost, "/api/savings", invalid)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
