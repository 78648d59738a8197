package emi

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
	r.HandleFunc("/api/emi", handler.ListReminders).Methods("GET")
	r.HandleFunc("/api/emi", handler.CreateReminder).Methods("POST")
	r.HandleFunc("/api/emi/{id}", handler.UpdateReminder).Methods("PUT")
	r.HandleFunc("/api/emi/{id}/paid", handler.MarkPaid).Methods("POST")
	r.HandleFunc("/api/emi/{id}", handler.DeleteReminder).Methods("DELETE")
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

func decode(t *testing.T, w *httptest.ResponseRecorder) EMIDTO {
	var dto EMIDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	return dto
}

var validRequest = EMIRequestDTO{
	LoanName:   "Home Loan",
	BankName:   "HDFC",
	LoanAmount: 2500000,
	EMIAmount:  21000,
	DueDay:     15,
}

func TestHandler_ReminderLifecycle(t *testing.T) {
	r, teardown := setupHandlerTest(t)
	defer teardown()

	// create
	w := doRequest(r, http.MethodPost, "/api/emi", validRequest)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, "2024-07-15", created.NextDueDate)
	assert.Equal(t, "Due in 5 days", created.StatusLabel)
	assert.Equal(t, "₹21,000", created.Formatted.EMIAmount)
	assert.Equal(t, "₹25,00,000", created.Formatted.LoanAmount)

	// update
	changed := validRequest
	changed.DueDay = 12
	w = doRequest(r, http.MethodPut, "/api/emi/"+created.Id, changed)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)
	assert.Equal(t, "2024-07-12", updated.NextDueDate)
	assert.Equal(t, "soon", string(updated.Band))

	// mark paid
	w = doRequest(r, http.MethodPost, "/api/emi/"+created.Id+"/paid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	paid := decode(t, w)
	assert.Equal(t, Paid, paid.Status)
	assert.Equal(t, "Paid", paid.StatusLabel)

	// list
	w = doRequest(r, http.MethodGet, "/api/emi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []EMIDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, created.Id, list[0].Id)

	// delete
	w = doRequest(r, http.MethodDelete, "/api/emi/"+created.Id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(r, http.MethodPost, "/api/emi/"+created.Id+"/paid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_CreateReminder_InvalidDueDay(t *testing.T) {
	r, teardown := setupHandlerTest(t)
	defer teardown()

	invalid := validRequest
	invalid.DueDay = 31

	w := doRequest(r, http.MethodPost, "/api/emi", invalid)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid due day")
}
