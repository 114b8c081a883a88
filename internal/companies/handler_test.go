package companies

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestRouter(repo Repository, index InvoiceIndex) http.Handler {
	logger := slog.New(slog.NewTextHandler(discardWriter{}, nil))
	handler := NewHandler(logger, NewService(repo, index))
	r := chi.NewRouter()
	r.Route("/companies", handler.MountRoutes)
	return r
}

func TestHandlerListCompanies(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.companies["apple"] = Company{Code: "apple", Name: "Apple Computer", Description: "Maker of OSX."}
	repo.companies["ibm"] = Company{Code: "ibm", Name: "IBM", Description: "Big blue."}
	router := newTestRouter(repo, staticInvoiceIndex{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Companies []CompanySummary `json:"companies"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Companies, 2)
	assert.Equal(t, "Apple Computer", resp.Companies[0].Name)
	assert.Equal(t, "IBM", resp.Companies[1].Name)
}

func TestHandlerGetCompanyWithInvoices(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.companies["apple"] = Company{Code: "apple", Name: "Apple Computer", Description: "Maker of OSX."}
	router := newTestRouter(repo, staticInvoiceIndex{"apple": {1, 2}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/apple", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"company":{"code":"apple","name":"Apple Computer","description":"Maker of OSX.","invoices":[1,2]}}`, rec.Body.String())
}

func TestHandlerGetCompanyNotFound(t *testing.T) {
	router := newTestRouter(newMemoryCompanyRepo(), staticInvoiceIndex{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/ghost", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `cannot find company`)
}

func TestHandlerCreateCompany(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "success derives slug code",
			body:       `{"name":"Canoo","description":"EV"}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"company":{"code":"canoo","name":"Canoo","description":"EV"}}`, rec.Body.String())
			},
		},
		{
			name:       "missing name",
			body:       `{"description":"EV"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "name with no slug content",
			body:       `{"name":"***"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(newMemoryCompanyRepo(), staticInvoiceIndex{})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(tc.body)))

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.check != nil {
				tc.check(t, rec)
			}
		})
	}
}

func TestHandlerCreateCompanyDuplicate(t *testing.T) {
	repo := newMemoryCompanyRepo()
	router := newTestRouter(repo, staticInvoiceIndex{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{"name":"Acme"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{"name":"Acme"}`)))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerUpdateCompany(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.companies["apple"] = Company{Code: "apple", Name: "Apple Computer", Description: "Maker of OSX."}
	router := newTestRouter(repo, staticInvoiceIndex{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/companies/apple",
		strings.NewReader(`{"name":"Apple","description":"Fruit company."}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"company":{"code":"apple","name":"Apple","description":"Fruit company."}}`, rec.Body.String())
}

func TestHandlerUpdateCompanyNotFound(t *testing.T) {
	router := newTestRouter(newMemoryCompanyRepo(), staticInvoiceIndex{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/companies/ghost",
		strings.NewReader(`{"name":"Ghost"}`)))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerDeleteCompany(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.companies["apple"] = Company{Code: "apple", Name: "Apple Computer"}
	router := newTestRouter(repo, staticInvoiceIndex{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/companies/apple", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/companies/apple", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
