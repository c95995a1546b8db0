package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkit/fixedfile/pkg/access"
	"github.com/ledgerkit/fixedfile/pkg/ledger"
)

// fakeEditor is an in-memory FileEditor for handler tests.
type fakeEditor struct {
	fields map[string]string
	added  []AddRequest
	err    error
}

func key(recordType, field, selector string) string {
	return recordType + "/" + field + "/" + selector
}

func (f *fakeEditor) Get(recordType, field, selector string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	value, ok := f.fields[key(recordType, field, selector)]
	if !ok {
		return "", &access.RecordNotFoundError{Type: recordType, Selector: selector}
	}
	return value, nil
}

func (f *fakeEditor) Set(recordType, field, value, selector string) error {
	if f.err != nil {
		return f.err
	}
	f.fields[key(recordType, field, selector)] = value
	return nil
}

func (f *fakeEditor) Add(amount, currency string) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, AddRequest{Amount: amount, Currency: currency})
	return nil
}

func newTestServer(editor FileEditor, apiKey string) http.Handler {
	// nil metrics: promauto registers globally, which panics on duplicate
	// registration across tests.
	return NewServer(editor, ServerConfig{APIKey: apiKey}, nil).Router()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleHealth(t *testing.T) {
	handler := newTestServer(&fakeEditor{fields: map[string]string{}}, "")

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestHandleGetField(t *testing.T) {
	editor := &fakeEditor{fields: map[string]string{
		"TRANSACTION/amount/000003": "200.00",
	}}
	handler := newTestServer(editor, "")

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/records/TRANSACTION/amount?selector=000003", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "200.00", data["value"])

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/records/TRANSACTION/amount?selector=000099", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSetField(t *testing.T) {
	editor := &fakeEditor{fields: map[string]string{}}
	handler := newTestServer(editor, "")

	rec := doJSON(t, handler, http.MethodPut, "/api/v1/records/HEADER/address",
		SetRequest{Value: "12 New Street"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12 New Street", editor.fields["HEADER/address/"])
}

func TestHandleSetField_BadJSON(t *testing.T) {
	handler := newTestServer(&fakeEditor{fields: map[string]string{}}, "")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/records/HEADER/address", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAddTransaction(t *testing.T) {
	editor := &fakeEditor{fields: map[string]string{}}
	handler := newTestServer(editor, "")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/transactions",
		AddRequest{Amount: "500.00", Currency: "USD"})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, editor.added, 1)
	assert.Equal(t, "500.00", editor.added[0].Amount)
}

func TestAPIKeyMiddleware(t *testing.T) {
	handler := newTestServer(&fakeEditor{fields: map[string]string{}}, "secret")

	// Missing key.
	rec := doJSON(t, handler, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong key.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correct key.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Metrics endpoint stays unprotected for scraping.
	rec = doJSON(t, handler, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"ambiguous selection", &access.AmbiguousSelectionError{Type: "TRANSACTION", Count: 2}, http.StatusConflict},
		{"record not found", &access.RecordNotFoundError{Type: "TRANSACTION"}, http.StatusNotFound},
		{"value too long", &access.ValueTooLongError{Field: "amount", Length: 12}, http.StatusBadRequest},
		{"invalid value", &access.InvalidValueError{Field: "currency"}, http.StatusBadRequest},
		{"schema mismatch", &ledger.SchemaMismatchError{Reason: "no transaction type"}, http.StatusBadRequest},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}
