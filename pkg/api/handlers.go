package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerkit/fixedfile/pkg/access"
	"github.com/ledgerkit/fixedfile/pkg/codec"
	"github.com/ledgerkit/fixedfile/pkg/ledger"
	"github.com/ledgerkit/fixedfile/pkg/schema"
)

// Server holds the API server state
type Server struct {
	editor  FileEditor
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(editor FileEditor, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		editor:  editor,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleGetField(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	recordType := chi.URLParam(r, "type")
	field := chi.URLParam(r, "field")
	selector := r.URL.Query().Get("selector")

	value, err := s.editor.Get(recordType, field, selector)
	if s.metrics != nil {
		s.metrics.RecordFileOperation("get", err == nil, time.Since(start))
	}
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, FieldResponse{RecordType: recordType, Field: field, Value: value, Selector: selector})
}

func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	recordType := chi.URLParam(r, "type")
	field := chi.URLParam(r, "field")

	var req SetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	err := s.editor.Set(recordType, field, req.Value, req.Selector)
	if s.metrics != nil {
		s.metrics.RecordFileOperation("set", err == nil, time.Since(start))
	}
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, FieldResponse{RecordType: recordType, Field: field, Value: req.Value, Selector: req.Selector})
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	err := s.editor.Add(req.Amount, req.Currency)
	if s.metrics != nil {
		s.metrics.RecordFileOperation("add", err == nil, time.Since(start))
	}
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, map[string]string{"amount": req.Amount, "currency": req.Currency})
}

// statusFor maps the error taxonomy onto HTTP status codes: bad input is 400,
// a missing record 404, an ambiguous selection 409, anything else 500.
func statusFor(err error) int {
	var (
		unknownType  *schema.UnknownRecordTypeError
		unknownField *schema.UnknownFieldError
		malformed    *codec.MalformedRecordError
		tooLong      *access.ValueTooLongError
		invalid      *access.InvalidValueError
		noSelector   *access.NoSelectorError
		notFound     *access.RecordNotFoundError
		ambiguous    *access.AmbiguousSelectionError
		mismatch     *ledger.SchemaMismatchError
	)
	switch {
	case errors.As(err, &unknownType),
		errors.As(err, &unknownField),
		errors.As(err, &malformed),
		errors.As(err, &tooLong),
		errors.As(err, &invalid),
		errors.As(err, &noSelector),
		errors.As(err, &mismatch):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &ambiguous):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
