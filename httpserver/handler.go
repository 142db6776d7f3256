package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ruteri/healthcare-contract-client/interfaces"
	"github.com/ruteri/healthcare-contract-client/journal"
	"github.com/ruteri/healthcare-contract-client/records"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// RequestError provides structured error information for HTTP responses.
// It includes both an HTTP status code and the underlying error.
type RequestError struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error returns the error message from the underlying error.
func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// HealthcareAPI is what the gateway needs from records.HealthcareService.
type HealthcareAPI interface {
	Register(ctx context.Context, req records.RegisterRequest) (*records.Receipt, error)
	Delete(ctx context.Context, hash interfaces.RecordHash) (*records.Receipt, error)
	GetInfo(ctx context.Context, hash interfaces.RecordHash) (interfaces.HealthcareRecord, error)
}

// PrescriptionAPI is what the gateway needs from records.PrescriptionService.
type PrescriptionAPI interface {
	Register(ctx context.Context, req records.PrescriptionRequest) (*records.Receipt, error)
	Use(ctx context.Context, req records.UseRequest) (*records.Receipt, error)
	GetInfo(ctx context.Context, hash interfaces.RecordHash) (interfaces.PrescriptionRecord, error)
}

// HistoryLister lists journaled transactions.
type HistoryLister interface {
	List(ctx context.Context, filter journal.Filter) ([]journal.Entry, error)
}

// Backends wires the gateway to contract services. Any field may be nil;
// the matching routes then answer 503.
type Backends struct {
	Healthcare         HealthcareAPI
	HealthcareEvents   interfaces.EventSource
	Prescription       PrescriptionAPI
	PrescriptionEvents interfaces.EventSource
	History            HistoryLister
}

func (b Backends) contracts() []string {
	var out []string
	if b.Healthcare != nil {
		out = append(out, "healthcare")
	}
	if b.Prescription != nil {
		out = append(out, "prescription")
	}
	return out
}

// Handler serves the record API on top of the contract services.
type Handler struct {
	backends Backends
	log      *slog.Logger
}

// NewHandler creates a new HTTP request handler over backends.
func NewHandler(backends Backends, log *slog.Logger) *Handler {
	return &Handler{backends: backends, log: log}
}

type registerHealthcareRequest struct {
	Hash           string `json:"hash"`
	PhoneNumber    string `json:"phoneNumber"`
	HealthcareType *uint8 `json:"healthcareType"`
	Hospital       string `json:"hospital"`
}

type registerPrescriptionRequest struct {
	Hash          string `json:"hash"`
	PrescribeDate uint64 `json:"prescribeDate"`
	EndDate       uint64 `json:"endDate"`
	Hospital      string `json:"hospital"`
}

type usePrescriptionRequest struct {
	PrepareDate uint64 `json:"prepareDate"`
	Pharmacy    string `json:"pharmacy"`
}

type healthcareInfoResponse struct {
	Hash interfaces.RecordHash `json:"hash"`
	interfaces.HealthcareRecord
	StatusText string `json:"statusText"`
	TypeText   string `json:"healthcareTypeText"`
}

type prescriptionInfoResponse struct {
	Hash interfaces.RecordHash `json:"hash"`
	interfaces.PrescriptionRecord
	StatusText string `json:"statusText"`
}

// HandleRegisterHealthcare processes POST /api/healthcare.
// An empty hash is generated from the current time.
func (h *Handler) HandleRegisterHealthcare(w http.ResponseWriter, r *http.Request) {
	if h.backends.Healthcare == nil {
		h.writeError(w, r, notConfigured("healthcare contract"))
		return
	}

	var body registerHealthcareRequest
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	if body.HealthcareType == nil {
		h.writeError(w, r, badRequest(fmt.Errorf("%w: healthcareType is required", interfaces.ErrValidation)))
		return
	}

	req := records.RegisterRequest{
		Phone:    body.PhoneNumber,
		Type:     interfaces.HealthcareType(*body.HealthcareType),
		Hospital: body.Hospital,
	}
	if body.Hash != "" {
		hash, err := interfaces.ParseRecordHash(body.Hash)
		if err != nil {
			h.writeError(w, r, badRequest(err))
			return
		}
		req.Hash = hash
	}

	receipt, err := h.backends.Healthcare.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, receipt)
}

// HandleDeleteHealthcare processes DELETE /api/healthcare/{hash}.
func (h *Handler) HandleDeleteHealthcare(w http.ResponseWriter, r *http.Request) {
	if h.backends.Healthcare == nil {
		h.writeError(w, r, notConfigured("healthcare contract"))
		return
	}
	hash, err := pathHash(r, interfaces.ParseRecordHash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	receipt, err := h.backends.Healthcare.Delete(r.Context(), hash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, receipt)
}

// HandleHealthcareInfo processes GET /api/healthcare/{hash}.
// A hash that was never registered answers 200 with the zero record and
// status Null.
func (h *Handler) HandleHealthcareInfo(w http.ResponseWriter, r *http.Request) {
	if h.backends.Healthcare == nil {
		h.writeError(w, r, notConfigured("healthcare contract"))
		return
	}
	hash, err := pathHash(r, interfaces.ParseRecordHash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	record, err := h.backends.Healthcare.GetInfo(r.Context(), hash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, healthcareInfoResponse{
		Hash:             hash,
		HealthcareRecord: record,
		StatusText:       record.Status.String(),
		TypeText:         record.Type.String(),
	})
}

// HandleRegisterPrescription processes POST /api/prescriptions.
func (h *Handler) HandleRegisterPrescription(w http.ResponseWriter, r *http.Request) {
	if h.backends.Prescription == nil {
		h.writeError(w, r, notConfigured("prescription contract"))
		return
	}

	var body registerPrescriptionRequest
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	hash, err := interfaces.ParseTextHash(body.Hash)
	if err != nil {
		h.writeError(w, r, badRequest(err))
		return
	}

	receipt, err := h.backends.Prescription.Register(r.Context(), records.PrescriptionRequest{
		Hash:          hash,
		PrescribeDate: body.PrescribeDate,
		EndDate:       body.EndDate,
		Hospital:      body.Hospital,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, receipt)
}

// HandleUsePrescription processes POST /api/prescriptions/{hash}/use.
func (h *Handler) HandleUsePrescription(w http.ResponseWriter, r *http.Request) {
	if h.backends.Prescription == nil {
		h.writeError(w, r, notConfigured("prescription contract"))
		return
	}
	hash, err := pathHash(r, interfaces.ParseTextHash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var body usePrescriptionRequest
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	receipt, err := h.backends.Prescription.Use(r.Context(), records.UseRequest{
		Hash:        hash,
		PrepareDate: body.PrepareDate,
		Pharmacy:    body.Pharmacy,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, receipt)
}

// HandlePrescriptionInfo processes GET /api/prescriptions/{hash}.
// Unknown prescriptions answer 200 with status Null.
func (h *Handler) HandlePrescriptionInfo(w http.ResponseWriter, r *http.Request) {
	if h.backends.Prescription == nil {
		h.writeError(w, r, notConfigured("prescription contract"))
		return
	}
	hash, err := pathHash(r, interfaces.ParseTextHash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	record, err := h.backends.Prescription.GetInfo(r.Context(), hash)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, prescriptionInfoResponse{
		Hash:               hash,
		PrescriptionRecord: record,
		StatusText:         record.Status.String(),
	})
}

// HandleHealthcareEvents processes GET /api/healthcare/events?from=N.
func (h *Handler) HandleHealthcareEvents(w http.ResponseWriter, r *http.Request) {
	h.handleEvents(w, r, "healthcare", h.backends.HealthcareEvents)
}

// HandlePrescriptionEvents processes GET /api/prescriptions/events?from=N.
func (h *Handler) HandlePrescriptionEvents(w http.ResponseWriter, r *http.Request) {
	h.handleEvents(w, r, "prescription", h.backends.PrescriptionEvents)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request, contract string, source interfaces.EventSource) {
	if source == nil {
		h.writeError(w, r, notConfigured(contract+" contract"))
		return
	}

	var from uint64
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			h.writeError(w, r, badRequest(fmt.Errorf("%w: invalid from block %q", interfaces.ErrValidation, v)))
			return
		}
		from = parsed
	}

	events, err := source.Events(r.Context(), from)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []interfaces.RecordEvent{}
	}
	h.writeJSON(w, http.StatusOK, events)
}

// HandleHistory processes GET /api/history?contract=&hash=&limit=.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if h.backends.History == nil {
		h.writeError(w, r, notConfigured("journal"))
		return
	}

	q := r.URL.Query()
	filter := journal.Filter{Contract: q.Get("contract")}
	if v := q.Get("hash"); v != "" {
		// Prescription keys are keccak of the text, healthcare keys are bytes32 strings.
		parse := interfaces.ParseRecordHash
		if filter.Contract == "prescription" {
			parse = interfaces.ParseTextHash
		}
		hash, err := parse(v)
		if err != nil {
			h.writeError(w, r, badRequest(err))
			return
		}
		filter.Hash = hash
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			h.writeError(w, r, badRequest(fmt.Errorf("%w: invalid limit %q", interfaces.ErrValidation, v)))
			return
		}
		filter.Limit = limit
	}

	entries, err := h.backends.History.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// StatusFor maps a service error onto an HTTP status code.
func StatusFor(err error) int {
	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.StatusCode
	case errors.Is(err, interfaces.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, interfaces.ErrDuplicateRegistration),
		errors.Is(err, interfaces.ErrRecordNotFound):
		return http.StatusConflict
	case errors.Is(err, interfaces.ErrReverted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, interfaces.ErrNoTransactOpts),
		errors.Is(err, interfaces.ErrNoSigner):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		h.log.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return badRequest(fmt.Errorf("failed to read request body: %w", err))
	}
	if len(body) > maxBodySize {
		return &RequestError{StatusCode: http.StatusRequestEntityTooLarge, Err: errors.New("request body too large")}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return badRequest(fmt.Errorf("%w: malformed JSON body: %v", interfaces.ErrValidation, err))
	}
	return nil
}

func pathHash(r *http.Request, parse func(string) (interfaces.RecordHash, error)) (interfaces.RecordHash, error) {
	hash, err := parse(chi.URLParam(r, "hash"))
	if err != nil {
		return interfaces.RecordHash{}, badRequest(err)
	}
	return hash, nil
}

func badRequest(err error) error {
	return &RequestError{StatusCode: http.StatusBadRequest, Err: err}
}

func notConfigured(what string) error {
	return &RequestError{StatusCode: http.StatusServiceUnavailable, Err: fmt.Errorf("%s is not configured", what)}
}
