package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eugenenazirov/roman-numerals/internal/numeral"
	"github.com/eugenenazirov/roman-numerals/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Converter turns a number into its Roman numeral.
type Converter interface {
	Convert(ctx context.Context, n int) (string, error)
}

// Handler wires converter and history dependencies into HTTP handlers.
type Handler struct {
	converter Converter
	history   storage.History

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(conv Converter, history storage.History, opts ...HandlerOption) *Handler {
	h := &Handler{
		converter: conv,
		history:   history,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSymbols(w http.ResponseWriter, _ *http.Request) {
	table := numeral.Symbols()
	symbols := make([]symbolResponse, 0, len(table))
	for _, sym := range table {
		symbols = append(symbols, symbolResponse{Value: sym.Value, Symbol: sym.Text})
	}

	writeJSON(w, http.StatusOK, symbolsResponse{
		Symbols: symbols,
		Min:     numeral.MinValue,
		Max:     numeral.MaxValue,
	})
}

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if req.Number == nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "number is required")
		return
	}

	h.convert(w, r, *req.Number)
}

func (h *Handler) handleConvertPath(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("number")
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", fmt.Sprintf("%q is not an integer", raw))
		return
	}

	h.convert(w, r, n)
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request, n int) {
	start := time.Now()
	result, err := h.converter.Convert(r.Context(), n)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, numeral.ErrOutOfRange) {
			suggestion := fmt.Sprintf("Use a whole number between %d and %d", numeral.MinValue, numeral.MaxValue)
			writeError(w, http.StatusUnprocessableEntity, "Number out of range", err.Error(), suggestion)
			return
		}
		writeInternalError(w, err)
		return
	}

	if err := h.history.Record(storage.Conversion{
		Number:      n,
		Numeral:     result,
		ConvertedAt: h.clock(),
	}); err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Number:            n,
		Numeral:           result,
		CalculationTimeMs: elapsed.Milliseconds(),
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			writeError(w, http.StatusBadRequest, "Invalid request", "limit must be a non-negative integer")
			return
		}
		limit = value
	}

	entries, err := h.history.Recent(limit)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	conversions := make([]conversionResponse, 0, len(entries))
	for _, c := range entries {
		conversions = append(conversions, conversionResponse{
			Number:      c.Number,
			Numeral:     c.Numeral,
			ConvertedAt: c.ConvertedAt,
		})
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Conversions: conversions,
		Count:       len(conversions),
	})
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type convertRequest struct {
	Number *int `json:"number"`
}

type convertResponse struct {
	Number            int    `json:"number"`
	Numeral           string `json:"numeral"`
	CalculationTimeMs int64  `json:"calculationTimeMs"`
}

type symbolResponse struct {
	Value  int    `json:"value"`
	Symbol string `json:"symbol"`
}

type symbolsResponse struct {
	Symbols []symbolResponse `json:"symbols"`
	Min     int              `json:"min"`
	Max     int              `json:"max"`
}

type conversionResponse struct {
	Number      int       `json:"number"`
	Numeral     string    `json:"numeral"`
	ConvertedAt time.Time `json:"convertedAt"`
}

type historyResponse struct {
	Conversions []conversionResponse `json:"conversions"`
	Count       int                  `json:"count"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
