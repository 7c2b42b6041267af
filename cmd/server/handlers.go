package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rizzk-go/internal/history"
	"rizzk-go/internal/marketdata"
	"rizzk-go/internal/risk"

	"go.uber.org/zap"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log     *zap.Logger
	store   *history.Store
	quotes  marketdata.ClientInterface
	started time.Time
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, store *history.Store, quotes marketdata.ClientInterface) *APIHandler {
	return &APIHandler{
		log:     log,
		store:   store,
		quotes:  quotes,
		started: time.Now(),
	}
}

// CalculateRequest is the body of POST /api/calculate. Symbol is optional:
// when set and EntryPrice is omitted, entry is filled from the live quote.
type CalculateRequest struct {
	risk.TradeInput
	Symbol string `json:"symbol,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// CalculateHandler validates a trade, computes its sizing and appends the
// result to the history.
func (h *APIHandler) CalculateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if req.Symbol != "" && req.EntryPrice == 0 {
		price, err := h.quotes.GetTickerPrice(r.Context(), req.Symbol)
		if err != nil {
			h.log.Error("Failed to fetch entry quote", zap.String("symbol", req.Symbol), zap.Error(err))
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch quote for " + req.Symbol})
			return
		}
		req.EntryPrice = price
	}

	result, err := risk.Compute(req.TradeInput)
	if err != nil {
		var verr *risk.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:  verr.Message,
				Reason: string(verr.Reason),
			})
			return
		}
		h.log.Error("Calculation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "calculation failed"})
		return
	}

	if _, err := h.store.Save(req.Symbol, req.TradeInput, result); err != nil {
		// The result is still worth returning; history is best-effort here.
		h.log.Error("Failed to save calculation to history", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, result)
}

// HistoryHandler lists past calculations (GET) or clears them (DELETE).
func (h *APIHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
				return
			}
			limit = n
		}

		records, err := h.store.List(limit)
		if err != nil {
			h.log.Error("Failed to list history", zap.Error(err))
			http.Error(w, "failed to list history", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, records)

	case http.MethodDelete:
		if err := h.store.Clear(); err != nil {
			h.log.Error("Failed to clear history", zap.Error(err))
			http.Error(w, "failed to clear history", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ExportHandler streams the full history as a CSV attachment.
func (h *APIHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records, err := h.store.List(0)
	if err != nil {
		h.log.Error("Failed to list history for export", zap.Error(err))
		http.Error(w, "failed to export history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="rizzk_history.csv"`)
	if err := history.WriteCSV(w, records); err != nil {
		h.log.Error("Failed to write CSV export", zap.Error(err))
	}
}

// QuoteHandler returns the live quote for one symbol.
func (h *APIHandler) QuoteHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "symbol is required"})
		return
	}

	price, err := h.quotes.GetTickerPrice(r.Context(), symbol)
	if err != nil {
		h.log.Error("Failed to fetch quote", zap.String("symbol", symbol), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch quote for " + symbol})
		return
	}

	writeJSON(w, http.StatusOK, marketdata.Quote{Symbol: symbol, Price: price})
}

// WatchlistHandler returns live quotes for a comma-separated list of symbols.
// Symbols without a usable quote are omitted from the response.
func (h *APIHandler) WatchlistHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "symbols is required"})
		return
	}

	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}

	quotes, err := h.quotes.Snapshot(r.Context(), symbols)
	if err != nil {
		h.log.Error("Failed to fetch watchlist snapshot", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch watchlist quotes"})
		return
	}

	writeJSON(w, http.StatusOK, quotes)
}

// StatusResponse is the structure for the /api/status endpoint.
type StatusResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	HistoryCount  int64  `json:"history_count"`
}

// StatusHandler reports server liveness and history size.
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count()
	if err != nil {
		h.log.Error("Failed to count history", zap.Error(err))
		http.Error(w, "failed to read status", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		HistoryCount:  count,
	})
}
