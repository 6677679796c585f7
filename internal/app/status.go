package app

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/relay-bot/internal/domain"
)

// Summarizer reports journal totals.
type Summarizer interface {
	Summary(ctx context.Context) (domain.Summary, error)
}

type statusResponse struct {
	PendingAcks int            `json:"pending_acks"`
	Journal     domain.Summary `json:"journal"`
}

func newMux(pending func() int, journal Summarizer, log *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/statusz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		sum, err := journal.Summary(ctx)
		if err != nil {
			log.Error("status summary failed", zap.Error(err))
			http.Error(w, "journal unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(statusResponse{PendingAcks: pending(), Journal: sum})
	})
	return mux
}
