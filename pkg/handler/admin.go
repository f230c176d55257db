package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/foomo/mockserver/pkg/retry"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewAdmin returns a handler exposing the retry counter table, so a test
// suite can inspect how often each fail-then-ok path has been hit.
func NewAdmin(l *zap.Logger, counter *retry.Counter) http.Handler {
	l = l.Named("admin")

	h := http.NewServeMux()
	h.Handle("/counters", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := json.Marshal(counter.Snapshot())
		if err != nil {
			l.Error("failed to marshal counters", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(body); err != nil {
			l.Error("failed to write counters", zap.Error(err))
		}
	}))

	return h
}
