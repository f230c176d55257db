package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/foomo/mockserver/pkg/metrics"
	"github.com/foomo/mockserver/pkg/retry"
)

const (
	// DefaultSlowDelay is how long the slow scenario blocks before
	// answering. Long on purpose, outlasting any sane client timeout.
	DefaultSlowDelay = 120 * time.Second

	failThenOkMatch      = "/fail-then-ok"
	failThenOkSucceedsAt = 3

	wrongChecksumChunk   = "wrong content "
	wrongChecksumRepeats = 100000

	corruptedZipPadding = 100
)

// zipMagic is the zip local file header signature
var zipMagic = []byte("PK\x03\x04")

type (
	HTTP struct {
		l         *zap.Logger
		counter   *retry.Counter
		files     http.Handler
		scenarios []scenario
		slowDelay time.Duration
	}
	HTTPOption func(*HTTP)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// NewHTTP returns the failure simulation handler. GET requests whose path
// contains a scenario substring are answered by that scenario, everything
// else is delegated to the files handler.
func NewHTTP(l *zap.Logger, counter *retry.Counter, files http.Handler, opts ...HTTPOption) http.Handler {
	inst := &HTTP{
		l:         l.Named("http"),
		counter:   counter,
		files:     files,
		scenarios: scenarios(),
		slowDelay: DefaultSlowDelay,
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithSlowDelay(v time.Duration) HTTPOption {
	return func(o *HTTP) {
		o.slowDelay = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.serveFixture(w, r)
		return
	}
	for _, s := range h.scenarios {
		if strings.Contains(r.URL.Path, s.match) {
			h.handleScenario(s, w, r)
			return
		}
	}
	h.serveFixture(w, r)
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (h *HTTP) handleScenario(s scenario, w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.serve(h, rec, r)

	metrics.ScenarioRequestCounter.WithLabelValues(string(s.name), strconv.Itoa(rec.status)).Inc()
	metrics.ScenarioRequestDuration.WithLabelValues(string(s.name)).Observe(time.Since(start).Seconds())
}

func (h *HTTP) serveFixture(w http.ResponseWriter, r *http.Request) {
	metrics.FixtureRequestCounter.WithLabelValues().Inc()
	h.files.ServeHTTP(w, r)
}

func (h *HTTP) serveNotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

func (h *HTTP) serveServerError(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// serveSlow blocks the handling goroutine only. The accept loop and all
// other in-flight requests keep going.
func (h *HTTP) serveSlow(w http.ResponseWriter, r *http.Request) {
	h.l.Debug("blocking slow request", zap.Duration("delay", h.slowDelay))
	time.Sleep(h.slowDelay)
	w.WriteHeader(http.StatusOK)
}

// serveFailThenOk fails the first two requests per path with a 503. From
// the third request on, the scenario substring is removed from the path
// and the fixture behind it is served, permanently.
func (h *HTTP) serveFailThenOk(w http.ResponseWriter, r *http.Request) {
	count := h.counter.Bump(r.URL.Path)
	if count < failThenOkSucceedsAt {
		h.l.Debug("failing request",
			zap.String("path", r.URL.Path),
			zap.Int("count", count),
		)
		http.Error(w, "Service Temporarily Unavailable", http.StatusServiceUnavailable)
		return
	}
	rewritten := strings.ReplaceAll(r.URL.Path, failThenOkMatch, "")
	if rewritten == "" {
		rewritten = "/"
	}
	rr := r.Clone(r.Context())
	rr.URL.Path = rewritten
	rr.URL.RawPath = ""
	h.serveFixture(w, rr)
}

func (h *HTTP) serveWrongChecksum(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(bytes.Repeat([]byte(wrongChecksumChunk), wrongChecksumRepeats))
}

func (h *HTTP) serveCorruptedZip(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/zip")
	body := make([]byte, 0, len(zipMagic)+corruptedZipPadding)
	body = append(body, zipMagic...)
	body = append(body, make([]byte, corruptedZipPadding)...)
	_, _ = w.Write(body)
}

func (h *HTTP) serveSmallFile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write([]byte("too small"))
}

// statusRecorder captures the status code written by a scenario for the
// request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
