package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ggyyuubb/wearther/internal/infra/config"
)

const retryBodyLimit = 1 << 20

// noRetryHeader marks a failure as final even when its status is retryable. It never
// reaches the client.
const noRetryHeader = "X-No-Retry"

var errBodyTooLarge = errors.New("request body exceeds retry limit")

// gatewayStatuses are the upstream-class failures worth replaying.
var gatewayStatuses = map[int]struct{}{
	http.StatusBadGateway:         {},
	http.StatusServiceUnavailable: {},
	http.StatusGatewayTimeout:     {},
}

type retrier struct {
	next    http.Handler
	cfg     config.RetryConfig
	exclude map[string]struct{}
	logger  *slog.Logger
	sleep   func(time.Duration)
}

// withRetry replays POST requests that end in a gateway-class failure. Excluded paths pass through.
func withRetry(next http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return next
	}
	r := &retrier{
		next:    next,
		cfg:     cfg,
		exclude: make(map[string]struct{}, len(cfg.Exclude)),
		logger:  logger.With("component", "http.retry"),
		sleep:   time.Sleep,
	}
	for _, path := range cfg.Exclude {
		r.exclude[path] = struct{}{}
	}
	return r
}

func (r *retrier) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if _, skip := r.exclude[req.URL.Path]; skip || req.Method != http.MethodPost {
		r.next.ServeHTTP(w, req)
		return
	}
	body, err := bufferBody(req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, err.Error(), status)
		return
	}

	for attempt := 1; ; attempt++ {
		if attempt > 1 {
			r.sleep(r.backoff(attempt))
		}
		buf := newBufferedResponse()
		replay := req.Clone(req.Context())
		replay.Body = io.NopCloser(bytes.NewReader(body))
		replay.ContentLength = int64(len(body))
		r.next.ServeHTTP(buf, replay)

		if !buf.retryable() || attempt >= r.cfg.MaxAttempts || req.Context().Err() != nil {
			buf.flushTo(w)
			return
		}
		r.logger.Warn("gateway failure, replaying request", "path", req.URL.Path, "status", buf.status, "attempt", attempt)
	}
}

// backoff doubles BaseBackoff for every attempt after the second.
func (r *retrier) backoff(attempt int) time.Duration {
	return r.cfg.BaseBackoff * time.Duration(1<<(attempt-2))
}

func bufferBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	defer req.Body.Close()
	data, err := io.ReadAll(io.LimitReader(req.Body, retryBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > retryBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// bufferedResponse holds one attempt's response until the retrier decides to keep it.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) retryable() bool {
	if _, ok := gatewayStatuses[b.status]; !ok {
		return false
	}
	return b.header.Get(noRetryHeader) == ""
}

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k := range dst {
		dst.Del(k)
	}
	for k, values := range b.header {
		if k == noRetryHeader {
			continue
		}
		dst[k] = append([]string(nil), values...)
	}
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
