package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"currencyrates/internal/currency"
	"currencyrates/internal/provider"
	"currencyrates/internal/series"
)

// rateResolver and seriesBuilder are the slices of the engine the handlers
// need, kept as interfaces so tests can fake them.
type rateResolver interface {
	Resolve(ctx context.Context, base, quote currency.Code) (provider.Quote, error)
}

type seriesBuilder interface {
	Build(ctx context.Context, base, quote currency.Code) series.Series
}

type apiServer struct {
	resolver rateResolver
	builder  seriesBuilder
	log      *logrus.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// pairParams validates base/quote query params against the supported set.
func pairParams(r *http.Request) (currency.Code, currency.Code, bool) {
	base := currency.Code(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("base"))))
	quote := currency.Code(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("quote"))))
	if !currency.IsSupported(base) || !currency.IsSupported(quote) {
		return "", "", false
	}
	return base, quote, true
}

func (s *apiServer) handleRate(w http.ResponseWriter, r *http.Request) {
	base, quote, ok := pairParams(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown base or quote currency"})
		return
	}
	q, err := s.resolver.Resolve(r.Context(), base, quote)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, provider.ErrPairUnsupported) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: "rate unavailable"})
		s.log.WithFields(logrus.Fields{"base": base, "quote": quote}).WithError(err).Warn("spot resolution failed")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// handleSeries always answers 200 with a full-length grid; a failed build
// arrives as zeros with all_zero set, which the UI degrades gracefully on.
func (s *apiServer) handleSeries(w http.ResponseWriter, r *http.Request) {
	base, quote, ok := pairParams(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown base or quote currency"})
		return
	}
	writeJSON(w, http.StatusOK, s.builder.Build(r.Context(), base, quote))
}

func (s *apiServer) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"currencies": currency.All})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func loggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)
			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"url":      r.URL.String(),
				"status":   wrapped.status,
				"duration": time.Since(start).String(),
			}).Info("HTTP request")
		})
	}
}

func recoverMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.WithFields(logrus.Fields{"error": rec, "url": r.URL.String()}).Error("panic recovered")
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// withGzip compresses responses when the client supports gzip.
func withGzip(next http.Handler) http.Handler {
	var gzPool = sync.Pool{New: func() any {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
		return w
	}}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gz := gzPool.Get().(*gzip.Writer)
		gz.Reset(w)
		defer func() {
			_ = gz.Close()
			gz.Reset(io.Discard)
			gzPool.Put(gz)
		}()
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		next.ServeHTTP(gzipResponseWriter{ResponseWriter: w, Writer: gz}, r)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
	return g.Writer.Write(b)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
