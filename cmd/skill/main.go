package main

import (
	"bitbucket.org/sotavant/hardhat-skill/internal/backend"
	"bitbucket.org/sotavant/hardhat-skill/internal/logger"
	"bitbucket.org/sotavant/hardhat-skill/internal/skill"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		panic(err)
	}
}

func gzipMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ow := w

		acceptEncoding := r.Header.Get("Accept-Encoding")
		supportGzip := strings.Contains(acceptEncoding, "gzip")

		if supportGzip {
			cw := newCompressWriter(w)
			ow = cw
			defer func(cw *compressWriter) {
				if err := cw.Close(); err != nil {
					logger.Log.Debug("compressWriterError", zap.Error(err))
				}
			}(cw)
		}

		contentEncoding := r.Header.Get("Content-Encoding")

		sendsGzip := strings.Contains(contentEncoding, "gzip")
		if sendsGzip {
			cr, err := newCompressReader(r.Body)
			if err != nil {
				logger.Log.Debug("newCompressReaderError", zap.Error(err))
				ow.WriteHeader(http.StatusBadRequest)
				return
			}
			r.Body = cr
			defer func(cr *compressReader) {
				if err := cr.Close(); err != nil {
					logger.Log.Debug("closeCompressReaderError", zap.Error(err))
				}
			}(cr)
		}

		h.ServeHTTP(ow, r)
	}
}

func newRouter(a *app) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", logger.RequestLogger(gzipMiddleware(a.webhook)))
	return mux
}

func run(cfg config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	if cfg.Backend.APIKey == "" {
		logger.Log.Warn("helmet backend API key is not set")
	}

	client := backend.NewClient(cfg.Backend)
	a := newApp(skill.New(skill.Handlers(client)...))

	logger.Log.Info("Running server",
		zap.String("address", cfg.RunAddr),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	return http.ListenAndServe(cfg.RunAddr, newRouter(a))
}
