package backend

import (
	"bitbucket.org/sotavant/hardhat-skill/internal/logger"
	"bitbucket.org/sotavant/hardhat-skill/internal/metrics"
	"context"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"net/http"
	"time"
)

const headerAPIKey = "x-api-key"

// RESTClient is the Client backed by the helmet REST API.
type RESTClient struct {
	http *resty.Client
}

var _ Client = (*RESTClient)(nil)

func NewClient(cfg Config) *RESTClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader(headerAPIKey, cfg.APIKey)

	return &RESTClient{http: c}
}

func (c *RESTClient) LatestReading(ctx context.Context) (HelmetReading, error) {
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		Get(PathLatestReading)
	if err != nil {
		observe(http.MethodGet, PathLatestReading, metrics.OutcomeNetworkError, start)
		return HelmetReading{}, &NetworkError{Method: http.MethodGet, Path: PathLatestReading, Err: err}
	}

	obj := decodeObject(resp.Body())
	logger.Log.Debug("backend responded",
		zap.String("path", PathLatestReading),
		zap.Int("status", resp.StatusCode()),
		zap.Int("size", len(resp.Body())),
	)

	outcome := metrics.OutcomeOK
	if obj.Failed() {
		outcome = metrics.OutcomeAppError
	}
	observe(http.MethodGet, PathLatestReading, outcome, start)

	return decodeReading(obj), nil
}

func (c *RESTClient) Send(ctx context.Context, method, path string, body any) (Result, error) {
	start := time.Now()

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		observe(method, path, metrics.OutcomeNetworkError, start)
		return nil, &NetworkError{Method: method, Path: path, Err: err}
	}

	logger.Log.Debug("backend responded",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
	)

	res := decodeObject(resp.Body())
	if res == nil {
		res = Result{}
	}

	outcome := metrics.OutcomeOK
	if res.Failed() {
		outcome = metrics.OutcomeAppError
	}
	observe(method, path, outcome, start)

	return res, nil
}

func observe(method, path, outcome string, start time.Time) {
	metrics.BackendRequests.WithLabelValues(method, path, outcome).Inc()
	metrics.BackendRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
}
