package backend

import (
	"context"
	"fmt"
	"net/http"
)

//go:generate mockgen -destination=mock/backend.go -package=mock . Client

const DefaultBaseURL = "https://smart-hardhat.onrender.com"

const (
	PathLatestReading = "/api/impact/latest"
	PathImpact        = "/api/impact"
	PathEvents        = "/api/events"
	PathHardhat       = "/api/hardhat"
)

// Client talks to the helmet telemetry backend.
//
// Only transport failures are returned as errors, always as *NetworkError.
// Malformed or empty bodies are reported as an empty reading or result.
type Client interface {
	LatestReading(ctx context.Context) (HelmetReading, error)
	Send(ctx context.Context, method, path string, body any) (Result, error)
}

type Config struct {
	BaseURL string
	APIKey  string
}

// NetworkError means the backend could not be reached at all.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ImpactReport is the body of POST /api/impact.
type ImpactReport struct {
	Impact   int     `json:"impact"`
	Light    string  `json:"light"`
	GForce   float64 `json:"g_force"`
	LightRaw int     `json:"light_raw"`
}

// HardhatUpdate is the body of PUT /api/hardhat. Empty fields are left out.
type HardhatUpdate struct {
	Nickname  string `json:"nickname,omitempty"`
	OwnerName string `json:"owner_name,omitempty"`
}

// ReportImpact records an impact event.
func ReportImpact(ctx context.Context, c Client, report ImpactReport) (Result, error) {
	return c.Send(ctx, http.MethodPost, PathImpact, report)
}

// ClearEvents deletes the impact history.
func ClearEvents(ctx context.Context, c Client) (Result, error) {
	return c.Send(ctx, http.MethodDelete, PathEvents, nil)
}

// UpdateHardhat changes the device metadata.
func UpdateHardhat(ctx context.Context, c Client, upd HardhatUpdate) (Result, error) {
	return c.Send(ctx, http.MethodPut, PathHardhat, upd)
}
