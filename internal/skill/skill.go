package skill

import (
	"bitbucket.org/sotavant/hardhat-skill/internal/logger"
	"bitbucket.org/sotavant/hardhat-skill/internal/metrics"
	"bitbucket.org/sotavant/hardhat-skill/internal/models"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
)

var ErrNoHandler = errors.New("no handler for request")

// Handler answers the requests it claims with CanHandle.
type Handler interface {
	Name() string
	CanHandle(req *models.Request) bool
	Handle(ctx context.Context, req *models.Request) (Response, error)
}

// Response is what the voice platform says back to the user.
type Response struct {
	Speech     string
	Reprompt   string
	EndSession bool
}

func speak(text string) Response {
	return Response{Speech: text, EndSession: true}
}

func speakAndReprompt(text, reprompt string) Response {
	return Response{Speech: text, Reprompt: reprompt}
}

// Envelope converts r into the platform response body.
func (r Response) Envelope() models.Response {
	resp := models.Response{Version: models.Version}
	if r.Speech == "" && r.Reprompt == "" {
		return resp
	}

	if r.Speech != "" {
		resp.Response.OutputSpeech = &models.OutputSpeech{Type: models.SpeechPlainText, Text: r.Speech}
	}
	if r.Reprompt != "" {
		resp.Response.Reprompt = &models.Reprompt{
			OutputSpeech: models.OutputSpeech{Type: models.SpeechPlainText, Text: r.Reprompt},
		}
	}
	end := r.EndSession
	resp.Response.ShouldEndSession = &end

	return resp
}

// Skill routes each request to the first handler that accepts it. Order of
// handlers matters: catch-all handlers must come last.
type Skill struct {
	handlers []Handler
}

func New(handlers ...Handler) *Skill {
	return &Skill{handlers: handlers}
}

// Dispatch always produces a response. Handler errors, panics and requests
// nobody accepts are answered by the error handler.
func (s *Skill) Dispatch(ctx context.Context, req *models.Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = s.fail(ctx, req, fmt.Errorf("handler panic: %v", r))
		}
	}()

	for _, h := range s.handlers {
		if !h.CanHandle(req) {
			continue
		}

		out, err := h.Handle(ctx, req)
		if err != nil {
			return s.fail(ctx, req, fmt.Errorf("%s: %w", h.Name(), err))
		}

		metrics.SkillRequests.WithLabelValues(h.Name()).Inc()
		return out
	}

	return s.fail(ctx, req, ErrNoHandler)
}

func (s *Skill) fail(ctx context.Context, req *models.Request, err error) Response {
	logger.Log.Warn("error handled",
		zap.String("type", req.RequestType()),
		zap.String("intent", req.IntentName()),
		zap.Error(err),
	)
	var eh ErrorHandler
	metrics.SkillRequests.WithLabelValues(eh.Name()).Inc()
	return eh.Handle(ctx, req, err)
}

const speechError = "Sorry, I had trouble accessing helmet data."

// ErrorHandler answers every request that Dispatch could not. It has no
// predicate: any request and any error get the same apology.
type ErrorHandler struct{}

func (ErrorHandler) Name() string { return "ErrorHandler" }

func (ErrorHandler) Handle(context.Context, *models.Request, error) Response {
	return speakAndReprompt(speechError, speechError)
}
