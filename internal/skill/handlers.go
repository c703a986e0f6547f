package skill

import (
	"bitbucket.org/sotavant/hardhat-skill/internal/backend"
	"bitbucket.org/sotavant/hardhat-skill/internal/logger"
	"bitbucket.org/sotavant/hardhat-skill/internal/models"
	"context"
	"go.uber.org/zap"
)

const (
	IntentGetHelmetStatus = "GetHelmetStatusIntent"
	IntentReportImpact    = "ReportImpactIntent"
	IntentToggleHeadlamp  = "ToggleHeadlampIntent"
	IntentResetHelmet     = "ResetHelmetIntent"
	IntentUpdateNickname  = "UpdateNicknameIntent"

	IntentHelp     = "AMAZON.HelpIntent"
	IntentCancel   = "AMAZON.CancelIntent"
	IntentStop     = "AMAZON.StopIntent"
	IntentFallback = "AMAZON.FallbackIntent"
)

const (
	speechLaunch   = "Smart Hard Hat online. You can ask for helmet status, report impacts, update nickname or clear helmet data."
	speechHelp     = "You can ask about helmet status, report an impact, turn the headlamp on or off, or reset the helmet data."
	speechGoodbye  = "Goodbye. Stay safe."
	speechFallback = `Sorry, I did not understand that. Try one of these commands: "what is the helmet status?", "report an impact", "turn headlamp on" or "clear data".`
)

// Handlers returns the handler chain of the skill in dispatch order.
func Handlers(c backend.Client) []Handler {
	return []Handler{
		LaunchHandler{},
		&GetHelmetStatusHandler{backend: c},
		&ReportImpactHandler{backend: c},
		ToggleHeadlampHandler{},
		&ResetHelmetHandler{backend: c},
		&UpdateNicknameHandler{backend: c},
		HelpHandler{},
		CancelAndStopHandler{},
		FallbackHandler{},
		SessionEndedHandler{},
		IntentReflectorHandler{},
	}
}

// intentMatcher accepts IntentRequests for any of the listed intents.
type intentMatcher []string

func (m intentMatcher) CanHandle(req *models.Request) bool {
	name := req.IntentName()
	if name == "" {
		return false
	}
	for _, n := range m {
		if n == name {
			return true
		}
	}
	return false
}

type LaunchHandler struct{}

func (LaunchHandler) Name() string { return "Launch" }

func (LaunchHandler) CanHandle(req *models.Request) bool {
	return req.RequestType() == models.TypeLaunchRequest
}

func (LaunchHandler) Handle(context.Context, *models.Request) (Response, error) {
	return speakAndReprompt(speechLaunch, speechLaunch), nil
}

type HelpHandler struct{}

func (HelpHandler) Name() string { return "Help" }

func (HelpHandler) CanHandle(req *models.Request) bool {
	return intentMatcher{IntentHelp}.CanHandle(req)
}

func (HelpHandler) Handle(context.Context, *models.Request) (Response, error) {
	return speakAndReprompt(speechHelp, speechHelp), nil
}

type CancelAndStopHandler struct{}

func (CancelAndStopHandler) Name() string { return "CancelAndStop" }

func (CancelAndStopHandler) CanHandle(req *models.Request) bool {
	return intentMatcher{IntentCancel, IntentStop}.CanHandle(req)
}

func (CancelAndStopHandler) Handle(context.Context, *models.Request) (Response, error) {
	return speak(speechGoodbye), nil
}

type FallbackHandler struct{}

func (FallbackHandler) Name() string { return "Fallback" }

func (FallbackHandler) CanHandle(req *models.Request) bool {
	return intentMatcher{IntentFallback}.CanHandle(req)
}

func (FallbackHandler) Handle(context.Context, *models.Request) (Response, error) {
	return speakAndReprompt(speechFallback, speechFallback), nil
}

// SessionEndedHandler consumes the end-of-session notification. The platform
// ignores any speech sent back for it.
type SessionEndedHandler struct{}

func (SessionEndedHandler) Name() string { return "SessionEnded" }

func (SessionEndedHandler) CanHandle(req *models.Request) bool {
	return req.RequestType() == models.TypeSessionEndedRequest
}

func (SessionEndedHandler) Handle(_ context.Context, req *models.Request) (Response, error) {
	logger.Log.Info("session ended",
		zap.String("session_id", req.Session.SessionID),
		zap.String("reason", req.Request.Reason),
	)
	return Response{}, nil
}

// IntentReflectorHandler repeats the name of any intent that reached it.
// It is meant for debugging the interaction model and must stay last.
type IntentReflectorHandler struct{}

func (IntentReflectorHandler) Name() string { return "IntentReflector" }

func (IntentReflectorHandler) CanHandle(req *models.Request) bool {
	return req.IntentName() != ""
}

func (IntentReflectorHandler) Handle(_ context.Context, req *models.Request) (Response, error) {
	return speak("You just triggered " + req.IntentName()), nil
}
