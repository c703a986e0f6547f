package skill

import (
	"bitbucket.org/sotavant/hardhat-skill/internal/backend"
	"bitbucket.org/sotavant/hardhat-skill/internal/logger"
	"bitbucket.org/sotavant/hardhat-skill/internal/models"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"strconv"
	"strings"
)

const (
	SlotState     = "state"
	SlotNickname  = "nickname"
	SlotOwnerName = "owner_name"
)

const (
	speechUnavailable  = "Helmet data is currently unavailable."
	speechUnreachable  = "Unable to contact the helmet backend at this time."
	speechImpactOK     = "Impact has been recorded."
	speechImpactFailed = "Failed to record impact. Please try again later."
	speechResetOK      = "Helmet impact history has been cleared."
	speechResetFailed  = "Failed to clear helmet data. Please try again later."
	speechUpdateOK     = "Helmet information has been updated."
	speechUpdateFailed = "Failed to update helmet info. Please try again later."
	speechNoNickname   = "No nickname or owner name was provided."
	speechNoLightState = "Please tell me whether to turn the helmet light on or off."
)

// Reported by ReportImpactIntent until the skill receives real sensor input.
var manualImpact = backend.ImpactReport{
	Impact:   1,
	Light:    "normal",
	GForce:   2.5,
	LightRaw: 512,
}

type GetHelmetStatusHandler struct {
	backend backend.Client
}

func (h *GetHelmetStatusHandler) Name() string { return "GetHelmetStatus" }

func (h *GetHelmetStatusHandler) CanHandle(req *models.Request) bool {
	return intentMatcher{IntentGetHelmetStatus}.CanHandle(req)
}

func (h *GetHelmetStatusHandler) Handle(ctx context.Context, _ *models.Request) (Response, error) {
	reading, err := h.backend.LatestReading(ctx)
	if err != nil {
		return Response{}, err
	}

	logger.Log.Debug("latest helmet reading", zap.Bool("empty", reading.Empty()))
	return speak(describeReading(reading)), nil
}

func describeReading(r backend.HelmetReading) string {
	if r.Empty() {
		return speechUnavailable
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The latest recorded impact was %s.", impactDescription(r.Impact))
	if r.GForce != nil {
		fmt.Fprintf(&b, " The measured g force was %s.", strconv.FormatFloat(*r.GForce, 'f', -1, 64))
	}
	if r.LightState == backend.LightDark {
		b.WriteString(" Lighting conditions are dark.")
	}
	return b.String()
}

func impactDescription(i backend.Impact) string {
	switch i {
	case backend.ImpactLight:
		return "light"
	case backend.ImpactHard:
		return "hard"
	case backend.ImpactSevere:
		return "severe"
	default:
		return "unknown"
	}
}

type ReportImpactHandler struct {
	backend backend.Client
}

func (h *ReportImpactHandler) Name() string { return "ReportImpact" }

func (h *ReportImpactHandler) CanHandle(req *models.Request) bool {
	return intentMatcher{IntentReportImpact}.CanHandle(req)
}

func (h *ReportImpactHandler) Handle(ctx context.Context, _ *models.Request) (Response, error) {
	res, err := backend.ReportImpact(ctx, h.backend, manualImpact)
	return commandResponse(res, err, speechImpactOK, speechImpactFailed)
}

// ToggleHeadlampHandler only acknowledges the request. The backend has no
// endpoint for the headlamp yet.
type ToggleHeadlampHandler struct{}

func (ToggleHeadlampHandler) Name() string { return "ToggleHeadlamp" }

func (ToggleHeadlampHandler) CanHandle(req *models.Request) bool {
	return intentMatcher{IntentToggleHeadlamp}.CanHandle(req)
}

func (ToggleHeadlampHandler) Handle(_ context.Context, req *models.Request) (Response, error) {
	state, ok := req.SlotValue(SlotState)
	if !ok {
		return speakAndReprompt(speechNoLightState, speechNoLightState), nil
	}
	return speak(fmt.Sprintf("Turning the helmet light %s.", state)), nil
}

type ResetHelmetHandler struct {
	backend backend.Client
}

func (h *ResetHelmetHandler) Name() string { return "ResetHelmet" }

func (h *ResetHelmetHandler) CanHandle(req *models.Request) bool {
	return intentMatcher{IntentResetHelmet}.CanHandle(req)
}

func (h *ResetHelmetHandler) Handle(ctx context.Context, _ *models.Request) (Response, error) {
	res, err := backend.ClearEvents(ctx, h.backend)
	return commandResponse(res, err, speechResetOK, speechResetFailed)
}

type UpdateNicknameHandler struct {
	backend backend.Client
}

func (h *UpdateNicknameHandler) Name() string { return "UpdateNickname" }

func (h *UpdateNicknameHandler) CanHandle(req *models.Request) bool {
	return intentMatcher{IntentUpdateNickname}.CanHandle(req)
}

func (h *UpdateNicknameHandler) Handle(ctx context.Context, req *models.Request) (Response, error) {
	nickname, hasNickname := req.SlotValue(SlotNickname)
	owner, hasOwner := req.SlotValue(SlotOwnerName)
	if !hasNickname && !hasOwner {
		return speak(speechNoNickname), nil
	}

	res, err := backend.UpdateHardhat(ctx, h.backend, backend.HardhatUpdate{
		Nickname:  nickname,
		OwnerName: owner,
	})
	return commandResponse(res, err, speechUpdateOK, speechUpdateFailed)
}

// commandResponse picks the sentence for a write call. Errors other than
// network failures are returned to the dispatcher.
func commandResponse(res backend.Result, err error, success, failure string) (Response, error) {
	if err != nil {
		var netErr *backend.NetworkError
		if !errors.As(err, &netErr) {
			return Response{}, err
		}
		logger.Log.Warn("helmet backend unreachable", zap.Error(err))
		return speak(speechUnreachable), nil
	}

	if res.Failed() {
		logger.Log.Debug("helmet backend rejected command", zap.ByteString("error", res["error"]))
		return speak(failure), nil
	}

	return speak(success), nil
}
