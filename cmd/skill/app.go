package main

import (
	"bitbucket.org/sotavant/hardhat-skill/internal/logger"
	"bitbucket.org/sotavant/hardhat-skill/internal/models"
	"bitbucket.org/sotavant/hardhat-skill/internal/skill"
	"encoding/json"
	"go.uber.org/zap"
	"net/http"
)

type app struct {
	skill *skill.Skill
}

func newApp(s *skill.Skill) *app {
	return &app{skill: s}
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		logger.Log.Debug("got request with bad method", zap.String("method", r.Method))

		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	logger.Log.Debug("decoding request")
	var req models.Request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	logger.Log.Debug("dispatching request",
		zap.String("type", req.RequestType()),
		zap.String("intent", req.IntentName()),
	)
	resp := a.skill.Dispatch(ctx, &req).Envelope()

	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
		return
	}
	logger.Log.Debug("sending HTTP 200 response")
}
