package models

const (
	TypeLaunchRequest       = "LaunchRequest"
	TypeIntentRequest       = "IntentRequest"
	TypeSessionEndedRequest = "SessionEndedRequest"

	SpeechPlainText = "PlainText"
	Version         = "1.0"
)

type Request struct {
	Version string         `json:"version"`
	Session Session        `json:"session"`
	Request RequestPayload `json:"request"`
}

type Session struct {
	New       bool   `json:"new"`
	SessionID string `json:"sessionId"`
	User      User   `json:"user"`
}

type User struct {
	UserID string `json:"userId"`
}

type RequestPayload struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Locale    string  `json:"locale"`
	Intent    *Intent `json:"intent,omitempty"`
	// Reason is only set on SessionEndedRequest.
	Reason string `json:"reason,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// RequestType returns the discriminator of the request, empty for a nil request.
func (r *Request) RequestType() string {
	if r == nil {
		return ""
	}
	return r.Request.Type
}

// IntentName returns the intent name of an IntentRequest and "" otherwise.
func (r *Request) IntentName() string {
	if r.RequestType() != TypeIntentRequest || r.Request.Intent == nil {
		return ""
	}
	return r.Request.Intent.Name
}

// SlotValue reports the value of the named slot. A slot that is present but
// was not filled by the user is reported as absent.
func (r *Request) SlotValue(name string) (string, bool) {
	if r.RequestType() != TypeIntentRequest || r.Request.Intent == nil {
		return "", false
	}
	slot, ok := r.Request.Intent.Slots[name]
	if !ok || slot.Value == "" {
		return "", false
	}
	return slot.Value, true
}

type Response struct {
	Version  string          `json:"version"`
	Response ResponsePayload `json:"response"`
}

type ResponsePayload struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}
