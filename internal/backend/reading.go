package backend

import (
	"bytes"
	"encoding/json"
	"math"
)

type Impact int

const (
	ImpactUnknown Impact = iota - 1
	ImpactNone
	ImpactLight
	ImpactHard
	ImpactSevere
)

const LightDark = "dark"

// HelmetReading is a snapshot of the latest reading kept by the backend.
// The zero value is the empty reading.
type HelmetReading struct {
	Impact     Impact
	GForce     *float64
	LightState string
	LightRaw   *int

	present bool
}

func (r HelmetReading) Empty() bool {
	return !r.present
}

// Result is the decoded JSON object returned by a write call.
type Result map[string]json.RawMessage

func (r Result) Empty() bool {
	return len(r) == 0
}

// Failed reports whether the backend answered with a truthy "error" field.
func (r Result) Failed() bool {
	raw, ok := r["error"]
	return ok && truthy(raw)
}

// ParseReading decodes a body of GET /api/impact/latest. Anything that is not
// a reading, including an error object, yields the empty reading.
func ParseReading(body []byte) HelmetReading {
	return decodeReading(decodeObject(body))
}

// decodeObject returns nil for anything that is not a JSON object.
func decodeObject(body []byte) Result {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil
	}
	return obj
}

func decodeReading(obj Result) HelmetReading {
	if obj.Empty() || obj.Failed() {
		return HelmetReading{}
	}

	reading := HelmetReading{Impact: ImpactUnknown, present: true}

	var impact float64
	if raw, ok := obj["impact"]; ok && json.Unmarshal(raw, &impact) == nil {
		if impact == math.Trunc(impact) && impact >= float64(ImpactNone) && impact <= float64(ImpactSevere) {
			reading.Impact = Impact(impact)
		}
	}

	// A null number stays nil rather than decoding to zero.
	var gForce *float64
	if raw, ok := obj["g_force"]; ok && json.Unmarshal(raw, &gForce) == nil {
		reading.GForce = gForce
	}

	if raw, ok := obj["light_state"]; ok {
		_ = json.Unmarshal(raw, &reading.LightState)
	}

	var lightRaw *int
	if raw, ok := obj["light_raw"]; ok && json.Unmarshal(raw, &lightRaw) == nil {
		reading.LightRaw = lightRaw
	}

	return reading
}

// truthy reports whether an "error" value counts as set. null, false, 0 and ""
// do not.
func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
