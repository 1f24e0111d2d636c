package tools

import (
	"encoding/json"

	"github.com/JaimeStill/porcus-tools/internal/relay"
)

// Envelope is the uniform result of every operation. It always carries
// "success"; relayed calls also carry the remote "status".
type Envelope map[string]any

// Success reports the envelope's success flag.
func (e Envelope) Success() bool {
	ok, _ := e["success"].(bool)
	return ok
}

// Status returns the remote status, or 0 when none was recorded.
func (e Envelope) Status() int {
	s, _ := e["status"].(int)
	return s
}

// ErrorEnvelope renders err as a failure envelope with kind and retryable.
// Remote failures carry the remote status and raw body as details.
func ErrorEnvelope(err error) Envelope {
	env := Envelope{
		"success":   false,
		"error":     err.Error(),
		"kind":      string(KindOf(err)),
		"retryable": Retryable(err),
	}

	if se, ok := relay.AsStatus(err); ok {
		env["status"] = se.Status
		env["details"] = se.Body
	}

	return env
}

func succeeded(resp *relay.Response) Envelope {
	return Envelope{
		"success": true,
		"status":  resp.Status,
	}
}

// decodeBody returns the JSON value of a response, or its text when the
// body is not JSON.
func decodeBody(resp *relay.Response) any {
	var v any
	if err := json.Unmarshal(resp.Body, &v); err == nil {
		return v
	}
	return string(resp.Body)
}

// pick returns the first present key of a decoded JSON object.
func pick(v any, keys ...string) any {
	obj, isObj := v.(map[string]any)
	if !isObj {
		return nil
	}
	for _, k := range keys {
		if val, found := obj[k]; found {
			return val
		}
	}
	return nil
}
