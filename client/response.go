package client

import (
	"encoding/json"
	"strings"
)

// Response is the normalized success envelope every call resolves to.
// Data holds the payload with one level of backend wrapping removed.
type Response struct {
	Data    interface{}
	Success bool
	Message string
}

// shapeResponse normalizes a settled HTTP exchange. JSON bodies are parsed,
// anything else passes through as text. Non-2xx statuses become *APIError.
//
// The backend is inconsistent about wrapping payloads in a "data" key, so a
// present, non-nil "data" field is unwrapped and the rest of the body passes
// through untouched. Callers must be able to rely on exactly this shape.
func shapeResponse(status int, contentType string, raw []byte) (*Response, error) {
	payload := parseBody(contentType, raw)

	if status < 200 || status >= 300 {
		return nil, errorFromPayload(status, payload)
	}

	resp := &Response{Data: payload, Success: true}
	if m, ok := payload.(map[string]interface{}); ok {
		if msg, ok := m["message"].(string); ok {
			resp.Message = msg
		}
		if inner, ok := m["data"]; ok && inner != nil {
			resp.Data = inner
		}
	}
	return resp, nil
}

func shapeError(status int, contentType string, raw []byte) error {
	return errorFromPayload(status, parseBody(contentType, raw))
}

func parseBody(contentType string, raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	if strings.Contains(contentType, "application/json") {
		var payload interface{}
		if err := json.Unmarshal(raw, &payload); err == nil {
			return payload
		}
		// Malformed JSON falls through as text rather than erroring.
	}
	return string(raw)
}

// errorFromPayload builds the APIError for a non-2xx response: message from
// the body's "error" field, then "message", then a plain "HTTP <status>".
func errorFromPayload(status int, payload interface{}) *APIError {
	apiErr := &APIError{Status: status, Message: httpStatusMessage(status)}
	m, ok := payload.(map[string]interface{})
	if !ok {
		return apiErr
	}
	if s, ok := m["error"].(string); ok && s != "" {
		apiErr.Message = s
	} else if s, ok := m["message"].(string); ok && s != "" {
		apiErr.Message = s
	}
	if s, ok := m["code"].(string); ok {
		apiErr.Code = s
	}
	if s, ok := m["field"].(string); ok {
		apiErr.Field = s
	}
	return apiErr
}
