package kite

import (
	"encoding/json"
	"net/http"
)

// envelope is the wire shape of every API response. Successful responses
// carry the payload in data; error responses carry message and error_type
// instead.
type envelope struct {
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	ErrorType string          `json:"error_type"`
}

// parseResponse turns a raw HTTP status and body into the data payload or a
// classified error. A 2xx status with an error envelope inside is still an
// error; some endpoints report failures that way.
func parseResponse(statusCode int, body []byte) (json.RawMessage, *APIError) {
	if statusCode < 200 || statusCode > 299 {
		return nil, Classify(statusCode, body)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &APIError{
			Type:       ExceptionData,
			StatusCode: statusCode,
			Message:    "malformed response envelope: " + err.Error(),
			Retryable:  true,
			Cause:      err,
		}
	}
	if env.Status == "error" || env.ErrorType != "" {
		return nil, Classify(statusCode, body)
	}
	return env.Data, nil
}

// decodeData unmarshals a payload into out, wrapping decode failures as
// data errors so callers see the same taxonomy everywhere.
func decodeData(payload json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &APIError{
			Type:       ExceptionData,
			StatusCode: http.StatusOK,
			Message:    "decoding response payload: " + err.Error(),
			Retryable:  false,
			Cause:      err,
		}
	}
	return nil
}
