package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// unwrap strips the {success, message, data} envelope. A body is treated as
// an envelope only when it is an object with a boolean success and a data
// member; anything else is returned as is.
func unwrap(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	rawSuccess, hasSuccess := fields["success"]
	rawData, hasData := fields["data"]
	if !hasSuccess || !hasData {
		return trimmed, nil
	}
	var ok bool
	if err := json.Unmarshal(rawSuccess, &ok); err != nil {
		return trimmed, nil
	}
	if !ok {
		var msg string
		_ = json.Unmarshal(fields["message"], &msg)
		return nil, &RequestError{Kind: ErrRequestFailed, Status: http.StatusOK, Message: msg}
	}
	return rawData, nil
}

func decode(body []byte, out any) error {
	payload, err := unwrap(body)
	if err != nil {
		return err
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls a human message out of an error reply body.
func errorMessage(status int, body []byte) string {
	var reply struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &reply) == nil {
		if reply.Message != "" {
			return reply.Message
		}
		if reply.Error != "" {
			return reply.Error
		}
	}
	return http.StatusText(status)
}
