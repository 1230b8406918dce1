// Package fnclient posts to the /v1/functions endpoints the way both the
// dashboard and coopctl expect.
package fnclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxReply caps how much of a reply body is read.
const MaxReply = 1 << 20

// StatusError is a non-2xx reply. Message is the endpoint's error or message
// field, or the status text when the body carries neither.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Post sends body as JSON (no body when nil) with the service key headers and
// returns the raw 2xx reply.
func Post(ctx context.Context, hc *http.Client, url, serviceKey string, body any) ([]byte, error) {
	if hc == nil {
		hc = http.DefaultClient
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if serviceKey != "" {
		req.Header.Set("apikey", serviceKey)
		req.Header.Set("Authorization", "Bearer "+serviceKey)
	}

	res, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, MaxReply))
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Status: res.StatusCode, Message: replyMessage(raw, res.StatusCode)}
	}
	return raw, nil
}

func replyMessage(raw []byte, status int) string {
	var fe struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &fe)
	switch {
	case fe.Error != "":
		return fe.Error
	case fe.Message != "":
		return fe.Message
	default:
		return http.StatusText(status)
	}
}
