package provisioning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"transitcoop/internal/fnclient"
)

var ErrEndpoint = errors.New("provisioning endpoint reported an error")

// Invoker runs one provisioning pass.
type Invoker interface {
	Invoke(ctx context.Context) (*Response, error)
}

// Client calls the provisioning endpoint over HTTP.
type Client struct {
	url        string
	serviceKey string
	http       *http.Client
}

func NewClient(url, serviceKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, serviceKey: serviceKey, http: httpClient}
}

func (c *Client) Invoke(ctx context.Context) (*Response, error) {
	body, err := fnclient.Post(ctx, c.http, c.url, c.serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("invoke provisioning: %w", err)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode provisioning response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrEndpoint, out.Error)
	}

	return &out, nil
}

// Outcome is what a caller shows after a provisioning run.
type Outcome struct {
	Response     *Response    `json:"response,omitempty"`
	Counts       Counts       `json:"counts"`
	Notification Notification `json:"notification"`
}

// Run invokes and folds the result into an Outcome. The returned error is
// only for logging; the Outcome is always safe to render.
func Run(ctx context.Context, inv Invoker) (Outcome, error) {
	resp, err := inv.Invoke(ctx)
	if err != nil {
		return Outcome{Notification: Failure()}, err
	}
	counts := Derive(*resp)
	return Outcome{
		Response:     resp,
		Counts:       counts,
		Notification: Notify(counts),
	}, nil
}
