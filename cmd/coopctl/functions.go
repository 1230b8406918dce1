package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"transitcoop/internal/fnclient"
)

const functionsPath = "/v1/functions/"

func functionURL(host, name string) string {
	return strings.TrimRight(host, "/") + functionsPath + name
}

// callFunction posts body to a function endpoint and decodes the reply into
// out. Non-2xx replies come back as errors carrying the endpoint's message.
func callFunction(ctx context.Context, opts *rootOptions, name string, body, out any) error {
	raw, err := fnclient.Post(ctx, nil, functionURL(opts.host, name), opts.serviceKey, body)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	return nil
}
