package evidence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxEngineResponse caps how much of an engine reply is read.
const maxEngineResponse = 4 << 20

// PostJSON sends in as JSON to url and decodes the 2xx reply into out.
// Failures are StageErrors tagged with stage.
func PostJSON(ctx context.Context, client HTTPDoer, stage, url string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return NewStageError(stage, CategoryInternal, "failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return NewStageError(stage, CategoryInternal, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if IsTimeout(ctx, err) {
			return NewStageError(stage, CategoryTimeout, "request timeout", err)
		}
		return NewStageError(stage, CategoryUnavailable, "failed to execute request", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxEngineResponse))
	if err != nil {
		if IsTimeout(ctx, err) {
			return NewStageError(stage, CategoryTimeout, "response read timeout", err)
		}
		return NewStageError(stage, CategoryBadData, "failed to read response", err)
	}

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable, resp.StatusCode == http.StatusGatewayTimeout:
		return NewStageError(stage, CategoryUnavailable, fmt.Sprintf("engine unavailable: %d", resp.StatusCode), nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return NewStageError(stage, CategoryBadStatus, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return NewStageError(stage, CategoryBadData, "failed to parse response", err)
	}
	return nil
}
