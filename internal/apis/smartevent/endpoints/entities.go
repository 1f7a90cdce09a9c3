package endpoints

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// GetEntities fetches all records of one entity action for a channel and
// returns the raw body. The caller decodes; this layer only knows bytes.
func (c *Client) GetEntities(ctx context.Context, action, channel string) ([]byte, error) {
	if action == "" {
		return nil, fmt.Errorf("action is empty")
	}
	path := fmt.Sprintf("/openapi/v%d/%s?channel=%s", c.Version, action, url.QueryEscape(channel))

	req, err := c.newReq(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	resp, err := c.Doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024*1024))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ParseAPIError(resp.StatusCode, b)
	}

	return b, nil
}
