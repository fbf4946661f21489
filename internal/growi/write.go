package growi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CreateOrReplacePage creates the page at path, or overwrites it if it
// already exists; the wiki has no separate update verb and last write wins.
// On success the outcome carries the page identifier assigned by the wiki.
//
//	transport failure  -> Failure(transport message)
//	status not 2xx     -> Failure("HTTP error! status: <code>, body: <raw>")
//	body has page._id  -> Success(page._id)
//	otherwise          -> Failure(backend error text, or "unknown error" + raw)
func (c *Client) CreateOrReplacePage(ctx context.Context, path, body, token string) Outcome[string] {
	payload, err := json.Marshal(createPayload{
		Path:  path,
		Body:  body,
		Grant: DefaultGrant,
	})
	if err != nil {
		return Fail[string](fmt.Sprintf("failed to encode request: %v", err))
	}

	c.logger.Debug("Writing page",
		"path", path,
		"body_chars", len(body),
		"grant", DefaultGrant)

	raw, status, err := c.doRequest(ctx, apiRequest{
		action: "create_page",
		method: http.MethodPost,
		path:   "/page",
		body:   payload,
		token:  token,
	})
	if err != nil {
		return Fail[string](err.Error())
	}

	// An unparsable body is treated as an empty envelope, not a hard error;
	// the status and raw text still decide the outcome below.
	var envelope createEnvelope
	_ = json.Unmarshal(raw, &envelope)

	if status < 200 || status >= 300 {
		return Fail[string](fmt.Sprintf("HTTP error! status: %d, body: %s", status, string(raw)))
	}

	if envelope.Page != nil && envelope.Page.ID != "" {
		// The written page and the listing are both stale now
		c.cache.DeletePrefix("page:")
		c.cache.Delete("pages:list")
		return Ok(envelope.Page.ID)
	}

	if msg := errorText(envelope.Error); msg != "" {
		return Fail[string](msg)
	}
	return Fail[string]("unknown error: " + truncate(string(raw), 500))
}
