package growi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/olgasafonova/growi-mcp-server/metrics"
)

// ListPages retrieves the paths of all pages in the wiki.
//
// Every failure mode (transport, non-2xx status, malformed body) surfaces
// as a Failure outcome with a message; an empty Success list means the wiki
// really has no pages, not that the call failed.
func (c *Client) ListPages(ctx context.Context, token string) Outcome[[]string] {
	const cacheKey = "pages:list"
	if cached, ok := c.cache.Get(cacheKey); ok {
		metrics.RecordCacheAccess(true)
		return Ok(cached.([]string))
	}
	metrics.RecordCacheAccess(false)

	result, _, err := c.dedup.Do(ctx, cacheKey, func() (interface{}, error) {
		return c.fetchPageList(ctx, token), nil
	})
	if err != nil {
		return Fail[[]string](err.Error())
	}

	out := result.(Outcome[[]string])
	if out.OK() {
		c.cache.Set(cacheKey, out.Value(), DefaultCacheTTL)
		metrics.SetCacheSize(c.cache.Size())
	}
	return out
}

func (c *Client) fetchPageList(ctx context.Context, token string) Outcome[[]string] {
	body, status, err := c.doRequest(ctx, apiRequest{
		action: "list_pages",
		method: http.MethodGet,
		path:   "/pages/list",
		token:  token,
	})
	if err != nil {
		return Fail[[]string](err.Error())
	}
	if status < 200 || status >= 300 {
		return Fail[[]string](fmt.Sprintf("HTTP error! status: %d", status))
	}

	var envelope pageListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Fail[[]string](fmt.Sprintf("failed to parse response: %v", err))
	}
	if envelope.Pages == nil {
		return Fail[[]string]("page list could not be retrieved")
	}

	// Lenient mapping: a record without a path becomes an empty string
	paths := make([]string, 0, len(envelope.Pages))
	for _, page := range envelope.Pages {
		paths = append(paths, page.Path)
	}
	return Ok(paths)
}

// GetPageByPath retrieves the body of the page at path.
func (c *Client) GetPageByPath(ctx context.Context, path, token string) Outcome[string] {
	query := url.Values{}
	query.Set("path", path)
	return c.getPage(ctx, "get_page", "page:path:"+path, query, token)
}

// GetPageByID retrieves the body of the page with the given identifier.
func (c *Client) GetPageByID(ctx context.Context, id, token string) Outcome[string] {
	query := url.Values{}
	query.Set("pageId", id)
	return c.getPage(ctx, "get_page_by_id", "page:id:"+id, query, token)
}

// getPage performs the shared GET /page exchange and classifies the
// response:
//
//	transport failure          -> Failure(transport message)
//	status not 2xx             -> Failure("HTTP error! status: <code>")
//	body has ok:false          -> Failure(backend error text, or generic)
//	body has no page           -> Failure("page does not exist")
//	revision body not a string -> Failure("body could not be retrieved")
//	otherwise                  -> Success(revision body)
func (c *Client) getPage(ctx context.Context, action, cacheKey string, query url.Values, token string) Outcome[string] {
	if cached, ok := c.cache.Get(cacheKey); ok {
		metrics.RecordCacheAccess(true)
		return Ok(cached.(string))
	}
	metrics.RecordCacheAccess(false)

	result, _, err := c.dedup.Do(ctx, cacheKey, func() (interface{}, error) {
		return c.fetchPage(ctx, action, query, token), nil
	})
	if err != nil {
		return Fail[string](err.Error())
	}

	out := result.(Outcome[string])
	if out.OK() {
		c.cache.Set(cacheKey, out.Value(), DefaultCacheTTL)
		metrics.SetCacheSize(c.cache.Size())
	}
	return out
}

func (c *Client) fetchPage(ctx context.Context, action string, query url.Values, token string) Outcome[string] {
	body, status, err := c.doRequest(ctx, apiRequest{
		action: action,
		method: http.MethodGet,
		path:   "/page",
		query:  query,
		token:  token,
	})
	if err != nil {
		return Fail[string](err.Error())
	}
	if status < 200 || status >= 300 {
		return Fail[string](fmt.Sprintf("HTTP error! status: %d", status))
	}

	var envelope pageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Fail[string](fmt.Sprintf("failed to parse response: %v", err))
	}

	if envelope.OK != nil && !*envelope.OK {
		if msg := errorText(envelope.Error); msg != "" {
			return Fail[string](msg)
		}
		return Fail[string]("the wiki reported an error")
	}

	if isJSONNull(envelope.Page) {
		return Fail[string]("page does not exist")
	}

	var page pageRecord
	if err := json.Unmarshal(envelope.Page, &page); err != nil {
		return Fail[string]("body could not be retrieved")
	}

	// A null body unmarshals into a string without error, so check it first
	if isJSONNull(page.Revision.Body) {
		return Fail[string]("body could not be retrieved")
	}
	var text string
	if err := json.Unmarshal(page.Revision.Body, &text); err != nil {
		return Fail[string]("body could not be retrieved")
	}
	return Ok(text)
}
