package growi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olgasafonova/growi-mcp-server/metrics"
)

// MCP tool wrapper methods.
//
// Each wrapper runs the full dispatch sequence for one tool call: resolve
// the bearer token, check required arguments, invoke the API operation,
// and render its Outcome as a text Reply. Every recoverable condition
// (missing token, missing argument, transport failure, backend-reported
// error) becomes a Reply; the returned error is reserved for conditions
// the protocol layer must see, and these wrappers never produce one.

const missingTokenText = `No Growi API token is configured.

Set the GROWI_API_TOKEN environment variable to a Growi API token, or supply
a token with the call. Without a token the server cannot reach the wiki.
Tokens are issued on the wiki under Settings > API settings.`

// GetPagesMCP lists all page paths in the wiki
func (c *Client) GetPagesMCP(ctx context.Context, args GetPagesArgs) (Reply, error) {
	token, ok := c.resolveToken(ctx)
	if !ok {
		return Reply{Text: missingTokenText}, nil
	}

	out := c.ListPages(ctx, token)
	if !out.OK() {
		return failureReply("get_pages", out.Message()), nil
	}

	var sb strings.Builder
	sb.WriteString("Pages in the wiki:")
	for _, path := range out.Value() {
		sb.WriteString("\n")
		sb.WriteString(path)
	}
	return Reply{Text: sb.String()}, nil
}

// GetPageMCP fetches a page body by path
func (c *Client) GetPageMCP(ctx context.Context, args GetPageArgs) (Reply, error) {
	token, ok := c.resolveToken(ctx)
	if !ok {
		return Reply{Text: missingTokenText}, nil
	}
	if args.Path == "" {
		return missingArgsReply("get_page", []string{"path"}, args), nil
	}

	out := c.GetPageByPath(ctx, args.Path, token)
	if !out.OK() {
		return failureReply("get_page", out.Message()), nil
	}
	// Reads return the raw body, not a wrapped message
	return Reply{Text: out.Value()}, nil
}

// GetPageByIDMCP fetches a page body by identifier
func (c *Client) GetPageByIDMCP(ctx context.Context, args GetPageByIDArgs) (Reply, error) {
	token, ok := c.resolveToken(ctx)
	if !ok {
		return Reply{Text: missingTokenText}, nil
	}
	if args.ID == "" {
		return missingArgsReply("get_page_by_id", []string{"id"}, args), nil
	}

	out := c.GetPageByID(ctx, args.ID, token)
	if !out.OK() {
		return failureReply("get_page_by_id", out.Message()), nil
	}
	return Reply{Text: out.Value()}, nil
}

// CreatePageMCP creates (or overwrites) a page
func (c *Client) CreatePageMCP(ctx context.Context, args CreatePageArgs) (Reply, error) {
	return c.writePage(ctx, "create_page", "created", args.Path, args.Body, args)
}

// EditPageMCP overwrites a page; the wiki applies the same write verb as
// create, so both tools share one implementation
func (c *Client) EditPageMCP(ctx context.Context, args EditPageArgs) (Reply, error) {
	return c.writePage(ctx, "edit_page", "edited", args.Path, args.Body, args)
}

func (c *Client) writePage(ctx context.Context, tool, verb, path, body string, args any) (Reply, error) {
	token, ok := c.resolveToken(ctx)
	if !ok {
		return Reply{Text: missingTokenText}, nil
	}

	var missing []string
	if path == "" {
		missing = append(missing, "path")
	}
	if body == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return missingArgsReply(tool, missing, args), nil
	}

	out := c.CreateOrReplacePage(ctx, path, body, token)
	if !out.OK() {
		metrics.EditOperations.WithLabelValues(tool, "error").Inc()
		return failureReply(tool, out.Message()), nil
	}

	metrics.EditOperations.WithLabelValues(tool, "success").Inc()
	return Reply{Text: fmt.Sprintf("Page %s successfully. ID: %s", verb, out.Value())}, nil
}

// failureReply renders a failed outcome in the uniform error shape
func failureReply(tool, message string) Reply {
	if message == "" {
		message = "unknown error"
	}
	return Reply{Text: fmt.Sprintf("%s failed: %s", tool, message)}
}

// missingArgsReply names the absent required fields and echoes the request
// arguments so the caller can see what was actually received.
func missingArgsReply(tool string, missing []string, args any) Reply {
	echo, err := json.Marshal(args)
	if err != nil {
		echo = []byte("{}")
	}
	return Reply{Text: fmt.Sprintf("%s requires the following argument(s): %s. Request arguments: %s",
		tool, strings.Join(missing, ", "), echo)}
}
