package growi

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Wire types for the Growi v3 API. Responses are decoded leniently:
// json.RawMessage is used wherever the decision tables need to distinguish
// "field absent", "field null", and "field has the wrong type".

// pageListEnvelope is the response of GET /pages/list.
// Pages stays nil when the field is absent, and becomes an empty non-nil
// slice for an empty JSON array, which is how the two cases are told apart.
type pageListEnvelope struct {
	Pages []pageListEntry `json:"pages"`
}

// pageListEntry is one record in the page listing. Only the path is used;
// a record without a path maps to an empty string rather than an error.
type pageListEntry struct {
	Path string `json:"path"`
}

// pageEnvelope is the response of GET /page.
type pageEnvelope struct {
	OK    *bool           `json:"ok"`
	Page  json.RawMessage `json:"page"`
	Error json.RawMessage `json:"error"`
}

// pageRecord is the subset of a page object needed to extract the body.
// Revision.Body stays raw so a non-string body is detected, not coerced.
type pageRecord struct {
	Revision struct {
		Body json.RawMessage `json:"body"`
	} `json:"revision"`
}

// createEnvelope is the response of POST /page.
type createEnvelope struct {
	Page *struct {
		ID string `json:"_id"`
	} `json:"page"`
	Error json.RawMessage `json:"error"`
}

// createPayload is the request body of POST /page.
type createPayload struct {
	Path  string `json:"path"`
	Body  string `json:"body"`
	Grant int    `json:"grant"`
}

// isJSONNull reports whether raw is absent or the JSON literal null.
func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// errorText extracts a human-readable message from the API's error field.
// Growi reports errors as a plain string, an object with a message, or an
// array of such objects; all three shapes are flattened to one string.
// Returns "" when no message could be extracted.
func errorText(raw json.RawMessage) string {
	if isJSONNull(raw) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}

	var list []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		var msgs []string
		for _, e := range list {
			if e.Message != "" {
				msgs = append(msgs, e.Message)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	// Fall back to the raw JSON so diagnostic detail is not discarded
	return string(bytes.TrimSpace(raw))
}
