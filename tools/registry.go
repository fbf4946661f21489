// Package tools provides a metadata-driven registry for MCP tool
// definitions. Tool metadata lives in one table (AllTools) that both the
// advertised catalog and the dispatch switch are built from, so the two
// cannot drift apart.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a growi client method with a matching Args type.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "get_page")
	Name string

	// Method is the client method name (e.g., "GetPage")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (read, write)
	Category string

	// ReadOnly indicates the tool doesn't modify wiki state
	ReadOnly bool

	// Destructive indicates the tool can overwrite existing data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ToolsByCategory returns all tool specs in the given category.
func ToolsByCategory(category string) []ToolSpec {
	var specs []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			specs = append(specs, spec)
		}
	}
	return specs
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
