package tools

// AllTools contains all tool specifications for the Growi MCP server.
// Tool names and required fields are part of the external contract and
// must not change between releases.
// Descriptions follow a structured format for LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// READ TOOLS
	// ==========================================================================
	{
		Name:     "get_pages",
		Method:   "GetPages",
		Title:    "List Pages",
		Category: "read",
		Description: `List every page path in the wiki.

USE WHEN: User asks "what pages exist", "show me the wiki structure", or you need a path for another tool.

NOT FOR: Reading page content (use get_page instead).

PARAMETERS: none.

RETURNS: A header line followed by one page path per line.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_page",
		Method:   "GetPage",
		Title:    "Get Page",
		Category: "read",
		Description: `Fetch the body of a wiki page by its path.

USE WHEN: User asks for the content of a specific page and you know its path (e.g. "/user/notes").

NOT FOR: Looking up a page by identifier (use get_page_by_id instead).

PARAMETERS:
- path: Wiki path of the page (required)

RETURNS: The raw markdown body of the page.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_page_by_id",
		Method:   "GetPageByID",
		Title:    "Get Page by ID",
		Category: "read",
		Description: `Fetch the body of a wiki page by its identifier.

USE WHEN: You have a page ID from a previous create_page or edit_page call.

NOT FOR: Looking up a page by its path (use get_page instead).

PARAMETERS:
- id: Identifier of the page (required)

RETURNS: The raw markdown body of the page.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WRITE TOOLS
	// ==========================================================================
	{
		Name:     "create_page",
		Method:   "CreatePage",
		Title:    "Create Page",
		Category: "write",
		Description: `Create a wiki page at the given path. WARNING: if a page already exists at that path its content is overwritten; the wiki keeps no conflict detection.

USE WHEN: User asks to create a new page or save new content to the wiki.

NOT FOR: Reading pages (use get_page).

PARAMETERS:
- path: Wiki path for the page (required)
- body: Markdown body (required)

RETURNS: Confirmation including the identifier of the written page.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:     "edit_page",
		Method:   "EditPage",
		Title:    "Edit Page",
		Category: "write",
		Description: `Replace the body of a wiki page. WARNING: the previous content is overwritten entirely; last write wins. Leave at least one second between writes to the same page.

USE WHEN: User asks to update or rewrite an existing page.

NOT FOR: Creating a page at a new path (use create_page, though both share overwrite semantics).

PARAMETERS:
- path: Wiki path of the page (required)
- body: New markdown body (required)

RETURNS: Confirmation including the identifier of the written page.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
}
