package growi

// GetPagesArgs contains parameters for listing pages (none)
type GetPagesArgs struct{}

// GetPageArgs contains parameters for fetching a page by path
type GetPageArgs struct {
	Path string `json:"path" jsonschema:"required" jsonschema_description:"Wiki path of the page, e.g. /user/notes"`
}

// GetPageByIDArgs contains parameters for fetching a page by identifier
type GetPageByIDArgs struct {
	ID string `json:"id" jsonschema:"required" jsonschema_description:"Identifier of the page"`
}

// CreatePageArgs contains parameters for creating a page
type CreatePageArgs struct {
	Path string `json:"path" jsonschema:"required" jsonschema_description:"Wiki path for the new page, e.g. /user/notes"`
	Body string `json:"body" jsonschema:"required" jsonschema_description:"Markdown body of the page"`
}

// EditPageArgs contains parameters for overwriting a page
type EditPageArgs struct {
	Path string `json:"path" jsonschema:"required" jsonschema_description:"Wiki path of the page to overwrite"`
	Body string `json:"body" jsonschema:"required" jsonschema_description:"New markdown body; replaces the current content"`
}

// Reply is the uniform text reply rendered for every tool call.
// It always carries exactly one text item, for successes and recovered
// failures alike.
type Reply struct {
	Text string `json:"text"`
}
