// Package pkgerror defines the error values shared by handlers and use cases.
//
// Sentinels such as ErrNotFound are matched with errors.Is. The structured
// Error type carries a caller-facing message, a Type and a Code; the router
// maps the Code to an HTTP status and keeps the wrapped cause for logs only.
package pkgerror
