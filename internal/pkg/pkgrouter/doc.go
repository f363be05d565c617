// Package pkgrouter wraps httprouter with the middleware and response
// encoding shared by every endpoint.
//
// Handlers return a payload or an error. Payloads are wrapped in a JSON
// envelope unless they are Raw, which is written as-is (charts, blobs).
// Errors are mapped through pkgerror. Upload bodies are never logged.
package pkgrouter
