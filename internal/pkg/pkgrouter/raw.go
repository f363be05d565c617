package pkgrouter

// Raw is a handler response written as-is instead of the JSON envelope.
type Raw struct {
	ContentType string
	Body        []byte
}
