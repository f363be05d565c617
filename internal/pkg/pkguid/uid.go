package pkguid

// StringID generates unique string identifiers, such as blob keys and event IDs.
type StringID interface {
	Generate() string
}

// NumberID generates unique numeric identifiers, such as pipeline run IDs.
type NumberID interface {
	Generate() int64
}
