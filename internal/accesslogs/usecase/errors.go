package usecase

import "errors"

var (
	// ErrUpload marks a blob store write that failed. The attempt is not retried.
	ErrUpload = errors.New("upload failed")

	// ErrFetch marks a failure reading uploaded content back.
	ErrFetch = errors.New("fetch failed")

	// ErrDecode marks content whose byte order mark could not be honoured.
	// It is handled exactly like ErrFetch.
	ErrDecode = errors.New("decode failed")
)
