package entity

import "time"

// File is a user-selected log file.
type File struct {
	Name string
	Data []byte
}

// UploadedFileRef is the selected file plus where it ended up once stored.
type UploadedFileRef struct {
	File       File
	Key        string
	URL        string
	UploadedAt time.Time
}
