package domain

import "time"

// Image records metadata for an uploaded walk image. The bytes live in the
// configured storage backend; only the URL and descriptive fields are kept.
type Image struct {
	ID              string
	FileName        string
	FileDescription string
	FileExtension   string
	SizeBytes       int64
	URL             string
	CreatedAt       time.Time
}
