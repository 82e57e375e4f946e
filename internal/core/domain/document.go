package domain

import "io"

type Document struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	ChunkCount int    `json:"n_chunks"`
}

// FileUpload is a validated file handle handed to the repository client.
// Data is read exactly once during upload.
type FileUpload struct {
	Name string
	Size int64
	Data io.Reader
}
