package model

// UploadedFile is what the upload endpoints return per stored file.
type UploadedFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
}
