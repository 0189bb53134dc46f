package models

// AttachmentUploadResult reports the outcome of one file in an attachment
// upload batch. A failed file never aborts its siblings.
type AttachmentUploadResult struct {
	FileName string `json:"file_name"`
	Url      string `json:"url"`
	Error    string `json:"error,omitempty"`
}
