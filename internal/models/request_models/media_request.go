package request_models

// UploadMediaRequest is the multipart form that accompanies the "file" part.
type UploadMediaRequest struct {
	Type      string `form:"type" binding:"required"`
	SessionID string `form:"sessionId" binding:"omitempty,uuid"`
	// Metadata is a JSON object encoded as text.
	Metadata string `form:"metadata"`
}

type ListMediaRequest struct {
	SessionID string `form:"sessionId" binding:"omitempty,uuid"`
	Limit     int    `form:"limit"`
}
