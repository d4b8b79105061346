package dto

import "time"

// StartGenerationRequest opens a text-to-3D or image-to-3D task. Exactly one
// of Prompt and ImageKey must be set.
type StartGenerationRequest struct {
	Name     string `json:"name"`
	Prompt   string `json:"prompt,omitempty"`
	ImageKey string `json:"image_key,omitempty"`
}

// GenerationResponse is the polling view of a generation task.
type GenerationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	ModelID   *string   `json:"model_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadResponse returns the stored object key for an uploaded source image.
type UploadResponse struct {
	Key string `json:"key"`
}
