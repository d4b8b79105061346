package model

import "time"

// GenerationStatus describes mesh-generation task status reported by the external provider.
type GenerationStatus string

const (
	GenerationStatusPending    GenerationStatus = "pending"
	GenerationStatusProcessing GenerationStatus = "processing"
	GenerationStatusCompleted  GenerationStatus = "completed"
	GenerationStatusFailed     GenerationStatus = "failed"
)

// Resolved reports whether the task reached a final state.
func (s GenerationStatus) Resolved() bool {
	return s == GenerationStatusCompleted || s == GenerationStatusFailed
}

// Generation tracks one external mesh-generation task from submission until
// the background worker resolves it into a PrintModel.
type Generation struct {
	ID         string
	CustomerID int64
	Name       string
	SourceKind SourceKind
	Prompt     string
	ImageKey   string
	Status     GenerationStatus
	Progress   int
	ModelID    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GenerationResult is the completed payload fetched from the provider.
type GenerationResult struct {
	TaskID    string
	Status    GenerationStatus
	Progress  int
	ModelURLs ModelURLs
}
