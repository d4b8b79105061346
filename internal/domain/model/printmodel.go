package model

import "time"

// SourceKind tells how a model was generated.
type SourceKind string

const (
	SourceKindText  SourceKind = "text"
	SourceKindImage SourceKind = "image"
)

// ModelURLs holds one download URL per exchangeable mesh format.
type ModelURLs struct {
	GLB  string `json:"glb"`
	USDZ string `json:"usdz"`
	FBX  string `json:"fbx"`
	OBJ  string `json:"obj"`
}

// PrintModel is a generated 3D asset. Immutable once created; regenerating
// produces a new PrintModel rather than mutating an old one.
type PrintModel struct {
	ID         string
	Name       string
	CreatorID  int64
	SourceKind SourceKind
	ModelURLs  ModelURLs
	CreatedAt  time.Time
}
