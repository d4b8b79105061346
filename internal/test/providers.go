package test

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ward3d/wardprints/internal/domain/model"
)

// MeshProviderStub simulates the external mesh-generation API.
type MeshProviderStub struct {
	CreateTextFn  func(context.Context, string) (string, error)
	CreateImageFn func(context.Context, string) (string, error)
	FetchFn       func(context.Context, string) (*model.GenerationResult, error)

	mu      sync.Mutex
	created int
}

// CreateTextTask opens a text-to-3D task and returns its identifier.
func (s *MeshProviderStub) CreateTextTask(ctx context.Context, prompt string) (string, error) {
	if s.CreateTextFn != nil {
		return s.CreateTextFn(ctx, prompt)
	}
	return s.nextTaskID(), nil
}

// CreateImageTask opens an image-to-3D task and returns its identifier.
func (s *MeshProviderStub) CreateImageTask(ctx context.Context, imageURL string) (string, error) {
	if s.CreateImageFn != nil {
		return s.CreateImageFn(ctx, imageURL)
	}
	return s.nextTaskID(), nil
}

// FetchTask reports task progress.
func (s *MeshProviderStub) FetchTask(ctx context.Context, taskID string) (*model.GenerationResult, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, taskID)
	}
	return &model.GenerationResult{TaskID: taskID, Status: model.GenerationStatusCompleted, Progress: 100}, nil
}

func (s *MeshProviderStub) nextTaskID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
	return fmt.Sprintf("task-%d", s.created)
}

// ImageResolverStub maps stored keys to fetchable URLs and records deletes.
type ImageResolverStub struct {
	ResolveFn func(context.Context, string) (string, error)
	DeleteFn  func(context.Context, string) error
}

// ResolveURL returns a deterministic URL for the key.
func (s ImageResolverStub) ResolveURL(ctx context.Context, key string) (string, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, key)
	}
	return "https://assets.test/" + key, nil
}

// Delete discards a stored image.
func (s ImageResolverStub) Delete(ctx context.Context, key string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, key)
	}
	return nil
}

// AssetStoreStub keeps uploaded images in memory.
type AssetStoreStub struct {
	ImageResolverStub

	mu      sync.Mutex
	Objects map[string][]byte
}

// Upload records the image bytes under a deterministic key.
func (s *AssetStoreStub) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Objects == nil {
		s.Objects = make(map[string][]byte)
	}
	key := "uploads/" + filename
	s.Objects[key] = data
	return key, nil
}

// Delete removes a stored image.
func (s *AssetStoreStub) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	return nil
}
