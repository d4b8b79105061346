package meshy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/ward3d/wardprints/internal/domain/model"
)

// ErrTaskNotFound indicates the provider doesn't know the task.
var ErrTaskNotFound = errors.New("generation task not found")

// TooManyRequestsError represents rate limiting signal from the mesh provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations against the mesh-generation provider.
type Client interface {
	CreateTextTask(ctx context.Context, prompt string) (string, error)
	CreateImageTask(ctx context.Context, imageURL string) (string, error)
	FetchTask(ctx context.Context, taskID string) (*model.GenerationResult, error)
}

// HTTPClient implements Client via the provider's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// createResponse mirrors the task-creation payload from the provider.
type createResponse struct {
	Result string `json:"result"`
}

// taskResponse mirrors the task-status payload from the provider.
type taskResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
	ModelURLs struct {
		GLB  string `json:"glb"`
		USDZ string `json:"usdz"`
		FBX  string `json:"fbx"`
		OBJ  string `json:"obj"`
	} `json:"model_urls"`
}

// NewHTTPClient creates a provider client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mesh provider url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mesh provider url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// CreateTextTask opens a text-to-3D generation task and returns its id.
func (c *HTTPClient) CreateTextTask(ctx context.Context, prompt string) (string, error) {
	return c.createTask(ctx, "/v2/text-to-3d", map[string]string{"prompt": prompt})
}

// CreateImageTask opens an image-to-3D generation task and returns its id.
func (c *HTTPClient) CreateImageTask(ctx context.Context, imageURL string) (string, error) {
	return c.createTask(ctx, "/openapi/v1/image-to-3d", map[string]string{"image_url": imageURL})
}

func (c *HTTPClient) createTask(ctx context.Context, endpoint string, payload map[string]string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.decorate(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusCreated:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data createResponse
		if err := json.Unmarshal(raw, &data); err != nil {
			return "", err
		}
		if data.Result == "" {
			return "", fmt.Errorf("mesh provider returned empty task id")
		}
		return data.Result, nil
	case http.StatusTooManyRequests:
		return "", TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("mesh task creation failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return "", fmt.Errorf("mesh provider error: %s", resp.Status)
	}
}

// FetchTask queries the provider for a task's current state.
func (c *HTTPClient) FetchTask(ctx context.Context, taskID string) (*model.GenerationResult, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, "/v2/tasks/", taskID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data taskResponse
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
		return &model.GenerationResult{
			TaskID:   data.ID,
			Status:   mapStatus(data.Status),
			Progress: data.Progress,
			ModelURLs: model.ModelURLs{
				GLB:  data.ModelURLs.GLB,
				USDZ: data.ModelURLs.USDZ,
				FBX:  data.ModelURLs.FBX,
				OBJ:  data.ModelURLs.OBJ,
			},
		}, nil
	case http.StatusNotFound, http.StatusNoContent:
		return nil, ErrTaskNotFound
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("mesh task fetch failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, fmt.Errorf("mesh provider error: %s", resp.Status)
	}
}

func (c *HTTPClient) decorate(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// mapStatus translates provider status literals to the domain enum. Unknown
// literals stay processing so the worker keeps polling.
func mapStatus(s string) model.GenerationStatus {
	switch s {
	case "PENDING":
		return model.GenerationStatusPending
	case "IN_PROGRESS":
		return model.GenerationStatusProcessing
	case "SUCCEEDED":
		return model.GenerationStatusCompleted
	case "FAILED", "EXPIRED":
		return model.GenerationStatusFailed
	default:
		return model.GenerationStatusProcessing
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
