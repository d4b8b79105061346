package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
	"github.com/ward3d/wardprints/internal/server/http/dto"
)

// maxUploadBytes caps source image uploads at 16 MiB.
const maxUploadBytes = 16 << 20

// GenerationHandler manages model generation and source image uploads.
type GenerationHandler struct {
	facade GenerationFacade
}

// NewGenerationHandler constructs GenerationHandler.
func NewGenerationHandler(facade GenerationFacade) *GenerationHandler {
	return &GenerationHandler{facade: facade}
}

// Start handles POST /api/user/generations.
func (h *GenerationHandler) Start(c *gin.Context) {
	customerID := CurrentCustomerID(c)

	var req dto.StartGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if (req.Prompt == "") == (req.ImageKey == "") {
		c.Status(http.StatusBadRequest)
		return
	}

	var (
		gen *model.Generation
		err error
	)
	if req.Prompt != "" {
		gen, err = h.facade.StartTextGeneration(c.Request.Context(), customerID, req.Name, req.Prompt)
	} else {
		gen, err = h.facade.StartImageGeneration(c.Request.Context(), customerID, req.Name, req.ImageKey)
	}
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPrompt):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusAccepted, toGenerationResponse(*gen))
}

// List handles GET /api/user/generations.
func (h *GenerationHandler) List(c *gin.Context) {
	customerID := CurrentCustomerID(c)
	gens, err := h.facade.Generations(c.Request.Context(), customerID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(gens) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.GenerationResponse, 0, len(gens))
	for _, g := range gens {
		response = append(response, toGenerationResponse(g))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/user/generations/:id.
func (h *GenerationHandler) Get(c *gin.Context) {
	customerID := CurrentCustomerID(c)
	gen, err := h.facade.Generation(c.Request.Context(), customerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toGenerationResponse(*gen))
}

// Upload handles POST /api/user/uploads. The request body is capped before
// any multipart parsing, so an oversized upload is cut off mid-stream rather
// than spooled to disk first.
func (h *GenerationHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusBadRequest)
		return
	}
	defer file.Close()

	key, err := h.facade.UploadImage(c.Request.Context(), header.Filename,
		header.Header.Get("Content-Type"), file)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{Key: key})
}

func toGenerationResponse(gen model.Generation) dto.GenerationResponse {
	return dto.GenerationResponse{
		ID:        gen.ID,
		Name:      gen.Name,
		Source:    string(gen.SourceKind),
		Status:    string(gen.Status),
		Progress:  gen.Progress,
		ModelID:   gen.ModelID,
		CreatedAt: gen.CreatedAt,
	}
}
