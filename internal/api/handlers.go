package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"sitegen_server/internal/sitegen"
	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"

	"github.com/gin-gonic/gin"
)

// ProjectStore is the storage the HTTP layer reads and edits directly.
// *store.Store satisfies it.
type ProjectStore interface {
	GetProject(ctx context.Context, projectID string) (*types.Project, error)
	ListProjects(ctx context.Context, ownerID string) ([]types.Project, error)
	RenameProject(ctx context.Context, projectID, name string) error
	ListFiles(ctx context.Context, projectID string) ([]types.FileRecord, error)
	GetFile(ctx context.Context, projectID, filename string) (*types.FileRecord, error)
	PutFile(ctx context.Context, projectID string, f types.FileRecord) error
	DeleteFile(ctx context.Context, projectID, filename string) error
	ListChatHistory(ctx context.Context, projectID string) ([]types.ChatRecord, error)
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	builder     *sitegen.Builder
	store       ProjectStore
	uploadLimit int
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(builder *sitegen.Builder, store ProjectStore, uploadLimit int) *APIHandler {
	if uploadLimit <= 0 {
		uploadLimit = 3
	}
	return &APIHandler{
		builder:     builder,
		store:       store,
		uploadLimit: uploadLimit,
	}
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	Prompt         string `json:"prompt"`
	IsModification bool   `json:"is_modification"`
	PreviousCode   string `json:"previous_code"`
	ProjectID      string `json:"project_id"`
}

type GenerateErrorResponse struct {
	Error string           `json:"error"`
	Site  *sitegen.Outcome `json:"site,omitempty"`
}

const maxUploadBytes = 10 << 20

// --- API Handlers ---

// POST /generate
func (h *APIHandler) GenerateSite(c *gin.Context) {
	req, err := bindGenerationRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	owner := ownerID(c)
	log.Printf("Received generation request from %s (modification=%v)", owner, req.IsModification)

	out, err := h.builder.Generate(c.Request.Context(), owner, req)
	if err != nil {
		if errors.Is(err, sitegen.ErrPersistence) && out != nil {
			// The site was generated; hand it back so the client does not lose it.
			c.JSON(http.StatusInternalServerError, GenerateErrorResponse{Error: "Failed to save generated files", Site: out})
			return
		}
		respondError(c, err, "Failed to generate site")
		return
	}

	c.JSON(http.StatusOK, out)
}

// bindGenerationRequest normalises JSON and multipart bodies into one request.
func bindGenerationRequest(c *gin.Context) (types.GenerationRequest, error) {
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		form, err := c.MultipartForm()
		if err != nil {
			return types.GenerationRequest{}, err
		}
		uploads, err := readUploads(form.File["images"])
		if err != nil {
			return types.GenerationRequest{}, err
		}
		return types.GenerationRequest{
			Prompt:         strings.TrimSpace(c.PostForm("prompt")),
			IsModification: strings.EqualFold(c.PostForm("is_modification"), "true"),
			PreviousCode:   c.PostForm("previous_code"),
			ProjectID:      c.PostForm("project_id"),
			Uploads:        uploads,
		}, nil
	}

	var body GenerateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		return types.GenerationRequest{}, err
	}
	return types.GenerationRequest{
		Prompt:         strings.TrimSpace(body.Prompt),
		IsModification: body.IsModification,
		PreviousCode:   body.PreviousCode,
		ProjectID:      body.ProjectID,
	}, nil
}

func readUploads(headers []*multipart.FileHeader) ([]types.Upload, error) {
	var uploads []types.Upload
	for _, fh := range headers {
		if fh.Filename == "" {
			continue
		}
		data, err := readFormFile(fh)
		if err != nil {
			return nil, fmt.Errorf("reading upload %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, types.Upload{Filename: fh.Filename, Data: data})
	}
	return uploads, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > maxUploadBytes {
		return nil, fmt.Errorf("file larger than %d bytes", maxUploadBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}

// respondError maps domain errors to status codes. Unknown errors are logged
// and answered with fallback so internals never reach the client.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, sitegen.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, sitegen.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case errors.Is(err, types.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	case errors.Is(err, types.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
	default:
		log.Printf("ERROR: %s: %s", fallback, utils.SanitizeError(err, "AI service error"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
