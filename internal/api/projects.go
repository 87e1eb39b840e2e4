package api

import (
	"log"
	"mime"
	"net/http"
	"strings"

	"sitegen_server/internal/export"
	"sitegen_server/internal/sitegen"
	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"

	"github.com/gin-gonic/gin"
)

type FileEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type RenameProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// ownedProject loads the :id project and checks it belongs to the caller.
// It writes the error response itself and returns nil on failure.
func (h *APIHandler) ownedProject(c *gin.Context) *types.Project {
	project, err := h.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load project")
		return nil
	}
	if project.OwnerID != ownerID(c) {
		respondError(c, sitegen.ErrForbidden, "")
		return nil
	}
	return project
}

// GET /api/projects
func (h *APIHandler) ListProjects(c *gin.Context) {
	projects, err := h.store.ListProjects(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err, "Failed to load projects")
		return
	}
	if projects == nil {
		projects = []types.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GET /api/projects/:id
func (h *APIHandler) GetProject(c *gin.Context) {
	project := h.ownedProject(c)
	if project == nil {
		return
	}
	ctx := c.Request.Context()

	files, err := h.store.ListFiles(ctx, project.ID)
	if err != nil {
		respondError(c, err, "Failed to load project")
		return
	}
	history, err := h.store.ListChatHistory(ctx, project.ID)
	if err != nil {
		respondError(c, err, "Failed to load project")
		return
	}
	if history == nil {
		history = []types.ChatRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"project": project,
		"files":   fileEntries(files),
		"history": history,
	})
}

// PATCH /api/projects/:id
func (h *APIHandler) RenameProject(c *gin.Context) {
	var req RenameProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
		return
	}
	project := h.ownedProject(c)
	if project == nil {
		return
	}

	name := strings.TrimSpace(req.Name)
	if err := h.store.RenameProject(c.Request.Context(), project.ID, name); err != nil {
		respondError(c, err, "Failed to rename project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "name": name})
}

// GET /api/projects/:id/files
func (h *APIHandler) ListFiles(c *gin.Context) {
	project := h.ownedProject(c)
	if project == nil {
		return
	}
	files, err := h.store.ListFiles(c.Request.Context(), project.ID)
	if err != nil {
		respondError(c, err, "Failed to list files")
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": fileEntries(files)})
}

// GET /api/projects/:id/file?filename=
func (h *APIHandler) ReadFile(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename is required"})
		return
	}
	project := h.ownedProject(c)
	if project == nil {
		return
	}
	f, err := h.store.GetFile(c.Request.Context(), project.ID, filename)
	if err != nil {
		respondError(c, err, "Failed to read file")
		return
	}
	// Binary files have no editable text.
	c.JSON(http.StatusOK, gin.H{"content": f.Content})
}

// POST /api/projects/:id/file (form: filename, content | file)
func (h *APIHandler) SaveFile(c *gin.Context) {
	project := h.ownedProject(c)
	if project == nil {
		return
	}
	filename := c.PostForm("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename is required"})
		return
	}
	if !utils.AllowedFile(filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	record := types.NewTextFile(filename, c.PostForm("content"), utils.DetermineFileType(filename))
	if fh, err := c.FormFile("file"); err == nil {
		data, err := readFormFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload"})
			return
		}
		record.SetBinary(data)
	}

	if err := h.store.PutFile(c.Request.Context(), project.ID, record); err != nil {
		respondError(c, err, "Failed to save file")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File saved successfully"})
}

// DELETE /api/projects/:id/file?filename=
func (h *APIHandler) DeleteFile(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename is required"})
		return
	}
	project := h.ownedProject(c)
	if project == nil {
		return
	}
	if err := h.store.DeleteFile(c.Request.Context(), project.ID, filename); err != nil {
		respondError(c, err, "Failed to delete file")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// POST /api/projects/:id/images (multipart: images)
func (h *APIHandler) UploadImages(c *gin.Context) {
	project := h.ownedProject(c)
	if project == nil {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	uploads, err := readUploads(form.File["images"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload"})
		return
	}

	accepted := sitegen.AcceptUploads(uploads, h.uploadLimit)
	names := make([]string, 0, len(accepted))
	for _, f := range accepted {
		if err := h.store.PutFile(c.Request.Context(), project.ID, f); err != nil {
			respondError(c, err, "Failed to save image")
			return
		}
		names = append(names, f.Filename)
	}
	log.Printf("Stored %d of %d uploaded images for project %s", len(names), len(uploads), project.ID)
	c.JSON(http.StatusOK, gin.H{"uploaded": names})
}

// GET /api/projects/:id/download
func (h *APIHandler) DownloadProject(c *gin.Context) {
	project := h.ownedProject(c)
	if project == nil {
		return
	}
	files, err := h.store.ListFiles(c.Request.Context(), project.ID)
	if err != nil {
		respondError(c, err, "Failed to create zip file")
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No files found in project"})
		return
	}

	if err := export.CheckNames(files); err != nil {
		log.Printf("ERROR: project %s cannot be archived: %v", project.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create zip file"})
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": utils.ProjectNameFromPrompt(project.Name) + ".zip",
	}))
	c.Status(http.StatusOK)
	if err := export.WriteZip(c.Writer, files); err != nil {
		log.Printf("ERROR: writing zip for project %s: %v", project.ID, err)
	}
}

func fileEntries(files []types.FileRecord) []FileEntry {
	entries := make([]FileEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, FileEntry{Name: f.Filename, Path: f.Filename})
	}
	return entries
}
