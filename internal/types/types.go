package types

import (
	"errors"
	"time"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrFileNotFound    = errors.New("file not found")
)

// FileRecord is one persisted project file. Content and ContentBinary are
// mutually exclusive: use SetText / SetBinary to change either.
type FileRecord struct {
	Filename      string    `json:"filename"`
	FileType      string    `json:"file_type"` // e.g., "html", "css", "png"
	Content       string    `json:"content"`
	ContentBinary []byte    `json:"-"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// NewTextFile builds a text record with the given file type.
func NewTextFile(filename, content, fileType string) FileRecord {
	f := FileRecord{Filename: filename, FileType: fileType}
	f.SetText(content)
	return f
}

// NewBinaryFile builds a binary record (uploaded images).
func NewBinaryFile(filename string, data []byte, fileType string) FileRecord {
	f := FileRecord{Filename: filename, FileType: fileType}
	f.SetBinary(data)
	return f
}

func (f *FileRecord) SetText(content string) {
	f.Content = content
	f.ContentBinary = nil
}

func (f *FileRecord) SetBinary(data []byte) {
	if data == nil {
		data = []byte{}
	}
	f.ContentBinary = data
	f.Content = ""
}

func (f FileRecord) IsBinary() bool {
	return f.ContentBinary != nil
}

// PageDescriptor is one worklist entry produced by navigation discovery.
type PageDescriptor struct {
	Filename string `json:"filename"` // always ends with ".html"
	Title    string `json:"title"`
	NavText  string `json:"nav_text"`
}

// GenerationOptions are the sampling parameters passed to the text model.
type GenerationOptions struct {
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// Upload is a candidate binary file supplied alongside a generation request.
type Upload struct {
	Filename string
	Data     []byte
}

// GenerationRequest is the transport-independent form of a /generate call.
type GenerationRequest struct {
	Prompt         string
	IsModification bool
	PreviousCode   string
	ProjectID      string
	Uploads        []Upload
}

type Project struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatRecord is one prompt/response exchange stored with a project.
type ChatRecord struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	OwnerID         string    `json:"-"`
	Prompt          string    `json:"prompt"`
	Response        string    `json:"response"`
	GeneratedCode   string    `json:"generated_code"`
	WasModification bool      `json:"was_modification"`
	CreatedFiles    []string  `json:"created_files"`
	CreatedAt       time.Time `json:"timestamp"`
}

// Commit is everything one generation request persists, applied atomically.
type Commit struct {
	Project    Project
	NewProject bool
	Deletes    []string
	Writes     []FileRecord
	Chat       ChatRecord
}
