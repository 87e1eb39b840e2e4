package sitegen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest = errors.New("invalid generation request")
	ErrForbidden      = errors.New("project belongs to another user")
	ErrPersistence    = errors.New("saving generated files failed")
)

const defaultUploadLimit = 3

// Store is the subset of the file storage collaborator the builder needs.
type Store interface {
	GetProject(ctx context.Context, projectID string) (*types.Project, error)
	ListFiles(ctx context.Context, projectID string) ([]types.FileRecord, error)
	GetFile(ctx context.Context, projectID, filename string) (*types.FileRecord, error)
	SaveGeneration(ctx context.Context, commit types.Commit) error
}

// Outcome is what a generation request hands back to the caller. It is
// returned even when persisting failed, so the caller can retry the save.
type Outcome struct {
	ProjectID       string    `json:"project_id"`
	ProjectName     string    `json:"project_name"`
	Code            string    `json:"code"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html"`
	CreatedFiles    []string  `json:"created_files"`
	Filename        string    `json:"filename"`
	WasModification bool      `json:"was_modification"`
	Timestamp       time.Time `json:"timestamp"`

	commit types.Commit
}

// Commit returns the storage commit the outcome was built from.
func (o *Outcome) Commit() types.Commit {
	return o.commit
}

// Builder runs generation requests end to end: validate, generate,
// decompose, merge, persist.
type Builder struct {
	pipeline    *Pipeline
	store       Store
	orphans     OrphanPolicy
	uploadLimit int
}

type BuilderOption func(*Builder)

func WithOrphanPolicy(p OrphanPolicy) BuilderOption {
	return func(b *Builder) {
		b.orphans = p
	}
}

func WithUploadLimit(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.uploadLimit = n
		}
	}
}

func NewBuilder(pipeline *Pipeline, store Store, opts ...BuilderOption) *Builder {
	b := &Builder{
		pipeline:    pipeline,
		store:       store,
		orphans:     OrphanDrop,
		uploadLimit: defaultUploadLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Generate handles one /generate request for owner.
func (b *Builder) Generate(ctx context.Context, owner string, req types.GenerationRequest) (*Outcome, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return nil, fmt.Errorf("%w: prompt cannot be empty", ErrInvalidRequest)
	}
	for _, up := range req.Uploads {
		if !utils.AllowedFile(up.Filename) {
			return nil, fmt.Errorf("%w: file type not allowed: %s", ErrInvalidRequest, utils.SecureFilename(up.Filename))
		}
	}
	uploads := AcceptUploads(req.Uploads, b.uploadLimit)

	mode := ModeNewProject
	project := types.Project{
		ID:      uuid.New().String(),
		OwnerID: owner,
		Name:    utils.ProjectNameFromPrompt(req.Prompt),
	}
	var prior []types.FileRecord

	if req.IsModification {
		if req.ProjectID == "" {
			return nil, fmt.Errorf("%w: no active project for modification", ErrInvalidRequest)
		}
		existing, err := b.ownedProject(ctx, owner, req.ProjectID)
		if err != nil {
			return nil, err
		}
		project = *existing
		mode = ModeModifyProject

		prior, err = b.store.ListFiles(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("loading project files: %w", err)
		}
		if req.PreviousCode == "" {
			req.PreviousCode = previousIndex(prior)
		}
	}

	log.Printf("Generating site for project %s (%s)", project.ID, mode)

	result, err := b.pipeline.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	plan := PlanMerge(MergeInput{
		Mode:    mode,
		Prior:   prior,
		Result:  result,
		Uploads: uploads,
		Orphans: b.orphans,
	})

	now := time.Now().UTC()
	description := result.Description
	if description == "" {
		description = "Website generated successfully!"
		if req.IsModification {
			description = "Changes applied successfully!"
		}
	}

	out := &Outcome{
		ProjectID:       project.ID,
		ProjectName:     project.Name,
		Code:            result.Code,
		Description:     description,
		DescriptionHTML: RenderDescription(description),
		CreatedFiles:    plan.Manifest,
		Filename:        IndexFile,
		WasModification: req.IsModification,
		Timestamp:       now,
	}
	out.commit = types.Commit{
		Project:    project,
		NewProject: mode == ModeNewProject,
		Deletes:    plan.Deletes,
		Writes:     plan.Writes,
		Chat: types.ChatRecord{
			ID:              uuid.New().String(),
			ProjectID:       project.ID,
			OwnerID:         owner,
			Prompt:          req.Prompt,
			Response:        description,
			GeneratedCode:   result.Code,
			WasModification: req.IsModification,
			CreatedFiles:    plan.Manifest,
			CreatedAt:       now,
		},
	}

	if err := b.store.SaveGeneration(ctx, out.commit); err != nil {
		log.Printf("ERROR: saving generation for project %s: %v", project.ID, err)
		return out, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	log.Printf("Site generation successful for project %s: %d files", project.ID, len(plan.Manifest))
	return out, nil
}

func (b *Builder) ownedProject(ctx context.Context, owner, projectID string) (*types.Project, error) {
	project, err := b.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != owner {
		return nil, ErrForbidden
	}
	return project, nil
}

func previousIndex(files []types.FileRecord) string {
	for _, f := range files {
		if f.Filename == IndexFile {
			return f.Content
		}
	}
	return ""
}
