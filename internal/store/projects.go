package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sitegen_server/internal/types"
)

const timeLayout = time.RFC3339Nano

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

// CreateProject inserts a new project; zero timestamps are set to now.
func (s *Store) CreateProject(ctx context.Context, p *types.Project) error {
	return createProject(ctx, s.db, p)
}

func createProject(ctx context.Context, q querier, p *types.Project) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	if p.Name == "" {
		p.Name = "Untitled Project"
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO projects (id, owner_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Name, formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting project %s: %w", p.ID, err)
	}
	return nil
}

// GetProject returns types.ErrProjectNotFound when no project has that id.
func (s *Store) GetProject(ctx context.Context, projectID string) (*types.Project, error) {
	var p types.Project
	var created, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, created_at, updated_at FROM projects WHERE id = ?`, projectID,
	).Scan(&p.ID, &p.OwnerID, &p.Name, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying project %s: %w", projectID, err)
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return &p, nil
}

// ListProjects returns the owner's projects, most recently updated first.
func (s *Store) ListProjects(ctx context.Context, ownerID string) ([]types.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, name, created_at, updated_at FROM projects
		 WHERE owner_id = ? ORDER BY updated_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []types.Project
	for rows.Next() {
		var p types.Project
		var created, updated string
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.CreatedAt = parseTime(created)
		p.UpdatedAt = parseTime(updated)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// RenameProject changes a project's display name.
func (s *Store) RenameProject(ctx context.Context, projectID, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, updated_at = ? WHERE id = ?`,
		name, formatTime(time.Now()), projectID)
	if err != nil {
		return fmt.Errorf("renaming project %s: %w", projectID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrProjectNotFound
	}
	return nil
}

func touchProject(ctx context.Context, q querier, projectID string) error {
	_, err := q.ExecContext(ctx, `UPDATE projects SET updated_at = ? WHERE id = ?`, formatTime(time.Now()), projectID)
	return err
}
