package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"
)

// ListFiles returns every file of a project ordered by filename.
func (s *Store) ListFiles(ctx context.Context, projectID string) ([]types.FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT filename, file_type, content, content_binary, updated_at
		 FROM project_files WHERE project_id = ? ORDER BY filename`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing files for project %s: %w", projectID, err)
	}
	defer rows.Close()

	var files []types.FileRecord
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

// GetFile returns types.ErrFileNotFound when the project has no such file.
func (s *Store) GetFile(ctx context.Context, projectID, filename string) (*types.FileRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT filename, file_type, content, content_binary, updated_at
		 FROM project_files WHERE project_id = ? AND filename = ?`, projectID, filename)
	f, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrFileNotFound
	}
	return f, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(row scanner) (*types.FileRecord, error) {
	var (
		f       types.FileRecord
		content sql.NullString
		binary  []byte
		updated string
	)
	if err := row.Scan(&f.Filename, &f.FileType, &content, &binary, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning file: %w", err)
	}
	if content.Valid {
		f.SetText(content.String)
	} else {
		f.SetBinary(binary)
	}
	f.UpdatedAt = parseTime(updated)
	return &f, nil
}

// PutFile inserts or replaces a file by filename. Writing text clears any
// binary content and vice versa.
func (s *Store) PutFile(ctx context.Context, projectID string, f types.FileRecord) error {
	return putFile(ctx, s.db, projectID, f)
}

func putFile(ctx context.Context, q querier, projectID string, f types.FileRecord) error {
	if f.FileType == "" {
		f.FileType = utils.DetermineFileType(f.Filename)
	}
	// Exactly one column is non-NULL; an untyped nil binds as NULL.
	var content, binary any
	if f.IsBinary() {
		binary = f.ContentBinary
	} else {
		content = f.Content
	}
	now := formatTime(time.Now())
	_, err := q.ExecContext(ctx,
		`INSERT INTO project_files (project_id, filename, content, content_binary, file_type, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(project_id, filename) DO UPDATE SET
		     content = excluded.content,
		     content_binary = excluded.content_binary,
		     file_type = excluded.file_type,
		     updated_at = excluded.updated_at`,
		projectID, f.Filename, content, binary, f.FileType, now, now)
	if err != nil {
		return fmt.Errorf("writing file %s: %w", f.Filename, err)
	}
	return nil
}

// DeleteFile removes a file; types.ErrFileNotFound if it did not exist.
func (s *Store) DeleteFile(ctx context.Context, projectID, filename string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM project_files WHERE project_id = ? AND filename = ?`, projectID, filename)
	if err != nil {
		return fmt.Errorf("deleting file %s: %w", filename, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrFileNotFound
	}
	return nil
}
