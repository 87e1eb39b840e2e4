package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"sitegen_server/internal/types"
)

// SaveGeneration applies one generation pass in a single transaction: the
// project (when new), file deletes, file writes and the chat record. Any
// failure rolls back every change.
func (s *Store) SaveGeneration(ctx context.Context, c types.Commit) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("WARN: rollback for project %s failed: %v", c.Project.ID, rbErr)
			}
		}
	}()

	if c.NewProject {
		project := c.Project
		if err = createProject(ctx, tx, &project); err != nil {
			return err
		}
	} else if err = touchProject(ctx, tx, c.Project.ID); err != nil {
		return fmt.Errorf("updating project %s: %w", c.Project.ID, err)
	}

	for _, name := range c.Deletes {
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM project_files WHERE project_id = ? AND filename = ?`, c.Project.ID, name); err != nil {
			return fmt.Errorf("deleting file %s: %w", name, err)
		}
	}

	for _, f := range c.Writes {
		if err = putFile(ctx, tx, c.Project.ID, f); err != nil {
			return err
		}
	}

	if c.Chat.ID != "" {
		if err = insertChat(ctx, tx, c.Chat); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing generation: %w", err)
	}
	return nil
}

func insertChat(ctx context.Context, q querier, r types.ChatRecord) error {
	files, err := json.Marshal(r.CreatedFiles)
	if err != nil {
		return fmt.Errorf("encoding created files: %w", err)
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO chat_history (id, project_id, owner_id, prompt, response, generated_code, was_modification, created_files, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ProjectID, r.OwnerID, r.Prompt, r.Response, r.GeneratedCode, r.WasModification, string(files), formatTime(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting chat record: %w", err)
	}
	return nil
}

// ListChatHistory returns a project's exchanges, oldest first.
func (s *Store) ListChatHistory(ctx context.Context, projectID string) ([]types.ChatRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, owner_id, prompt, response, generated_code, was_modification, created_files, created_at
		 FROM chat_history WHERE project_id = ? ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing chat history: %w", err)
	}
	defer rows.Close()

	var records []types.ChatRecord
	for rows.Next() {
		var r types.ChatRecord
		var files, created string
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.OwnerID, &r.Prompt, &r.Response, &r.GeneratedCode, &r.WasModification, &files, &created); err != nil {
			return nil, fmt.Errorf("scanning chat record: %w", err)
		}
		if err := json.Unmarshal([]byte(files), &r.CreatedFiles); err != nil {
			log.Printf("WARN: chat record %s has malformed created_files: %v", r.ID, err)
		}
		r.CreatedAt = parseTime(created)
		records = append(records, r)
	}
	return records, rows.Err()
}
