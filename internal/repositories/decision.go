package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/shared"
)

// DecisionRepository implements models.Repository[*models.Decision] for the
// moderation audit trail. Records are append-mostly: the engines write one
// row per confirmed approve/reject and nothing ever updates them in normal
// operation.
type DecisionRepository struct {
	db *sql.DB
}

// NewDecisionRepository creates a new DecisionRepository with the given database connection
func NewDecisionRepository(db *sql.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// Create inserts a new [models.Decision] into the database with generated ID and sequence
func (r *DecisionRepository) Create(decision *models.Decision) error {
	sequence, err := NextSequence(r.db, "decisions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	decision.SetID(id)

	if err := decision.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO decisions (id, sequence, suggestion_id, action, youtube_url, decided_by, decided_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		decision.SuggestionID(),
		decision.Action(),
		decision.YouTubeURL(),
		decision.DecidedBy(),
		decision.DecidedAt(),
		decision.CreatedAt(),
		decision.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert decision: %w", err)
	}

	return nil
}

// Get retrieves a decision by ID, excluding soft-deleted rows
func (r *DecisionRepository) Get(id string) (*models.Decision, error) {
	query := `
		SELECT id, sequence, suggestion_id, action, youtube_url, decided_by, decided_at, created_at, updated_at, deleted_at
		FROM decisions
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing decision in the database
func (r *DecisionRepository) Update(decision *models.Decision) error {
	if err := decision.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	decision.SetUpdatedAt(now)

	query := `
		UPDATE decisions
		SET action = ?, youtube_url = ?, decided_by = ?, decided_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		decision.Action(),
		decision.YouTubeURL(),
		decision.DecidedBy(),
		decision.DecidedAt(),
		now,
		decision.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update decision: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("decision not found or already deleted: %s", decision.ID())
	}

	return nil
}

// Delete soft-deletes a decision by ID
func (r *DecisionRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE decisions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete decision: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("decision not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all decisions matching the given criteria, excluding soft-deleted rows
func (r *DecisionRepository) List(criteria map[string]any) ([]*models.Decision, error) {
	query := `
		SELECT id, sequence, suggestion_id, action, youtube_url, decided_by, decided_at, created_at, updated_at, deleted_at
		FROM decisions
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if suggestionID, ok := criteria["suggestion_id"].(int64); ok && suggestionID > 0 {
		query += " AND suggestion_id = ?"
		args = append(args, suggestionID)
	}

	if action, ok := criteria["action"].(string); ok && action != "" {
		query += " AND action = ?"
		args = append(args, action)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []*models.Decision
	for rows.Next() {
		decision, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, decision)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return decisions, nil
}

// scanOne scans a single [sql.Row] into a [models.Decision]
func (r *DecisionRepository) scanOne(row *sql.Row) (*models.Decision, error) {
	var (
		id           string
		sequence     int
		suggestionID int64
		action       string
		youtubeURL   string
		decidedBy    string
		decidedAt    time.Time
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &suggestionID, &action, &youtubeURL, &decidedBy, &decidedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("decision not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan decision: %w", err)
	}

	return r.build(id, sequence, suggestionID, action, youtubeURL, decidedBy, decidedAt, createdAt, updatedAt, deletedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.Decision]
func (r *DecisionRepository) scanRow(rows *sql.Rows) (*models.Decision, error) {
	var (
		id           string
		sequence     int
		suggestionID int64
		action       string
		youtubeURL   string
		decidedBy    string
		decidedAt    time.Time
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &suggestionID, &action, &youtubeURL, &decidedBy, &decidedAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan decision: %w", err)
	}

	return r.build(id, sequence, suggestionID, action, youtubeURL, decidedBy, decidedAt, createdAt, updatedAt, deletedAt), nil
}

func (r *DecisionRepository) build(id string, sequence int, suggestionID int64, action, youtubeURL, decidedBy string, decidedAt, createdAt, updatedAt time.Time, deletedAt sql.NullTime) *models.Decision {
	decision := models.NewDecision(sequence, suggestionID, action, youtubeURL, decidedBy)
	decision.SetID(id)
	decision.SetDecidedAt(decidedAt)
	decision.SetCreatedAt(createdAt)
	decision.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		decision.SetDeletedAt(&deletedAt.Time)
	}

	return decision
}
