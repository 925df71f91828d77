package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"screenclash/internal/database"
	"screenclash/internal/models"
)

// HistoryRepository handles database operations for the exercise history log
type HistoryRepository struct {
	db *database.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *database.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// CreateRecord appends a completed exercise run to the log. Records are
// append-only; there is no update path.
func (r *HistoryRepository) CreateRecord(rec *models.HistoryRecord) (int64, error) {
	detailsJSON, err := json.Marshal(rec.Details)
	if err != nil {
		return 0, fmt.Errorf("failed to encode history details: %w", err)
	}

	query := `
		INSERT INTO exercise_history (game_type, child_name, details)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, string(rec.GameType), rec.ChildName, string(detailsJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to create history record: %w", err)
	}
	return id, nil
}

// GetRecordsForChild retrieves a child's history, newest first
func (r *HistoryRepository) GetRecordsForChild(childName string, limit int) ([]models.HistoryRecord, error) {
	query := `
		SELECT id, game_type, child_name, details, created_at
		FROM exercise_history
		WHERE child_name = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	return r.queryRecords(query, childName, limit)
}

// GetRecordsForChildSince retrieves a child's history after a cutoff, newest first
func (r *HistoryRepository) GetRecordsForChildSince(childName string, since time.Time) ([]models.HistoryRecord, error) {
	query := `
		SELECT id, game_type, child_name, details, created_at
		FROM exercise_history
		WHERE child_name = ? AND created_at >= ?
		ORDER BY created_at DESC
	`
	return r.queryRecords(query, childName, since)
}

// CountRecordsByType returns per-game record counts for a child
func (r *HistoryRepository) CountRecordsByType(childName string) (map[models.ExerciseType]int, error) {
	query := `
		SELECT game_type, COUNT(*)
		FROM exercise_history
		WHERE child_name = ?
		GROUP BY game_type
	`
	rows, err := r.db.Query(query, childName)
	if err != nil {
		return nil, fmt.Errorf("failed to count history records: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ExerciseType]int)
	for rows.Next() {
		var gameType string
		var count int
		if err := rows.Scan(&gameType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan history count: %w", err)
		}
		counts[models.ExerciseType(gameType)] = count
	}

	return counts, nil
}

// GetAllRecords retrieves the full log, newest first, for backup export
func (r *HistoryRepository) GetAllRecords() ([]models.HistoryRecord, error) {
	query := `
		SELECT id, game_type, child_name, details, created_at
		FROM exercise_history
		ORDER BY created_at DESC
	`
	return r.queryRecords(query)
}

func (r *HistoryRepository) queryRecords(query string, args ...interface{}) ([]models.HistoryRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history records: %w", err)
	}
	defer rows.Close()

	var records []models.HistoryRecord
	for rows.Next() {
		var rec models.HistoryRecord
		var detailsJSON []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.GameType,
			&rec.ChildName,
			&detailsJSON,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		if err := json.Unmarshal(detailsJSON, &rec.Details); err != nil {
			return nil, fmt.Errorf("failed to decode history details: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
