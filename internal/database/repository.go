package database

import (
	"time"

	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/internal/models"
)

// Repository handles the capture journal
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateCapture records a capture attempt
func (r *Repository) CreateCapture(c *models.Capture) error {
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	result := r.db.Create(c)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert capture")
	}
	return nil
}

// Recent returns the latest captures, newest first
func (r *Repository) Recent(limit int) ([]*models.Capture, error) {
	var captures []*models.Capture
	query := r.db.Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if result := query.Find(&captures); result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query captures")
	}
	return captures, nil
}

// CountSince counts captures since a given time, split by outcome
func (r *Repository) CountSince(since time.Time) (succeeded, failed int64, err error) {
	result := r.db.Model(&models.Capture{}).
		Where("timestamp >= ? AND success = ?", since, true).
		Count(&succeeded)
	if result.Error != nil {
		return 0, 0, errors.Wrap(result.Error, "failed to count captures")
	}

	result = r.db.Model(&models.Capture{}).
		Where("timestamp >= ? AND success = ?", since, false).
		Count(&failed)
	if result.Error != nil {
		return 0, 0, errors.Wrap(result.Error, "failed to count failed captures")
	}
	return succeeded, failed, nil
}

// StrategySummarySince returns successful captures per strategy since a
// given time, most used first
func (r *Repository) StrategySummarySince(since time.Time) ([]models.StrategySummary, error) {
	var summaries []models.StrategySummary

	result := r.db.Model(&models.Capture{}).
		Select("strategy, COUNT(*) as count").
		Where("timestamp >= ? AND success = ?", since, true).
		Group("strategy").
		Order("count DESC").
		Scan(&summaries)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query strategy summary")
	}

	return summaries, nil
}

// History assembles the journal view for the history command
func (r *Repository) History(since time.Time, limit int) (*models.History, error) {
	captures, err := r.Recent(limit)
	if err != nil {
		return nil, err
	}
	strategies, err := r.StrategySummarySince(since)
	if err != nil {
		return nil, err
	}
	_, failed, err := r.CountSince(since)
	if err != nil {
		return nil, err
	}
	return &models.History{
		Captures:    captures,
		Strategies:  strategies,
		Failures:    failed,
		Since:       since,
		GeneratedAt: time.Now(),
	}, nil
}

// CreateErrorLog inserts a new error log into the database
func (r *Repository) CreateErrorLog(errorLog *models.ErrorLog) error {
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// Clear removes every capture and error log
func (r *Repository) Clear() error {
	if result := r.db.Exec("DELETE FROM captures"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear captures")
	}
	if result := r.db.Exec("DELETE FROM error_logs"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear error logs")
	}
	return nil
}
