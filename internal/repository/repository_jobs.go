package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bidboard/internal/models"

	"github.com/google/uuid"
)

const jobColumns = `
		id, title, category, description, min_price, max_price, deadline,
		buyer_email, buyer_name, buyer_photo, bid_count`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (job models.Job, err error) {
	var minPrice, maxPrice float64
	err = row.Scan(&job.Id, &job.Title, &job.Category, &job.Description, &minPrice, &maxPrice, &job.Deadline,
		&job.Buyer.Email, &job.Buyer.Name, &job.Buyer.Photo, &job.BidCount)
	job.MinPrice, job.MaxPrice = models.Price(minPrice), models.Price(maxPrice)
	return
}

func (repo *Repository) AddJob(ctx context.Context, job models.JobPayload) (string, error) {
	query := `
	INSERT INTO jobs (id, title, category, description, min_price, max_price, deadline, buyer_email, buyer_name, buyer_photo, bid_count)
	VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	id := uuid.NewString()
	_, err := repo.db.ExecContext(ctx, query, id, job.Title, job.Category, job.Description, float64(job.MinPrice), float64(job.MaxPrice),
		job.Deadline, job.Buyer.Email, job.Buyer.Name, job.Buyer.Photo, job.BidCount)
	if err != nil {
		return "", fmt.Errorf("repository.Repository.AddJob: %w", err)
	}

	return id, nil
}

// GetJob returns the job with the given id. Ids that are not UUIDs match
// nothing.
func (repo *Repository) GetJob(ctx context.Context, id string) (models.Job, bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Job{}, false, nil
	}

	query := `SELECT` + jobColumns + `
	FROM jobs
	WHERE id = $1
	`

	job, err := scanJob(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return job, false, nil
	} else if err != nil {
		return job, false, fmt.Errorf("repository.Repository.GetJob: %w", err)
	}

	return job, true, nil
}

// ListJobs returns jobs ordered by deadline, limited to category unless it
// is empty.
func (repo *Repository) ListJobs(ctx context.Context, category models.Category) ([]models.Job, error) {
	query := `SELECT` + jobColumns + `
	FROM jobs
	WHERE $1 = '' OR category = $1
	ORDER BY deadline, created_at
	`

	rows, err := repo.db.QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("repository.Repository.ListJobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]models.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.Repository.ListJobs: rows scan error: %w", err)
		}
		jobs = append(jobs, job)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("repository.Repository.ListJobs: %w", rows.Err())
	}

	return jobs, nil
}

// ReplaceJob overwrites every field of job id. It returns the number of
// matched jobs and the number of jobs whose values actually changed.
func (repo *Repository) ReplaceJob(ctx context.Context, id string, job models.JobPayload) (matched, modified int64, err error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, 0, nil
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("repository.Repository.ReplaceJob: failed to start transaction: %w", err)
	}

	query := `SELECT` + jobColumns + `
	FROM jobs
	WHERE id = $1
	FOR UPDATE
	`

	current, err := scanJob(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, tx.Rollback()
	} else if err != nil {
		return 0, 0, fmt.Errorf("repository.Repository.ReplaceJob: %w", wrapRollbackErr(tx, err))
	}

	// postgres keeps microseconds
	job.Deadline = job.Deadline.Truncate(time.Microsecond)
	if current.Payload().Equal(job) {
		return 1, 0, tx.Rollback()
	}

	query = `
	UPDATE jobs
	SET
		title = $2,
		category = $3,
		description = $4,
		min_price = $5,
		max_price = $6,
		deadline = $7,
		buyer_email = $8,
		buyer_name = $9,
		buyer_photo = $10,
		bid_count = $11,
		updated_at = now()
	WHERE id = $1
	`

	_, err = tx.ExecContext(ctx, query, id, job.Title, job.Category, job.Description, float64(job.MinPrice), float64(job.MaxPrice),
		job.Deadline, job.Buyer.Email, job.Buyer.Name, job.Buyer.Photo, job.BidCount)
	if err != nil {
		return 0, 0, fmt.Errorf("repository.Repository.ReplaceJob: %w", wrapRollbackErr(tx, err))
	}

	err = tx.Commit()
	if err != nil {
		return 0, 0, fmt.Errorf("repository.Repository.ReplaceJob: failed to commit transaction: %w", err)
	}
	return 1, 1, nil
}
