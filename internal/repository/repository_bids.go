package repository

import (
	"context"
	"fmt"

	"bidboard/internal/models"

	"github.com/google/uuid"
)

// AddBid stores bid and increments its job's bid count in one transaction.
func (repo *Repository) AddBid(ctx context.Context, bid models.Bid) (string, error) {
	if _, err := uuid.Parse(bid.JobId); err != nil {
		return "", fmt.Errorf("repository.Repository.AddBid: %w: %s", models.ErrNoJob, bid.JobId)
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("repository.Repository.AddBid: failed to start transaction: %w", err)
	}

	res, err := tx.ExecContext(ctx, `UPDATE jobs SET bid_count = bid_count + 1 WHERE id = $1`, bid.JobId)
	if err != nil {
		return "", fmt.Errorf("repository.Repository.AddBid: %w", wrapRollbackErr(tx, err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("repository.Repository.AddBid: %w", wrapRollbackErr(tx, err))
	}
	if n == 0 {
		return "", fmt.Errorf("repository.Repository.AddBid: %w", wrapRollbackErr(tx, models.ErrNoJob))
	}

	query := `
	INSERT INTO bids (id, job_id, email, price, comment, deadline, submitted_at)
	VALUES
		($1, $2, $3, $4, $5, $6, $7)
	`

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx, query, id, bid.JobId, bid.Email, float64(bid.Price), bid.Comment, nullTime(bid.Deadline), nullTime(bid.Timestamp))
	if err != nil {
		return "", fmt.Errorf("repository.Repository.AddBid: %w", wrapRollbackErr(tx, err))
	}

	err = tx.Commit()
	if err != nil {
		return "", fmt.Errorf("repository.Repository.AddBid: failed to commit transaction: %w", err)
	}

	return id, nil
}
