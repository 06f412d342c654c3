package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"bidboard/internal/models"

	gofakeit "github.com/brianvoe/gofakeit/v7"
)

func TestBids(t *testing.T) {
	ctx := context.Background()
	repo := OpenTestRepo(t)
	defer repo.Close()

	var jobId string
	for jobId = range AddRandomJobs(t, repo, 1) {
	}

	count := gofakeit.IntRange(1, 10)
	for i := 0; i < count; i++ {
		_, err := repo.AddBid(ctx, models.Bid{
			JobId:     jobId,
			Email:     gofakeit.Email(),
			Price:     models.Price(gofakeit.Float64Range(1, 100)),
			Comment:   gofakeit.Sentence(5),
			Deadline:  time.Now().Add(24 * time.Hour),
			Timestamp: time.Now(),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	job, _, err := repo.GetJob(ctx, jobId)
	if err != nil {
		t.Fatal(err)
	}
	if job.BidCount != count {
		t.Errorf("Expected bid count %d, got %d", count, job.BidCount)
	}

	var stored int
	row := repo.TestGetDB().QueryRow("SELECT COUNT(*) FROM bids WHERE job_id = $1", jobId)
	if err := row.Scan(&stored); err != nil {
		t.Fatal(err)
	}
	if stored != count {
		t.Errorf("Expected %d stored bids, got %d", count, stored)
	}

	_, err = repo.AddBid(ctx, models.Bid{JobId: gofakeit.UUID(), Email: gofakeit.Email()})
	if !errors.Is(err, models.ErrNoJob) {
		t.Errorf("Expected ErrNoJob for unknown job, got %v", err)
	}
	_, err = repo.AddBid(ctx, models.Bid{JobId: "", Email: gofakeit.Email()})
	if !errors.Is(err, models.ErrNoJob) {
		t.Errorf("Expected ErrNoJob for empty job id, got %v", err)
	}
}
