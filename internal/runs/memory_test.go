package runs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talentscope/talentscope/pkg/matching"
)

func TestMemoryRepositoryLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	ctx := context.Background()

	run := &Run{ID: "r1", RoleName: "Data Analyst", BenchmarkIDs: []string{"E1"}}
	if err := repo.Create(ctx, run); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if run.Status != StatusQueued || run.CreatedAt.IsZero() {
		t.Errorf("expected defaults on create, got %s %v", run.Status, run.CreatedAt)
	}
	if err := repo.Create(ctx, run); err == nil {
		t.Error("expected duplicate create to fail")
	}

	if err := repo.UpdateStatus(ctx, "r1", StatusRunning, ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	ranking := []matching.FinalScore{
		{EmployeeID: "E2", FinalMatchRate: 95, Rank: 1},
		{EmployeeID: "E1", FinalMatchRate: 90, Rank: 2, IsBenchmark: true},
	}
	if err := repo.Complete(ctx, "r1", "runs/r1.json", ranking); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	ranking[0].EmployeeID = "mutated"

	got, err := repo.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusCompleted || got.CandidateCount != 2 || *got.TopMatchRate != 95 {
		t.Errorf("unexpected completed run %+v", got)
	}
	scores, _ := repo.Scores(ctx, "r1")
	if len(scores) != 2 || scores[0].EmployeeID != "E2" {
		t.Errorf("scores = %+v", scores)
	}

	run2 := &Run{ID: "r2", RoleName: "Data Analyst"}
	if err := repo.Create(ctx, run2); err != nil {
		t.Fatal(err)
	}
	list, _ := repo.List(ctx, 0)
	if len(list) != 2 || list[0].ID != "r2" {
		t.Errorf("expected newest first, got %+v", list)
	}

	for _, err := range []error{
		repo.UpdateStatus(ctx, "zz", StatusFailed, "x"),
		repo.Complete(ctx, "zz", "", nil),
	} {
		if !errors.Is(err, ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	}
}

func TestMemoryRepositoryFailedRunHasCompletion(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	if err := repo.Create(ctx, &Run{ID: "r1"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateStatus(ctx, "r1", StatusFailed, "boom"); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.Get(ctx, "r1")
	if got.CompletedAt == nil || got.Error != "boom" {
		t.Errorf("unexpected failed run %+v", got)
	}
}
