package listing

import (
	"context"
	"testing"
)

func TestInMemoryRepositoryAll(t *testing.T) {
	repo := NewInMemoryRepository(
		Listing{PropertyName: "A"},
		Listing{PropertyName: "B"},
	)

	got, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}

	// The returned slice is a copy; mutating it must not affect the catalog.
	got[0].PropertyName = "mutated"
	again, _ := repo.All(context.Background())
	if again[0].PropertyName != "A" {
		t.Error("All returned a view into internal state")
	}
}

func TestInMemoryRepositoryTopByRating(t *testing.T) {
	repo := NewInMemoryRepository(
		Listing{PropertyName: "low", EloRating: 100},
		Listing{PropertyName: "high", EloRating: 2900},
		Listing{PropertyName: "mid", EloRating: 1500},
	)

	got, err := repo.TopByRating(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}
	if got[0].PropertyName != "high" || got[1].PropertyName != "mid" {
		t.Errorf("unexpected order: %s, %s", got[0].PropertyName, got[1].PropertyName)
	}
}

func TestInMemoryRepositoryRawLimit(t *testing.T) {
	repo := NewInMemoryRepository()
	for i := 0; i < 8; i++ {
		repo.Add(Listing{PropertyName: "P", EloRating: float64(i)})
	}

	docs, err := repo.Raw(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 5 {
		t.Errorf("expected 5 documents, got %d", len(docs))
	}
}
