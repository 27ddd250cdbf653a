package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

func TestSavedSearchRepo_CRUD(t *testing.T) {
	repo := NewSavedSearchRepo(filepath.Join(t.TempDir(), "saved-searches.json"))
	ctx := context.Background()

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}

	first, err := repo.Create(ctx, domain.SavedSearch{"name": "north"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.Create(ctx, domain.SavedSearch{"name": "south"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID() != "1" || second.ID() != "2" {
		t.Fatalf("expected ids 1 and 2, got %q and %q", first.ID(), second.ID())
	}

	updated, err := repo.Update(ctx, domain.SavedSearch{domain.SavedSearchIDKey: "2", "name": "east"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated["name"] != "east" {
		t.Errorf("expected merged name, got %v", updated["name"])
	}

	if err := repo.Delete(ctx, "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0]["name"] != "east" {
		t.Errorf("expected only the updated search, got %v", list)
	}
}

func TestSavedSearchRepo_IDsReuseAfterDelete(t *testing.T) {
	repo := NewSavedSearchRepo(filepath.Join(t.TempDir(), "saved-searches.json"))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := repo.Create(ctx, domain.SavedSearch{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Delete(ctx, "1"); err != nil {
		t.Fatal(err)
	}

	// ids are list length + 1, so "2" is issued again
	s, err := repo.Create(ctx, domain.SavedSearch{})
	if err != nil {
		t.Fatal(err)
	}
	if s.ID() != "2" {
		t.Errorf("expected id 2, got %q", s.ID())
	}
}

func TestSavedSearchRepo_UpdateUnknown(t *testing.T) {
	repo := NewSavedSearchRepo(filepath.Join(t.TempDir(), "saved-searches.json"))

	_, err := repo.Update(context.Background(), domain.SavedSearch{domain.SavedSearchIDKey: "5"})
	if !errors.Is(err, domain.ErrSavedSearchNotFound) {
		t.Errorf("expected ErrSavedSearchNotFound, got %v", err)
	}
}

func TestSavedSearchRepo_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved-searches.json")
	if err := os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := NewSavedSearchRepo(path)

	if _, err := repo.List(context.Background()); !errors.Is(err, errCorrupt) {
		t.Errorf("expected errCorrupt, got %v", err)
	}
	if _, err := repo.Create(context.Background(), domain.SavedSearch{}); err == nil {
		t.Error("expected create to fail on a corrupt file")
	}
}
