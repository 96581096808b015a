package library_test

import (
	"context"
	"errors"
	"testing"

	"github.com/habitloop/curator/internal/domain"
	"github.com/habitloop/curator/internal/library"
)

func openStore(t *testing.T) *library.Store {
	t.Helper()
	s, err := library.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleItem(videoID string) domain.LibraryItem {
	return domain.LibraryItem{
		VideoID:         videoID,
		Title:           "Morning stretch",
		URL:             "https://www.youtube.com/watch?v=" + videoID,
		ChannelName:     "Coach",
		DurationMinutes: 5,
		Prompt:          "Start the day moving",
		Category:        domain.CategoryMorning,
		Tags: &domain.TagSet{
			ContentTypes: []string{domain.ContentTutorial},
			LifeDomains:  []string{domain.DomainPhysical},
			Difficulty:   domain.DifficultyBeginner,
			Emotions:     []string{domain.EmotionCalming},
		},
	}
}

func TestStore_AddAndGetRoundtrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, sampleItem("dQw4w9WgXcQ"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID == 0 {
		t.Error("Add did not assign an id")
	}
	if added.Position != 1 {
		t.Errorf("first item position = %d, want 1", added.Position)
	}

	got, err := s.Get(ctx, added.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.VideoID != "dQw4w9WgXcQ" || got.Title != "Morning stretch" {
		t.Errorf("Get = %+v", got)
	}
	if got.Tags == nil {
		t.Fatal("tags lost in roundtrip")
	}
	if !got.Tags.Equal(*added.Tags) {
		t.Errorf("tags = %+v, want %+v", got.Tags, added.Tags)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestStore_PositionsAppend(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	ids := []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc"}
	for _, id := range ids {
		if _, err := s.Add(ctx, sampleItem(id)); err != nil {
			t.Fatalf("Add %s: %v", id, err)
		}
	}

	items, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, item := range items {
		if item.VideoID != ids[i] {
			t.Errorf("list[%d] = %s, want %s", i, item.VideoID, ids[i])
		}
		if item.Position != i+1 {
			t.Errorf("list[%d] position = %d, want %d", i, item.Position, i+1)
		}
	}
}

func TestStore_PolicyGatesWrites(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	over := sampleItem("aaaaaaaaaaa")
	over.DurationMinutes = 9
	var pv *domain.PolicyViolationError
	if _, err := s.Add(ctx, over); !errors.As(err, &pv) {
		t.Errorf("Add over-limit error = %v, want PolicyViolationError", err)
	}

	added, err := s.Add(ctx, sampleItem("bbbbbbbbbbb"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	added.DurationMinutes = 9
	if _, err := s.Update(ctx, added); !errors.As(err, &pv) {
		t.Errorf("Update over-limit error = %v, want PolicyViolationError", err)
	}

	// 8 minutes is exactly the ceiling and passes.
	added.DurationMinutes = 8
	if _, err := s.Update(ctx, added); err != nil {
		t.Errorf("Update at ceiling = %v, want nil", err)
	}
}

func TestStore_UpdateRewritesFields(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, sampleItem("aaaaaaaaaaa"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	added.Title = "Evening wind-down"
	added.Category = domain.CategoryEvening
	added.Prompt = "Close the day"
	updated, err := s.Update(ctx, added)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Evening wind-down" || updated.Category != domain.CategoryEvening {
		t.Errorf("Update = %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Error("UpdatedAt went backwards")
	}
}

func TestStore_NotFound(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, 42); !errors.Is(err, library.ErrItemNotFound) {
		t.Errorf("Get missing = %v, want ErrItemNotFound", err)
	}
	missing := sampleItem("aaaaaaaaaaa")
	missing.ID = 42
	if _, err := s.Update(ctx, missing); !errors.Is(err, library.ErrItemNotFound) {
		t.Errorf("Update missing = %v, want ErrItemNotFound", err)
	}
	if err := s.Delete(ctx, 42); !errors.Is(err, library.ErrItemNotFound) {
		t.Errorf("Delete missing = %v, want ErrItemNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, sampleItem("aaaaaaaaaaa"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Delete(ctx, added.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, added.ID); !errors.Is(err, library.ErrItemNotFound) {
		t.Errorf("Get after delete = %v, want ErrItemNotFound", err)
	}
}
