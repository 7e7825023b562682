// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"lexforum/internal/models"
)

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

// makeForum inserts a lawyer-advice forum and registers cleanup.
func makeForum(t *testing.T, s *ForumStore, name string) *models.Forum {
	t.Helper()
	f, err := s.Create(ctx, &models.Forum{
		Name:            name,
		Type:            models.ForumTypeLawyerAdvice,
		CreatedByUserID: 900001,
		Settings:        map[string]any{},
	})
	if err != nil {
		t.Fatalf("create forum: %v", err)
	}
	t.Cleanup(func() { cleanForums(t, s.db, name) })
	return f
}

func TestForumStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewForumStore(db)

	name := "store-test-create"
	t.Cleanup(func() { cleanForums(t, db, name) })

	created, err := s.Create(ctx, &models.Forum{
		Name:            name,
		Description:     strPtr("integration fixture"),
		Type:            models.ForumTypeOrganizational,
		OrganizationID:  i64Ptr(900100),
		CreatedByUserID: 900001,
		Settings:        map[string]any{"allowAttachments": true},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected database timestamps")
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected forum, got nil")
	}
	if found.Name != name || found.Type != models.ForumTypeOrganizational {
		t.Errorf("got %q/%q", found.Name, found.Type)
	}
	if found.OrganizationID == nil || *found.OrganizationID != 900100 {
		t.Errorf("OrganizationID = %v, want 900100", found.OrganizationID)
	}
	if v, ok := found.Settings["allowAttachments"].(bool); !ok || !v {
		t.Errorf("settings JSONB round-trip failed: %v", found.Settings)
	}

	// Find miss is (nil, nil), not an error.
	missing, err := s.FindByID(ctx, -1)
	if err != nil {
		t.Fatalf("FindByID miss: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing forum, got %+v", missing)
	}
}

func TestForumStoreCreatorJoin(t *testing.T) {
	db := testDB(t)
	s := NewForumStore(db)

	email := "store-test-creator@example.test"
	seedUser(t, db, 900002, "Ana", "Ionescu", email)
	t.Cleanup(func() { cleanUsers(t, db, email) })

	name := "store-test-creator-join"
	t.Cleanup(func() { cleanForums(t, db, name) })
	created, err := s.Create(ctx, &models.Forum{
		Name: name, Type: models.ForumTypeLawyerAdvice, CreatedByUserID: 900002,
		Settings: map[string]any{},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Creator == nil || found.Creator.FirstName != "Ana" {
		t.Errorf("Creator = %+v, want Ana's summary", found.Creator)
	}

	// A creator absent from the projection degrades to a nil summary.
	orphan := makeForum(t, s, "store-test-creator-orphan")
	found, err = s.FindByID(ctx, orphan.ID)
	if err != nil {
		t.Fatalf("FindByID orphan: %v", err)
	}
	if found.Creator != nil {
		t.Errorf("Creator = %+v, want nil for unknown user", found.Creator)
	}
}

func TestForumStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewForumStore(db)
	f := makeForum(t, s, "store-test-update")

	t.Run("patches only provided fields", func(t *testing.T) {
		updated, err := s.Update(ctx, f.ID, models.ForumPatch{Description: strPtr("new desc")})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.Name != f.Name {
			t.Errorf("name changed unexpectedly: %q", updated.Name)
		}
		if updated.Description == nil || *updated.Description != "new desc" {
			t.Errorf("Description = %v", updated.Description)
		}
		if !updated.UpdatedAt.After(f.UpdatedAt) {
			t.Error("updated_at should advance")
		}
	})

	t.Run("empty patch is a plain read", func(t *testing.T) {
		updated, err := s.Update(ctx, f.ID, models.ForumPatch{})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated == nil || updated.ID != f.ID {
			t.Errorf("got %+v", updated)
		}
	})

	t.Run("missing forum is (nil, nil)", func(t *testing.T) {
		updated, err := s.Update(ctx, -1, models.ForumPatch{Name: strPtr("x")})
		if err != nil {
			t.Fatalf("Update miss: %v", err)
		}
		if updated != nil {
			t.Errorf("expected nil, got %+v", updated)
		}
	})
}

func TestForumStoreStatsAndDelete(t *testing.T) {
	db := testDB(t)
	forums := NewForumStore(db)
	categories := NewCategoryStore(db)
	threads := NewThreadStore(db)

	f := makeForum(t, forums, "store-test-stats")
	if _, err := categories.Create(ctx, &models.Category{ForumID: f.ID, Name: "General"}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	th := &models.Thread{ID: newUUID(), ForumID: f.ID, UserID: 900001, Title: "T", Content: "C"}
	if _, err := threads.Create(ctx, th); err != nil {
		t.Fatalf("create thread: %v", err)
	}

	stats, err := forums.Stats(ctx, f.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.CategoryCount != 1 || stats.ThreadCount != 1 {
		t.Errorf("stats = %+v, want 1/1", stats)
	}

	if err := forums.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Children cascade at the database level.
	got, err := threads.FindByID(ctx, th.ID)
	if err != nil {
		t.Fatalf("FindByID after cascade: %v", err)
	}
	if got != nil {
		t.Errorf("thread survived forum delete: %+v", got)
	}
}
