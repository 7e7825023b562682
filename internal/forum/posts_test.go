// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum_test

import (
	"fmt"
	"testing"

	"lexforum/internal/forum"
	"lexforum/internal/forum/forumtest"
	"lexforum/internal/models"
)

// adviceFixture builds a lawyer-advice forum with one open thread.
func adviceFixture(t *testing.T) (*forum.Service, *forumtest.Store, *models.Forum, *models.Thread) {
	t.Helper()
	svc, st, _ := forumtest.NewService()
	f := mustCreateForum(t, svc, solo(1), "Advice", models.ForumTypeLawyerAdvice)
	th, err := svc.CreateThread(ctx, solo(1), f.ID, forum.CreateThreadParams{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("CreateThread failed: %v", err)
	}
	return svc, st, f, th
}

func TestCreatePost(t *testing.T) {
	t.Run("top level post", func(t *testing.T) {
		svc, _, f, th := adviceFixture(t)
		p, err := svc.CreatePost(ctx, solo(2), f.ID, th.ID, forum.CreatePostParams{Content: "  An answer  "})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
		if p.Content != "An answer" {
			t.Errorf("Content = %q, want trimmed", p.Content)
		}
		if p.ParentPostID != nil {
			t.Error("top-level post should have no parent")
		}
	})

	t.Run("nested reply", func(t *testing.T) {
		svc, _, f, th := adviceFixture(t)
		parent, err := svc.CreatePost(ctx, solo(2), f.ID, th.ID, forum.CreatePostParams{Content: "Answer"})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
		reply, err := svc.CreatePost(ctx, solo(3), f.ID, th.ID, forum.CreatePostParams{
			Content: "Follow-up", ParentPostID: &parent.ID,
		})
		if err != nil {
			t.Fatalf("reply failed: %v", err)
		}
		if reply.ParentPostID == nil || *reply.ParentPostID != parent.ID {
			t.Errorf("ParentPostID = %v, want %v", reply.ParentPostID, parent.ID)
		}
	})

	t.Run("parent must live in the same thread", func(t *testing.T) {
		svc, _, f, th := adviceFixture(t)
		other, err := svc.CreateThread(ctx, solo(1), f.ID, forum.CreateThreadParams{Title: "Other", Content: "C"})
		if err != nil {
			t.Fatalf("CreateThread failed: %v", err)
		}
		foreign, err := svc.CreatePost(ctx, solo(2), f.ID, other.ID, forum.CreatePostParams{Content: "Elsewhere"})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}

		_, err = svc.CreatePost(ctx, solo(2), f.ID, th.ID, forum.CreatePostParams{
			Content: "Bad reply", ParentPostID: &foreign.ID,
		})
		if !forum.IsKind(err, forum.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("closed thread rejects posts", func(t *testing.T) {
		svc, _, f, th := adviceFixture(t)
		if _, err := svc.UpdateThread(ctx, solo(1), f.ID, th.ID, models.ThreadPatch{IsClosed: boolPtr(true)}); err != nil {
			t.Fatalf("close failed: %v", err)
		}
		_, err := svc.CreatePost(ctx, solo(2), f.ID, th.ID, forum.CreatePostParams{Content: "Too late"})
		if !forum.IsKind(err, forum.KindThreadClosed) {
			t.Errorf("expected thread_closed error, got %v", err)
		}
	})

	t.Run("blank content", func(t *testing.T) {
		svc, _, f, th := adviceFixture(t)
		_, err := svc.CreatePost(ctx, solo(2), f.ID, th.ID, forum.CreatePostParams{Content: "   "})
		if !forum.IsKind(err, forum.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestUpdatePost(t *testing.T) {
	svc, _, f, th := adviceFixture(t)
	author := solo(2)
	p, err := svc.CreatePost(ctx, author, f.ID, th.ID, forum.CreatePostParams{Content: "Draft"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	updated, err := svc.UpdatePost(ctx, author, f.ID, th.ID, p.ID, "Final")
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Content != "Final" {
		t.Errorf("Content = %q, want Final", updated.Content)
	}
	if !updated.UpdatedAt.After(p.UpdatedAt) {
		t.Error("UpdatedAt should advance on edit")
	}

	// Post edits are author-only, even for the thread moderator.
	if _, err := svc.UpdatePost(ctx, solo(1), f.ID, th.ID, p.ID, "Hijack"); !forum.IsKind(err, forum.KindAuthorization) {
		t.Errorf("expected authorization error, got %v", err)
	}
}

func TestDeletePostTombstone(t *testing.T) {
	svc, _, f, th := adviceFixture(t)
	author := solo(2)

	parent, err := svc.CreatePost(ctx, author, f.ID, th.ID, forum.CreatePostParams{Content: "Parent"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	reply, err := svc.CreatePost(ctx, solo(3), f.ID, th.ID, forum.CreatePostParams{
		Content: "Reply", ParentPostID: &parent.ID,
	})
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}

	if err := svc.DeletePost(ctx, author, f.ID, th.ID, parent.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	// The reply survives with its parent reference dangling.
	got, err := svc.GetPost(ctx, solo(3), f.ID, th.ID, reply.ID)
	if err != nil {
		t.Fatalf("GetPost after parent delete failed: %v", err)
	}
	if got.ParentPostID == nil || *got.ParentPostID != parent.ID {
		t.Errorf("ParentPostID = %v, want dangling %v", got.ParentPostID, parent.ID)
	}
	if got.ParentPost != nil {
		t.Errorf("ParentPost snippet should be nil for a deleted parent, got %+v", got.ParentPost)
	}

	// The deleted parent itself is gone.
	if _, err := svc.GetPost(ctx, author, f.ID, th.ID, parent.ID); !forum.IsKind(err, forum.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeletePostAuthorization(t *testing.T) {
	svc, _, _ := forumtest.NewService()
	admin := member(1, 7, forum.RoleAdmin)
	f := mustCreateForum(t, svc, admin, "Org", models.ForumTypeOrganizational)
	th, err := svc.CreateThread(ctx, member(2, 7), f.ID, forum.CreateThreadParams{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("CreateThread failed: %v", err)
	}
	p, err := svc.CreatePost(ctx, member(3, 7), f.ID, th.ID, forum.CreatePostParams{Content: "Reply"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// A third member who wrote neither thread nor post: denied.
	if err := svc.DeletePost(ctx, member(4, 7), f.ID, th.ID, p.ID); !forum.IsKind(err, forum.KindAuthorization) {
		t.Errorf("expected authorization error, got %v", err)
	}
	// The org admin moderates any post.
	if err := svc.DeletePost(ctx, admin, f.ID, th.ID, p.ID); err != nil {
		t.Errorf("admin delete failed: %v", err)
	}
}

func TestListPosts(t *testing.T) {
	svc, st, f, th := adviceFixture(t)
	st.AddUser(models.UserSummary{ID: 2, FirstName: "Ana", LastName: "Ionescu", Email: "ana@example.com"})

	parent, err := svc.CreatePost(ctx, solo(2), f.ID, th.ID, forum.CreatePostParams{Content: "First"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.CreatePost(ctx, solo(3), f.ID, th.ID, forum.CreatePostParams{
			Content: fmt.Sprintf("Reply %d", i), ParentPostID: &parent.ID,
		}); err != nil {
			t.Fatalf("reply failed: %v", err)
		}
	}
	if _, err := svc.AddReaction(ctx, solo(3), f.ID, th.ID, parent.ID, models.ReactionHelpful); err != nil {
		t.Fatalf("AddReaction failed: %v", err)
	}

	items, page, err := svc.ListPosts(ctx, solo(3), f.ID, th.ID, models.PostFilters{})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if page.Total != 3 || len(items) != 3 {
		t.Fatalf("got %d items (total %d), want 3", len(items), page.Total)
	}

	// Oldest first, flattened.
	if items[0].ID != parent.ID {
		t.Errorf("items[0] = %q, want the first post", items[0].Content)
	}
	// Author summary resolved from the user projection.
	if items[0].User == nil || items[0].User.FirstName != "Ana" {
		t.Errorf("User = %+v, want Ana's summary", items[0].User)
	}
	// Replies carry the parent snippet.
	if items[1].ParentPost == nil || items[1].ParentPost.ID != parent.ID {
		t.Errorf("ParentPost = %+v, want snippet of %v", items[1].ParentPost, parent.ID)
	}
	// Reply count on the parent.
	if items[0].ReplyCount != 2 {
		t.Errorf("ReplyCount = %d, want 2", items[0].ReplyCount)
	}
	// Reaction aggregates are zero-filled across all known types.
	if items[0].ReactionCounts[models.ReactionHelpful] != 1 {
		t.Errorf("helpful count = %d, want 1", items[0].ReactionCounts[models.ReactionHelpful])
	}
	if n, ok := items[0].ReactionCounts[models.ReactionLike]; !ok || n != 0 {
		t.Errorf("like count = %d (present=%v), want zero-filled", n, ok)
	}
	// The caller's own reactions.
	if len(items[0].UserReactions) != 1 || items[0].UserReactions[0] != models.ReactionHelpful {
		t.Errorf("UserReactions = %v, want [helpful]", items[0].UserReactions)
	}
	if len(items[1].UserReactions) != 0 {
		t.Errorf("UserReactions on unreacted post = %v, want empty", items[1].UserReactions)
	}
}
