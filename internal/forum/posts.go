// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package forum

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"lexforum/internal/models"
)

// CreatePostParams carries the fields for a new post. ParentPostID, when
// set, must reference an existing post in the same thread.
type CreatePostParams struct {
	Content      string
	ParentPostID *uuid.UUID
}

// CreatePost adds a reply to an open thread the caller can view.
func (s *Service) CreatePost(ctx context.Context, caller Caller, forumID int64, threadID uuid.UUID, p CreatePostParams) (*models.Post, error) {
	t, _, err := s.visibleThread(ctx, caller, forumID, threadID)
	if err != nil {
		return nil, err
	}
	if t.IsClosed {
		return nil, threadClosedf("thread %s is closed to new posts", threadID)
	}
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, validationf("post content is required")
	}
	if p.ParentPostID != nil {
		parent, err := s.posts.FindByID(ctx, *p.ParentPostID)
		if err != nil {
			return nil, internalf("post.find_parent", err)
		}
		if parent == nil || parent.ThreadID != threadID {
			return nil, validationf("parent post %s does not exist in this thread", *p.ParentPostID)
		}
	}

	created, err := s.posts.Create(ctx, &models.Post{
		ID:           newID(),
		ThreadID:     threadID,
		UserID:       caller.UserID,
		Content:      content,
		ParentPostID: p.ParentPostID,
	})
	if err != nil {
		return nil, internalf("post.create", err)
	}
	return created, nil
}

// GetPost returns one post enriched with reaction counts and the caller's
// own reactions.
func (s *Service) GetPost(ctx context.Context, caller Caller, forumID int64, threadID, postID uuid.UUID) (*models.Post, error) {
	post, err := s.visiblePost(ctx, caller, forumID, threadID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.enrichPosts(ctx, caller, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost replaces a post's content. Author-only.
func (s *Service) UpdatePost(ctx context.Context, caller Caller, forumID int64, threadID, postID uuid.UUID, content string) (*models.Post, error) {
	post, err := s.visiblePost(ctx, caller, forumID, threadID, postID)
	if err != nil {
		return nil, err
	}
	if caller.UserID != post.UserID {
		return nil, authorizationf("only the post author may edit it")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationf("post content is required")
	}

	updated, err := s.posts.Update(ctx, postID, content)
	if err != nil {
		return nil, internalf("post.update", err)
	}
	if updated == nil {
		return nil, notFoundf("post %s not found", postID)
	}
	return updated, nil
}

// DeletePost removes a post. Allowed for the post author or a moderator of
// the enclosing thread. Replies survive with their parent reference left
// dangling (tombstone policy); they are never re-parented or cascaded.
func (s *Service) DeletePost(ctx context.Context, caller Caller, forumID int64, threadID, postID uuid.UUID) error {
	post, err := s.findPost(ctx, forumID, threadID, postID)
	if err != nil {
		return err
	}
	if caller.UserID != post.UserID {
		t, f, err := s.findThread(ctx, forumID, threadID)
		if err != nil {
			return err
		}
		if !CanModerateThread(caller, f, t) {
			return authorizationf("not allowed to delete this post")
		}
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return internalf("post.delete", err)
	}
	// Reaction rows cascade with the post; drop the stale aggregate too.
	s.counter.Invalidate(ctx, postID)
	return nil
}

// ListPosts returns one page of a thread's posts in creation order (oldest
// first), flattened. Each post carries its parent-post snippet, reply count,
// aggregate reaction counts, and the caller's own reactions.
func (s *Service) ListPosts(ctx context.Context, caller Caller, forumID int64, threadID uuid.UUID, f models.PostFilters) ([]models.Post, Page, error) {
	if _, _, err := s.visibleThread(ctx, caller, forumID, threadID); err != nil {
		return nil, Page{}, err
	}
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)

	items, total, err := s.posts.ListByThread(ctx, threadID, f)
	if err != nil {
		return nil, Page{}, internalf("post.list", err)
	}

	refs := make([]*models.Post, len(items))
	for i := range items {
		refs[i] = &items[i]
	}
	if err := s.enrichPosts(ctx, caller, refs); err != nil {
		return nil, Page{}, err
	}
	return items, pageFor(total, f.Limit, f.Offset, len(items)), nil
}

// enrichPosts layers reaction counts and the caller's reaction membership
// onto posts. Counts come from the incremental counter; the caller's own
// reactions are fetched in a single store query per page.
func (s *Service) enrichPosts(ctx context.Context, caller Caller, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	mine, err := s.reactions.TypesForUserByPosts(ctx, ids, caller.UserID)
	if err != nil {
		return internalf("reaction.types_for_user", err)
	}
	for _, p := range posts {
		counts, err := s.postCounts(ctx, p.ID)
		if err != nil {
			return err
		}
		p.ReactionCounts = counts
		p.UserReactions = mine[p.ID]
	}
	return nil
}

// findPost fetches a post under the given thread/forum pair. Mismatched
// nesting is NotFound.
func (s *Service) findPost(ctx context.Context, forumID int64, threadID, postID uuid.UUID) (*models.Post, error) {
	t, err := s.threads.FindByID(ctx, threadID)
	if err != nil {
		return nil, internalf("thread.find", err)
	}
	if t == nil || t.ForumID != forumID {
		return nil, notFoundf("thread %s not found", threadID)
	}
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, internalf("post.find", err)
	}
	if p == nil || p.ThreadID != threadID {
		return nil, notFoundf("post %s not found", postID)
	}
	return p, nil
}

// visiblePost is findPost plus the audience check on the enclosing forum.
func (s *Service) visiblePost(ctx context.Context, caller Caller, forumID int64, threadID, postID uuid.UUID) (*models.Post, error) {
	if _, err := s.visibleForum(ctx, caller, forumID); err != nil {
		return nil, err
	}
	return s.findPost(ctx, forumID, threadID, postID)
}
