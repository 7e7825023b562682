// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forumtest provides in-memory implementations of the forum store
// interfaces so core and handler tests run without PostgreSQL or Valkey.
// The implementations honor the same contracts as internal/store: Find
// returns (nil, nil) on absence, listings apply the documented orderings,
// deletes follow the hard-cascade policy, and post deletion leaves replies
// with dangling parent references.
package forumtest

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lexforum/internal/forum"
	"lexforum/internal/models"
)

// Store is the shared in-memory backing state. Access it through the
// Forums/Categories/Threads/Posts/Reactions facades plus Counter.
type Store struct {
	mu sync.Mutex

	users      map[int64]models.UserSummary
	forums     map[int64]*models.Forum
	categories map[int64]*models.Category
	threads    map[uuid.UUID]*models.Thread
	posts      map[uuid.UUID]*models.Post
	reactions  map[uuid.UUID]map[string]*models.Reaction // postID → "userID/type"

	nextForumID    int64
	nextCategoryID int64
	seq            int64
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:      map[int64]models.UserSummary{},
		forums:     map[int64]*models.Forum{},
		categories: map[int64]*models.Category{},
		threads:    map[uuid.UUID]*models.Thread{},
		posts:      map[uuid.UUID]*models.Post{},
		reactions:  map[uuid.UUID]map[string]*models.Reaction{},
	}
}

// NewService wires a forum.Service over a fresh store and counter. Most
// tests only need the returned service; the store is exposed for seeding
// users and inspecting state.
func NewService() (*forum.Service, *Store, *Counter) {
	st := NewStore()
	ctr := NewCounter()
	svc := forum.NewService(
		&Forums{st}, &Categories{st}, &Threads{st}, &Posts{st}, &Reactions{st}, ctr,
	)
	return svc, st, ctr
}

// AddUser seeds one row of the host product's user projection.
func (s *Store) AddUser(u models.UserSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// now hands out strictly increasing timestamps so creation-order sorts are
// deterministic even within one test.
func (s *Store) now() time.Time {
	s.seq++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Millisecond)
}

func (s *Store) userRef(id int64) *models.UserSummary {
	if u, ok := s.users[id]; ok {
		c := u
		return &c
	}
	return nil
}

func cloneForum(f *models.Forum) *models.Forum {
	c := *f
	return &c
}

func cloneThread(t *models.Thread) *models.Thread {
	c := *t
	return &c
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	return &c
}

// Forums implements forum.ForumStore.
type Forums struct{ s *Store }

func (st *Forums) Create(_ context.Context, f *models.Forum) (*models.Forum, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextForumID++
	c := *f
	c.ID = s.nextForumID
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	if c.Settings == nil {
		c.Settings = map[string]any{}
	}
	s.forums[c.ID] = &c
	return cloneForum(&c), nil
}

func (st *Forums) FindByID(_ context.Context, id int64) (*models.Forum, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forums[id]
	if !ok {
		return nil, nil
	}
	out := cloneForum(f)
	out.Creator = s.userRef(f.CreatedByUserID)
	return out, nil
}

func (st *Forums) List(_ context.Context) ([]models.Forum, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Forum, 0, len(s.forums))
	for _, f := range s.forums {
		out = append(out, *cloneForum(f))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (st *Forums) Update(_ context.Context, id int64, patch models.ForumPatch) (*models.Forum, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forums[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Description != nil {
		f.Description = patch.Description
	}
	if patch.Settings != nil {
		f.Settings = patch.Settings
	}
	f.UpdatedAt = s.now()
	return cloneForum(f), nil
}

func (st *Forums) Delete(_ context.Context, id int64) error {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forums, id)
	for cid, c := range s.categories {
		if c.ForumID == id {
			delete(s.categories, cid)
		}
	}
	for tid, t := range s.threads {
		if t.ForumID == id {
			s.deleteThreadLocked(tid)
		}
	}
	return nil
}

func (st *Forums) Stats(_ context.Context, id int64) (*models.ForumStats, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &models.ForumStats{ForumID: id}
	for _, c := range s.categories {
		if c.ForumID == id {
			stats.CategoryCount++
		}
	}
	for _, t := range s.threads {
		if t.ForumID == id {
			stats.ThreadCount++
		}
	}
	return stats, nil
}

// Categories implements forum.CategoryStore.
type Categories struct{ s *Store }

func (st *Categories) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCategoryID++
	cc := *c
	cc.ID = s.nextCategoryID
	cc.CreatedAt = s.now()
	cc.UpdatedAt = cc.CreatedAt
	s.categories[cc.ID] = &cc
	out := cc
	return &out, nil
}

func (st *Categories) FindByID(_ context.Context, id int64) (*models.Category, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (st *Categories) ListByForum(_ context.Context, forumID int64) ([]models.Category, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Category
	for _, c := range s.categories {
		if c.ForumID == forumID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (st *Categories) Update(_ context.Context, id int64, patch models.CategoryPatch) (*models.Category, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = patch.Description
	}
	if patch.DisplayOrder != nil {
		c.DisplayOrder = *patch.DisplayOrder
	}
	c.UpdatedAt = s.now()
	out := *c
	return &out, nil
}

func (st *Categories) Delete(_ context.Context, id int64) error {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, id)
	// Threads keep existing, their category reference is unset.
	for _, t := range s.threads {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}
	return nil
}

func (st *Categories) NextDisplayOrder(_ context.Context, forumID int64) (int, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	next := 0
	for _, c := range s.categories {
		if c.ForumID == forumID && c.DisplayOrder >= next {
			next = c.DisplayOrder + 1
		}
	}
	return next, nil
}

// Threads implements forum.ThreadStore.
type Threads struct{ s *Store }

func (st *Threads) Create(_ context.Context, t *models.Thread) (*models.Thread, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *t
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.threads[c.ID] = &c
	return cloneThread(&c), nil
}

func (st *Threads) FindByID(_ context.Context, id uuid.UUID) (*models.Thread, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.threads[id]
	if !ok {
		return nil, nil
	}
	out := cloneThread(t)
	out.User = s.userRef(t.UserID)
	if t.CategoryID != nil {
		if c, ok := s.categories[*t.CategoryID]; ok {
			cc := *c
			out.Category = &cc
		}
	}
	if f, ok := s.forums[t.ForumID]; ok {
		out.Forum = cloneForum(f)
	}
	return out, nil
}

func (st *Threads) ListByForum(_ context.Context, forumID int64, f models.ThreadFilters) ([]models.Thread, int, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Thread
	for _, t := range s.threads {
		if t.ForumID != forumID {
			continue
		}
		if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
			continue
		}
		if f.IsPinned != nil && t.IsPinned != *f.IsPinned {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
			continue
		}
		c := *cloneThread(t)
		c.User = s.userRef(t.UserID)
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].IsPinned != all[j].IsPinned {
			return all[i].IsPinned
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := len(all)
	if f.Offset >= total {
		return []models.Thread{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (st *Threads) Update(_ context.Context, id uuid.UUID, patch models.ThreadPatch) (*models.Thread, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.threads[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Content != nil {
		t.Content = *patch.Content
	}
	if patch.IsPinned != nil {
		t.IsPinned = *patch.IsPinned
	}
	if patch.IsClosed != nil {
		t.IsClosed = *patch.IsClosed
	}
	t.UpdatedAt = s.now()
	return cloneThread(t), nil
}

func (st *Threads) Delete(_ context.Context, id uuid.UUID) error {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteThreadLocked(id)
	return nil
}

// deleteThreadLocked cascades a thread removal to posts and reactions.
func (s *Store) deleteThreadLocked(id uuid.UUID) {
	delete(s.threads, id)
	for pid, p := range s.posts {
		if p.ThreadID == id {
			delete(s.posts, pid)
			delete(s.reactions, pid)
		}
	}
}

func (st *Threads) IncrementViewCount(_ context.Context, id uuid.UUID) (int64, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.threads[id]
	if !ok {
		return 0, nil
	}
	t.ViewCount++
	return t.ViewCount, nil
}

// Posts implements forum.PostStore.
type Posts struct{ s *Store }

func (st *Posts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	s.posts[c.ID] = &c
	return clonePost(&c), nil
}

func (st *Posts) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	out := s.decoratePostLocked(p)
	return out, nil
}

// decoratePostLocked attaches the author summary, the parent snippet (nil
// when the parent was deleted), and the reply count.
func (s *Store) decoratePostLocked(p *models.Post) *models.Post {
	out := clonePost(p)
	out.User = s.userRef(p.UserID)
	if p.ParentPostID != nil {
		if parent, ok := s.posts[*p.ParentPostID]; ok {
			out.ParentPost = &models.ParentPostRef{
				ID:      parent.ID,
				Content: parent.Content,
				UserID:  parent.UserID,
				User:    s.userRef(parent.UserID),
			}
		}
	}
	for _, other := range s.posts {
		if other.ParentPostID != nil && *other.ParentPostID == p.ID {
			out.ReplyCount++
		}
	}
	return out
}

func (st *Posts) ListByThread(_ context.Context, threadID uuid.UUID, f models.PostFilters) ([]models.Post, int, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Post
	for _, p := range s.posts {
		if p.ThreadID == threadID {
			all = append(all, *s.decoratePostLocked(p))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	total := len(all)
	if f.Offset >= total {
		return []models.Post{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (st *Posts) Update(_ context.Context, id uuid.UUID, content string) (*models.Post, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	p.Content = content
	p.UpdatedAt = s.now()
	return s.decoratePostLocked(p), nil
}

func (st *Posts) Delete(_ context.Context, id uuid.UUID) error {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	// Tombstone policy: replies keep their dangling parent reference.
	delete(s.posts, id)
	delete(s.reactions, id)
	return nil
}

// Reactions implements forum.ReactionStore.
type Reactions struct{ s *Store }

func reactionKey(userID int64, t models.ReactionType) string {
	return strconv.FormatInt(userID, 10) + "/" + string(t)
}

func (st *Reactions) Add(_ context.Context, r *models.Reaction) (bool, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	byPost := s.reactions[r.PostID]
	if byPost == nil {
		byPost = map[string]*models.Reaction{}
		s.reactions[r.PostID] = byPost
	}
	key := reactionKey(r.UserID, r.ReactionType)
	if _, exists := byPost[key]; exists {
		return false, nil
	}
	c := *r
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	byPost[key] = &c
	return true, nil
}

func (st *Reactions) Remove(_ context.Context, postID uuid.UUID, userID int64, t models.ReactionType) (bool, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	byPost := s.reactions[postID]
	key := reactionKey(userID, t)
	if _, exists := byPost[key]; !exists {
		return false, nil
	}
	delete(byPost, key)
	return true, nil
}

func (st *Reactions) ListByPost(_ context.Context, postID uuid.UUID) ([]models.Reaction, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Reaction
	for _, r := range s.reactions[postID] {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (st *Reactions) CountsByPost(_ context.Context, postID uuid.UUID) (models.ReactionCounts, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := models.ReactionCounts{}
	for _, r := range s.reactions[postID] {
		counts[r.ReactionType]++
	}
	return counts, nil
}

func (st *Reactions) TypesForUserByPosts(_ context.Context, postIDs []uuid.UUID, userID int64) (map[uuid.UUID][]models.ReactionType, error) {
	s := st.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[uuid.UUID][]models.ReactionType{}
	for _, pid := range postIDs {
		for _, r := range s.reactions[pid] {
			if r.UserID == userID {
				out[pid] = append(out[pid], r.ReactionType)
			}
		}
		sort.Slice(out[pid], func(i, j int) bool { return out[pid][i] < out[pid][j] })
	}
	return out, nil
}

// Counter is an in-memory forum.ReactionCounter. Set Err to simulate a
// counter outage and exercise the service's store fallback.
type Counter struct {
	mu     sync.Mutex
	counts map[uuid.UUID]models.ReactionCounts
	Err    error
}

// NewCounter returns an empty in-memory counter.
func NewCounter() *Counter {
	return &Counter{counts: map[uuid.UUID]models.ReactionCounts{}}
}

func (c *Counter) Increment(_ context.Context, postID uuid.UUID, t models.ReactionType) error {
	if c.Err != nil {
		return c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts[postID] == nil {
		c.counts[postID] = models.ReactionCounts{}
	}
	c.counts[postID][t]++
	return nil
}

func (c *Counter) Decrement(_ context.Context, postID uuid.UUID, t models.ReactionType) error {
	if c.Err != nil {
		return c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts[postID] == nil {
		c.counts[postID] = models.ReactionCounts{}
	}
	c.counts[postID][t]--
	return nil
}

func (c *Counter) Counts(_ context.Context, postID uuid.UUID) (models.ReactionCounts, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := models.ReactionCounts{}
	for t, n := range c.counts[postID] {
		out[t] = n
	}
	return out, nil
}

func (c *Counter) Invalidate(_ context.Context, postID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, postID)
}
