package post

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type memTxKey struct{}

type memTx struct {
	readOnly bool
}

var errReadOnlyTx = errors.New("post/memory: write inside a read-only transaction")

// MemoryRepo is a process-local store for development and tests. A
// transaction holds the store lock for its whole callback and restores the
// previous state when the callback fails.
type MemoryRepo struct {
	mu     sync.RWMutex
	posts  []*Post
	lastId PostId
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Insert(ctx context.Context, p *Post) (PostId, error) {
	unlock, err := r.lock(ctx, true)
	if err != nil {
		return 0, err
	}
	defer unlock()

	r.lastId++
	stored := clonePost(p)
	stored.Id = r.lastId
	r.posts = append(r.posts, stored)
	return stored.Id, nil
}

func (r *MemoryRepo) FindById(ctx context.Context, id PostId) (*Post, error) {
	unlock, _ := r.lock(ctx, false)
	defer unlock()

	if i := r.index(id); i >= 0 {
		return clonePost(r.posts[i]), nil
	}
	return nil, ErrNotFound
}

func (r *MemoryRepo) FindAllOrdered(ctx context.Context) ([]*Post, error) {
	unlock, _ := r.lock(ctx, false)
	defer unlock()

	posts := make([]*Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, clonePost(p))
	}
	// r.posts is kept in insertion order, so a stable sort keeps ties in it.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].SortOrder < posts[j].SortOrder
	})
	return posts, nil
}

func (r *MemoryRepo) ExistsById(ctx context.Context, id PostId) (bool, error) {
	unlock, _ := r.lock(ctx, false)
	defer unlock()

	return r.index(id) >= 0, nil
}

func (r *MemoryRepo) Replace(ctx context.Context, id PostId, p *Post) error {
	unlock, err := r.lock(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	i := r.index(id)
	if i < 0 {
		return ErrNotFound
	}
	stored := clonePost(p)
	stored.Id = id
	r.posts[i] = stored
	return nil
}

func (r *MemoryRepo) DeleteById(ctx context.Context, id PostId) error {
	unlock, err := r.lock(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	i := r.index(id)
	if i < 0 {
		return ErrNotFound
	}
	r.posts = append(r.posts[:i:i], r.posts[i+1:]...)
	return nil
}

func (r *MemoryRepo) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		return fn(ctx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot, lastId := append([]*Post(nil), r.posts...), r.lastId
	if err := fn(context.WithValue(ctx, memTxKey{}, &memTx{})); err != nil {
		r.posts, r.lastId = snapshot, lastId
		return err
	}
	return nil
}

func (r *MemoryRepo) WithReadTx(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		return fn(ctx)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return fn(context.WithValue(ctx, memTxKey{}, &memTx{readOnly: true}))
}

func (r *MemoryRepo) Ping(context.Context) error {
	return nil
}

// lock takes the store lock unless ctx already carries a transaction that
// holds it. The returned func releases whatever was taken.
func (r *MemoryRepo) lock(ctx context.Context, write bool) (func(), error) {
	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		if write && tx.readOnly {
			return func() {}, errReadOnlyTx
		}
		return func() {}, nil
	}
	if write {
		r.mu.Lock()
		return r.mu.Unlock, nil
	}
	r.mu.RLock()
	return r.mu.RUnlock, nil
}

func (r *MemoryRepo) index(id PostId) int {
	for i, p := range r.posts {
		if p.Id == id {
			return i
		}
	}
	return -1
}

// clonePost copies everything a caller could mutate.
func clonePost(p *Post) *Post {
	c := *p
	c.Location = copyString(p.Location)
	c.Hashtags = copyStrings(p.Hashtags)
	c.CodeSnippet = p.CodeSnippet.Clone()
	c.ImageContent = p.ImageContent.Clone()
	return &c
}
