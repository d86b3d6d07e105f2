package post

import (
	"context"
	"slices"
	"sync"

	"github.com/mrfuxi/gae-blog/internal/platform/dberr"
	"github.com/mrfuxi/gae-blog/pkg/uuid"
)

// MemoryRepository is a process-local [Repository].
// It backs tests and local runs without PostgreSQL.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]Post
}

// NewMemoryRepository returns an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{posts: make(map[string]Post)}
}

func (repository *MemoryRepository) Create(_ context.Context, post *Post) (string, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored := *post
	if stored.ID == "" {
		stored.ID = uuid.New()
	}
	repository.posts[stored.ID] = stored

	return stored.ID, nil
}

func (repository *MemoryRepository) Overwrite(_ context.Context, id string, post *Post) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.posts[id]
	if !ok {
		return dberr.ErrNotFound
	}

	stored.Title = post.Title
	stored.Body = post.Body
	stored.Author = post.Author
	repository.posts[id] = stored

	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.posts[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.posts, id)

	return nil
}

func (repository *MemoryRepository) ScanAll(_ context.Context) ([]*Post, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	posts := make([]*Post, 0, len(repository.posts))
	for _, stored := range repository.posts {
		copied := stored
		posts = append(posts, &copied)
	}
	slices.SortFunc(posts, newestFirst)

	return posts, nil
}
