package post

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/mrfuxi/gae-blog/internal/platform/apperr"
	"github.com/mrfuxi/gae-blog/internal/platform/dberr"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
	"github.com/mrfuxi/gae-blog/internal/platform/validate"
	"github.com/mrfuxi/gae-blog/pkg/slice"
	"github.com/mrfuxi/gae-blog/pkg/slug"
)

// RecentLimit is the number of posts shown on the home page.
const RecentLimit = 3

var (
	// ErrNotFound is returned when a slug matches zero or several posts.
	ErrNotFound = apperr.NotFound("Post")

	// ErrDuplicateTitle is returned when a new title resolves to an existing post.
	ErrDuplicateTitle = apperr.BadRequest("DUPLICATE_TITLE", "Post with this title already exists")

	// ErrForbidden is returned when a non-administrator attempts a write.
	ErrForbidden = apperr.Forbidden("Forbidden")
)

// # Service Layer

// Service orchestrates lookup, listing and writes of posts.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service] over the given store.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for creation timestamps.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// # Lookups

// MatchSlug returns the posts whose derived slug equals s.
func MatchSlug(posts []*Post, s string) []*Post {
	return slice.Filter(posts, func(post *Post) bool {
		return post.Slug() == s
	})
}

/*
FindBySlug resolves a slug to exactly one post.

An empty slug, no match, and an ambiguous match all yield [ErrNotFound].
Store failures are returned as they are and never reported as not-found.
*/
func (service *Service) FindBySlug(context context.Context, s string) (*Post, error) {
	if s == "" {
		return nil, ErrNotFound
	}

	posts, err := service.repo.ScanAll(context)
	if err != nil {
		return nil, err
	}

	matches := MatchSlug(posts, s)
	if len(matches) != 1 {
		if len(matches) > 1 {
			service.logger.WarnContext(context, "post_slug_ambiguous",
				slog.String("slug", s),
				slog.Int("matches", len(matches)),
			)
		}
		return nil, ErrNotFound
	}

	return matches[0], nil
}

// All returns every post, newest first.
func (service *Service) All(context context.Context) ([]*Post, error) {
	posts, err := service.repo.ScanAll(context)
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, newestFirst)
	return sorted, nil
}

// Recent returns the [RecentLimit] newest posts.
func (service *Service) Recent(context context.Context) ([]*Post, error) {
	posts, err := service.All(context)
	if err != nil {
		return nil, err
	}
	return slice.Take(posts, RecentLimit), nil
}

// # Writes

/*
Save creates a post when targetSlug is empty and updates the post it names otherwise.

Checks run in a fixed order and all of them finish before the store is touched:
  - who must be an administrator, else [ErrForbidden];
  - on update, targetSlug must resolve, else [ErrNotFound];
  - title and body must be non-blank, else VALIDATION_ERROR;
  - on create, the new title must not resolve to a post, else [ErrDuplicateTitle].

Returns the saved post and whether it was created.
*/
func (service *Service) Save(context context.Context, who sec.Identity, targetSlug string, input Input) (*Post, bool, error) {

	// 1. Authorization
	if !who.IsAdmin() {
		return nil, false, ErrForbidden
	}

	// 2. Update target
	var existing *Post
	if targetSlug != "" {
		found, err := service.FindBySlug(context, targetSlug)
		if err != nil {
			return nil, false, err
		}
		existing = found
	}

	// 3. Form validation
	if err := validateInput(input); err != nil {
		return nil, false, err
	}

	if existing != nil {
		return service.overwrite(context, who, existing, input)
	}

	// 4. Duplicate detection on create only
	_, err := service.FindBySlug(context, slug.From(input.Title))
	switch {
	case err == nil:
		return nil, false, ErrDuplicateTitle
	case !errors.Is(err, ErrNotFound):
		return nil, false, err
	}

	return service.create(context, who, input)
}

// Create is [Service.Save] without a target.
func (service *Service) Create(context context.Context, who sec.Identity, input Input) (*Post, error) {
	post, _, err := service.Save(context, who, "", input)
	return post, err
}

// Update is [Service.Save] on an existing slug.
func (service *Service) Update(context context.Context, who sec.Identity, targetSlug string, input Input) (*Post, error) {
	if !who.IsAdmin() {
		return nil, ErrForbidden
	}
	if targetSlug == "" {
		return nil, ErrNotFound
	}
	post, _, err := service.Save(context, who, targetSlug, input)
	return post, err
}

// Delete removes the post identified by s.
func (service *Service) Delete(context context.Context, who sec.Identity, s string) error {
	if !who.IsAdmin() {
		return ErrForbidden
	}

	post, err := service.FindBySlug(context, s)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, post.ID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	service.logger.InfoContext(context, "post_deleted",
		slog.String("post_id", post.ID),
		slog.String("slug", s),
		slog.String("by", who.Name),
	)

	return nil
}

func (service *Service) create(context context.Context, who sec.Identity, input Input) (*Post, bool, error) {
	post := &Post{
		Title:     input.Title,
		Body:      input.Body,
		Author:    who.Name,
		CreatedAt: service.now().UTC(),
	}

	id, err := service.repo.Create(context, post)
	if err != nil {
		return nil, false, err
	}
	post.ID = id

	service.logger.InfoContext(context, "post_created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug()),
		slog.String("by", who.Name),
	)

	return post, true, nil
}

func (service *Service) overwrite(context context.Context, who sec.Identity, existing *Post, input Input) (*Post, bool, error) {
	updated := *existing
	updated.Title = input.Title
	updated.Body = input.Body
	updated.Author = who.Name

	if err := service.repo.Overwrite(context, existing.ID, &updated); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	service.logger.InfoContext(context, "post_updated",
		slog.String("post_id", updated.ID),
		slog.String("from_slug", existing.Slug()),
		slog.String("slug", updated.Slug()),
		slog.String("by", who.Name),
	)

	return &updated, false, nil
}

// validateInput applies the post form rules. Whitespace-only counts as empty.
func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.
		RequiredMsg(FieldTitle, input.Title, "Title is required").
		RequiredMsg(FieldBody, input.Body, "Body is required")
	return validator.Err()
}

// newestFirst orders by creation time, then by ID, both descending.
func newestFirst(a, b *Post) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}
