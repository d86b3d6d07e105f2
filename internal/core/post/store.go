package post

import "context"

// Repository is the store boundary for posts.
//
// Single-record writes are atomic; nothing else is assumed. Overwrite and
// Delete return [dberr.ErrNotFound] for unknown IDs.
type Repository interface {
	// Create persists a new post and returns its assigned ID.
	Create(context context.Context, post *Post) (string, error)
	// Overwrite replaces title, body and author of an existing post.
	// ID and CreatedAt are preserved.
	Overwrite(context context.Context, id string, post *Post) error
	// Delete removes a post permanently.
	Delete(context context.Context, id string) error
	// ScanAll returns every post, newest first.
	ScanAll(context context.Context) ([]*Post, error)
}

// Cache holds versioned snapshots of [Repository.ScanAll].
//
// Every write bumps the version. A scan is stored under the version read
// before it started, so a scan that raced a write lands under a version no
// reader asks for anymore.
type Cache interface {
	// Version returns the current scan version.
	Version(context context.Context) (uint64, error)
	// Load returns the scan cached for version. ok is false on a miss.
	Load(context context.Context, version uint64) (posts []*Post, ok bool, err error)
	// Store caches posts as the scan for version.
	Store(context context.Context, version uint64, posts []*Post) error
	// Invalidate bumps the version.
	Invalidate(context context.Context) error
}
