/*
Package post implements the blog's post entity manager.

A post is addressed publicly by a slug derived from its title. The slug is
never stored; it is recomputed on every read, and a lookup only succeeds when
exactly one post carries the requested slug.

Only administrators may write. The caller identity is passed explicitly into
every mutating [Service] method.
*/
package post

import (
	"encoding/json"
	"time"

	"github.com/mrfuxi/gae-blog/pkg/slug"
)

// Form and JSON field identifiers used in validation details.
const (
	FieldTitle = "title"
	FieldBody  = "body"
)

// Post is a single blog entry.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// Slug returns the URL identifier derived from the current title.
func (post *Post) Slug() string {
	return slug.From(post.Title)
}

// URL returns the canonical page address of the post.
func (post *Post) URL() string {
	return "/blog/post/" + post.Slug() + "/"
}

// MarshalJSON includes the derived slug in API responses.
func (post *Post) MarshalJSON() ([]byte, error) {
	type plain Post
	return json.Marshal(struct {
		*plain
		Slug string `json:"slug"`
	}{
		plain: (*plain)(post),
		Slug:  post.Slug(),
	})
}

// Input carries the user-editable fields of a create or update.
// Author and timestamps are never taken from the client.
type Input struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
