package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrfuxi/gae-blog/internal/platform/database/schema"
)

/*
TestList verifies the column lists used by the post and account queries.
*/
func TestList(t *testing.T) {
	assert.Equal(t, "id, title, body, author, createdat", schema.List(schema.BlogPost.Columns()))
	assert.Equal(t, "id, username, passwordhash, role, createdat", schema.List(schema.UserAccount.Columns()))
	assert.Equal(t, "", schema.List(nil))
}

/*
TestPlaceholders verifies positional parameter lists.
*/
func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1, $2, $3, $4, $5", schema.Placeholders(len(schema.BlogPost.Columns())))
	assert.Equal(t, "$1", schema.Placeholders(1))
	assert.Equal(t, "", schema.Placeholders(0))
}

/*
TestAsText verifies that only the named column is cast.
*/
func TestAsText(t *testing.T) {
	columns := schema.AsText(schema.BlogPost.Columns(), schema.BlogPost.ID)

	assert.Equal(t, "id::text, title, body, author, createdat", schema.List(columns))
	assert.Equal(t, []string{"id", "title", "body", "author", "createdat"}, schema.BlogPost.Columns())
}
