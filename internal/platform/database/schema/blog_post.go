package schema

// BlogPostTable represents the 'blog.post' table.
// There is no slug column: slugs are derived from the title on read.
type BlogPostTable struct {
	Table     string
	ID        string
	Title     string
	Body      string
	Author    string
	CreatedAt string
}

// BlogPost is the schema definition for blog.post
var BlogPost = BlogPostTable{
	Table:     "blog.post",
	ID:        "id",
	Title:     "title",
	Body:      "body",
	Author:    "author",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t BlogPostTable) Columns() []string {
	return []string{t.ID, t.Title, t.Body, t.Author, t.CreatedAt}
}
