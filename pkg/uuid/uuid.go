// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

/*
Package uuid provides time-ordered unique identifiers for the blog.

It wraps the standard UUID library to generate Version 7 values. Post IDs,
user IDs, token IDs and request IDs all come from here.

Advantages:

  - Sortable: Naturally ordered by creation time, so newest-first listings can
    break created_at ties by comparing IDs.
  - Friendly: B-tree optimal primary keys in PostgreSQL.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// # Validation

// Valid reports whether s is a well-formed UUID string.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
