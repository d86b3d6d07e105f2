// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost of every stored account password.
const PasswordCost = bcrypt.DefaultCost

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var (
	ErrEmptyPassword   = errors.New("sec: password is empty")
	ErrPasswordTooLong = fmt.Errorf("sec: password exceeds %d bytes", MaxPasswordBytes)
)

// HashPassword hashes an account password at [PasswordCost].
func HashPassword(plainTextPassword string) (string, error) {
	switch {
	case plainTextPassword == "":
		return "", ErrEmptyPassword
	case len(plainTextPassword) > MaxPasswordBytes:
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a login password with a stored hash.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	if len(plainTextPassword) > MaxPasswordBytes {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// NeedsRehash reports whether a stored hash was produced at another cost
// (or is not a bcrypt hash at all) and should be replaced on the next write.
func NeedsRehash(existingHash string) bool {
	cost, err := bcrypt.Cost([]byte(existingHash))
	return err != nil || cost != PasswordCost
}
