// Package repository contains data access logic separated from HTTP handlers.
// This file defines sentinel errors reused across repositories so handlers
// can map failure scenarios onto HTTP status codes.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a row cannot be located. Handlers translate
// it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint (email, slug). Handlers translate it into HTTP 409.
var ErrDuplicate = errors.New("duplicate")

// ErrNoAssignment is returned by the role repository when a user has no
// role-assignment row. Callers treat it as the implicit "user" role; it is
// deliberately distinct from ErrNotFound so that staff gating can fail closed
// on real lookup errors without inventing a role for them.
var ErrNoAssignment = errors.New("no role assignment")

// isDuplicateErr detects MySQL error 1062 (duplicate entry).
func isDuplicateErr(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
