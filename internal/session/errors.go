// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"errors"
	"fmt"
)

// Rejection reasons. A rejected Job's Err wraps exactly one of these.
var (
	ErrUsage          = errors.New("not enough arguments")
	ErrUnknownFormat  = errors.New("unknown format")
	ErrFolderNotFound = errors.New("folder not found")
	ErrEmptyBatch     = errors.New("no files found")
)

// Format roles as shown to users.
const (
	RoleSource = "current"
	RoleTarget = "new"
)

// FormatError reports a format name missing from the catalog.
type FormatError struct {
	Role string
	Name string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Unknown %s format: %s", e.Role, e.Name)
}

func (e *FormatError) Unwrap() error { return ErrUnknownFormat }
