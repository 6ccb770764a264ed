package domain

import "errors"

// ErrNotFound is returned by repositories when a single-row lookup matches
// nothing. It is the only backend error callers are allowed to branch on;
// everything else propagates unmodified.
var ErrNotFound = errors.New("record not found")
