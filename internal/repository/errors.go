package repository

import "errors"

// ErrNotConfigured is returned by the Gateway when no database connection
// string was supplied. Surfaced so misconfiguration shows up as a clear
// diagnostic instead of a silent connection failure.
var ErrNotConfigured = errors.New("database connection string is not configured (set DATABASE_URL)")
