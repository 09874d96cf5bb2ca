// Package errors provides typed errors for conditions the CLI layer
// needs to distinguish when deciding exit behavior.
package errors

import "errors"

// MissingCatalogError indicates that no catalog HTML files were found.
// There is nothing to reconcile against, so the run must abort.
type MissingCatalogError struct {
	DataDir string
}

func (e *MissingCatalogError) Error() string {
	return "no catalog HTML files found in " + e.DataDir
}

// NewMissingCatalogError creates a MissingCatalogError for the given data directory.
func NewMissingCatalogError(dataDir string) *MissingCatalogError {
	return &MissingCatalogError{DataDir: dataDir}
}

// IsMissingCatalogError reports whether err is a MissingCatalogError (even when wrapped).
func IsMissingCatalogError(err error) bool {
	var missingErr *MissingCatalogError
	return errors.As(err, &missingErr)
}
