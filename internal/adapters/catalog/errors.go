package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrCatalog          = errors.New("catalog error")
)
