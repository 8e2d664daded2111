// Package storage loads emitted datasets into external stores for ad-hoc
// analysis.
package storage

import "pavotes/internal/models"

// Writer persists county results somewhere other than the JSON artifact.
type Writer interface {
	WriteDataset(dataset *models.Dataset) error
	Close() error
}
