// Package registry reads and writes the path-addressed identifier
// registry. Two backends are provided: AWS SSM Parameter Store and Consul KV.
package registry

import (
	"context"
	"errors"
	"iter"

	"github.com/GriffinCanCode/botsync/internal/shared/paging"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

// ErrNotFound is returned by Get when the path has no value.
var ErrNotFound = errors.New("registry: path not found")

// EntryPage is one page of a prefix scan.
type EntryPage struct {
	Entries   []types.RegistryEntry
	NextToken string
}

// Store is a path-addressed key/value registry with last-write-wins
// semantics.
type Store interface {
	// GetByPrefix returns one page of entries under prefix, recursively.
	GetByPrefix(ctx context.Context, prefix, token string) (EntryPage, error)
	// Get returns the value at path or ErrNotFound.
	Get(ctx context.Context, path string) (string, error)
	// Put overwrites the value at path.
	Put(ctx context.Context, path, value string) error
}

// Scan drains every page of a prefix scan.
func Scan(ctx context.Context, s Store, prefix string) iter.Seq2[types.RegistryEntry, error] {
	return paging.Drain(func(token string) ([]types.RegistryEntry, string, error) {
		page, err := s.GetByPrefix(ctx, prefix, token)
		return page.Entries, page.NextToken, err
	})
}

// IsExpected reports whether err is an expected registry outcome that
// should not count against the backend's health.
func IsExpected(err error) bool {
	return err == nil || errors.Is(err, ErrNotFound)
}
