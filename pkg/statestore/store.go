// Package statestore persists named collapse states.
//
// A Record couples a collapse state with an identifier, an optional
// human-readable name, and timestamps, so a view of a document can be saved
// and restored later from the CLI or across requests in the HTTP server.
//
// Three backends implement the Store interface:
//   - memory: in-process storage for tests and single-run servers
//   - file: JSON files in a config directory for CLI usage
//   - redis: shared storage for multi-instance server deployments
//
// Records never validate their paths against a tree; a record saved for one
// document may be applied to another, where unknown paths are simply inert.
package statestore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/jsonscope/pkg/collapse"
)

// Record is a persisted collapse state.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Paths     []string  `json:"paths"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRecord creates a record for the given state with a fresh UUID.
func NewRecord(name string, state collapse.State) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Paths:     state.Paths(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// State reconstructs the collapse state held by the record.
func (r *Record) State() collapse.State {
	return collapse.FromPaths(r.Paths)
}

// SetState replaces the record's paths and bumps its update timestamp.
func (r *Record) SetState(state collapse.State) {
	r.Paths = state.Paths()
	r.UpdatedAt = time.Now().UTC()
}

// Store is the interface for collapse state storage backends.
type Store interface {
	// Get retrieves a record by ID. Returns nil, nil if it doesn't exist.
	Get(ctx context.Context, id string) (*Record, error)

	// Set stores a record, overwriting any existing record with the same ID.
	Set(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all records, in unspecified order.
	List(ctx context.Context) ([]*Record, error)

	// Close releases backend resources.
	Close() error
}
