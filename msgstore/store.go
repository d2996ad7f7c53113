// Package msgstore persists messages for the message service.
package msgstore

import (
	"context"
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/milk9111/msgfall/api"
)

// ErrEmptyMessage is returned when a message has no text.
var ErrEmptyMessage = errors.New("msgstore: empty message")

// Store holds the full message list. Both MemoryStore and SQLiteStore
// implement it.
type Store interface {
	// List returns every message in creation order.
	List(ctx context.Context) ([]api.Message, error)
	// Create stores text under a fresh id and returns the stored record.
	Create(ctx context.Context, text string) (api.Message, error)
	Close() error
}

// newMessage validates text and assigns a time-ordered id.
func newMessage(text string) (api.Message, error) {
	if strings.TrimSpace(text) == "" {
		return api.Message{}, ErrEmptyMessage
	}
	return api.Message{ID: ulid.Make().String(), Text: text}, nil
}
