// Package repository persists poem records. Every backend applies each
// mutation as a single atomic step on one record.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/suryaansh001/shayari-backend/internal/shayari"
)

var ErrNotFound = errors.New("shayari not found")

type Repository interface {
	Insert(ctx context.Context, s *shayari.Shayari) error
	Get(ctx context.Context, id string) (*shayari.Shayari, error)
	// List returns records newest first.
	List(ctx context.Context, publicOnly bool) ([]*shayari.Shayari, error)
	Replace(ctx context.Context, id string, r shayari.Replacement, now time.Time) (*shayari.Shayari, error)
	Delete(ctx context.Context, id string) error
	// IncrementReaction adds one to a single counter of a record that exists
	// and is public. It returns ErrNotFound when no such record matched.
	IncrementReaction(ctx context.Context, id string, e shayari.Emoji, now time.Time) (*shayari.Shayari, error)
	Ping(ctx context.Context) error
}
