// Package pebblestore persists session carts in an embedded Pebble database.
// Each session owns a single key holding its serialized line sequence, read
// on first touch and overwritten on every mutation.
package pebblestore

import (
	"context"

	"github.com/cockroachdb/pebble"
	"github.com/go-faster/errors"

	"github.com/cafesincuchara/ecommer/internal/domain/cart"
)

const cartKeyPrefix = "cart/"

var _ cart.PortFactory = (*Store)(nil)

// Store wraps the Pebble database holding all session carts.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the cart database in dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "open cart db")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is still usable. Used by the readiness probe.
func (s *Store) Ping() error {
	_, closer, err := s.db.Get([]byte(cartKeyPrefix + "_probe"))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil
		}
		return errors.Wrap(err, "cart db probe")
	}
	return closer.Close()
}

// ForSession returns the persistence port bound to one session's key.
func (s *Store) ForSession(sessionID string) cart.Port {
	return &sessionPort{
		db:  s.db,
		key: []byte(cartKeyPrefix + sessionID),
	}
}

type sessionPort struct {
	db  *pebble.DB
	key []byte
}

// Load reads and decodes the stored line sequence. A missing key is an empty
// cart, not an error.
func (p *sessionPort) Load(_ context.Context) ([]cart.Line, error) {
	val, closer, err := p.db.Get(p.key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read cart")
	}
	defer closer.Close()

	lines, err := decodeLines(val)
	if err != nil {
		return nil, errors.Wrap(err, "decode cart")
	}
	return lines, nil
}

// Save overwrites the stored line sequence. Sync writes: a crash right after
// checkout confirmation must not resurrect a cleared cart.
func (p *sessionPort) Save(_ context.Context, lines []cart.Line) error {
	if err := p.db.Set(p.key, encodeLines(lines), pebble.Sync); err != nil {
		return errors.Wrap(err, "write cart")
	}
	return nil
}
