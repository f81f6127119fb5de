// internal/store/badger.go
//
// Badger Backend: the record blob is one key in an embedded BadgerDB.

package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// BadgerBackend stores the record blob under StorageKey.
type BadgerBackend struct {
	db  *badger.DB
	key []byte
}

// NewBadgerBackend returns a backend using an open BadgerDB.
func NewBadgerBackend(db *badger.DB) *BadgerBackend {
	return &BadgerBackend{db: db, key: []byte(StorageKey)}
}

// OpenBadger opens a BadgerDB at path, or in memory when path is empty.
// Badger's own logging is routed through logger at its matching levels.
func OpenBadger(path string, logger zerolog.Logger) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("create badger directory %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1).WithLogger(badgerLogger{logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return db, nil
}

// Read returns the stored value, or ErrNoData when the key is absent.
func (b *BadgerBackend) Read(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key)
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("badger get %s: %w", b.key, err)
	}
	return blob, nil
}

// Write replaces the stored value.
func (b *BadgerBackend) Write(ctx context.Context, blob []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key, blob)
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", b.key, err)
	}
	return nil
}

// badgerLogger adapts zerolog to badger.Logger.
type badgerLogger struct {
	l zerolog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) { b.l.Error().Msgf(format, args...) }

func (b badgerLogger) Warningf(format string, args ...interface{}) { b.l.Warn().Msgf(format, args...) }

func (b badgerLogger) Infof(format string, args ...interface{}) { b.l.Debug().Msgf(format, args...) }

func (b badgerLogger) Debugf(format string, args ...interface{}) { b.l.Trace().Msgf(format, args...) }
