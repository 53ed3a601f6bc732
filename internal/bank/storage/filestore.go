// Package storage owns the backing file for the account store: atomic
// save-with-replace and tolerant load.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"securebank/internal/bank/codec"
	"securebank/internal/bank/domain"
	"securebank/internal/common/logger"
	"securebank/internal/observability/metrics"
)

var ErrSaveTimeout = errors.New("store save timed out")

type FileStore struct {
	path        string
	saveTimeout time.Duration
	log         *logger.Logger
	tmpSeq      atomic.Uint64
}

func NewFileStore(path string, saveTimeout time.Duration, log *logger.Logger) *FileStore {
	return &FileStore{
		path:        path,
		saveTimeout: saveTimeout,
		log:         log,
	}
}

// Load reads and decodes the backing file. A missing file is created as an
// empty store immediately, so a consistent on-disk artifact exists before
// first use. A corrupt file degrades to an empty store: the unreadable
// bytes are copied to <path>.corrupt for inspection and a warning is
// logged, never discarded silently.
func (f *FileStore) Load() (*domain.Store, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		store := domain.NewStore()
		if err := f.persist(store); err != nil {
			return nil, err
		}
		f.log.Infof("created empty store at %s", f.path)
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", f.path, err)
	}

	store, err := codec.Decode(data)
	if err != nil {
		if errors.Is(err, codec.ErrCorruptStore) {
			f.quarantine(data)
			metrics.StoreCorruptionsTotal.Inc()
			f.log.Warnf("store %s is corrupt, starting empty (original preserved at %s.corrupt): %v", f.path, f.path, err)
			return domain.NewStore(), nil
		}
		return nil, err
	}

	return store, nil
}

// saveAttempt arbitrates between a bounded save and the goroutine doing
// the write. Exactly one side wins, decided under the mutex: once an
// attempt is abandoned its tmp file is deleted instead of renamed, so a
// save reported as timed out can never land on disk afterwards and
// clobber newer state.
type saveAttempt struct {
	mu        sync.Mutex
	abandoned bool
	committed bool
}

// abandon marks the attempt dead and reports whether it got there before
// the rename. A false return means the write already committed.
func (a *saveAttempt) abandon() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.committed {
		return false
	}
	a.abandoned = true
	return true
}

// Save encodes the store and replaces the backing file atomically: bytes
// go to a uniquely named tmp file first, then a rename swaps them in, so
// a crash never leaves a half-written file under the canonical name. The
// write is bounded by the configured save timeout; a timed-out write is
// abandoned before it can rename, never after.
func (f *FileStore) Save(ctx context.Context, store *domain.Store) error {
	data, err := codec.Encode(store)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.saveTimeout)
	defer cancel()

	attempt := &saveAttempt{}
	done := make(chan error, 1)
	go func() {
		done <- f.writeBounded(attempt, data)
	}()

	select {
	case <-ctx.Done():
		if attempt.abandon() {
			metrics.StoreSaveFailuresTotal.Inc()
			return fmt.Errorf("%w after %v", ErrSaveTimeout, f.saveTimeout)
		}
		// The rename won the race with the deadline; the store is on
		// disk, so report what the writer saw.
		err = <-done
	case err = <-done:
	}

	if err != nil {
		metrics.StoreSaveFailuresTotal.Inc()
		return fmt.Errorf("write store %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) persist(store *domain.Store) error {
	data, err := codec.Encode(store)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := f.writeAtomic(data); err != nil {
		return fmt.Errorf("write store %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) writeAtomic(data []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// writeBounded is writeAtomic for a save that may be abandoned. The tmp
// name is unique per attempt so a straggler never collides with a later
// save, and the rename happens under the attempt's mutex.
func (f *FileStore) writeBounded(attempt *saveAttempt, data []byte) error {
	tmp := fmt.Sprintf("%s.tmp.%d", f.path, f.tmpSeq.Add(1))
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	attempt.mu.Lock()
	defer attempt.mu.Unlock()
	if attempt.abandoned {
		os.Remove(tmp)
		return nil
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return err
	}
	attempt.committed = true
	return nil
}

func (f *FileStore) quarantine(data []byte) {
	if err := os.WriteFile(f.path+".corrupt", data, 0o600); err != nil {
		f.log.Errorf("failed to preserve corrupt store copy: %v", err)
	}
}
