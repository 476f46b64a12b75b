// Package journal records the documents exchanged with the api so failed calls can be inspected later.
package journal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	KeyPrefix = "wca-exchange-"
	KeySuffix = ".xml"

	keyTimeLayout = "20060102T150405.000000000Z"
)

type (
	Journal struct {
		l       *zap.Logger
		storage Storage
		dir     string // directory used for default filesystem storage
		limit   int
		mu      sync.Mutex
	}
	Option func(*Journal)
)

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

// JournalWithLimit keeps only the newest v exchanges; v <= 0 keeps all
func JournalWithLimit(v int) Option {
	return func(o *Journal) {
		o.limit = v
	}
}

func JournalWithDir(v string) Option {
	return func(o *Journal) {
		o.dir = v
	}
}

func JournalWithStorage(s Storage) Option {
	return func(o *Journal) {
		o.storage = s
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func New(l *zap.Logger, opts ...Option) (*Journal, error) {
	inst := &Journal{
		l:     l.Named("journal"),
		limit: 100,
	}

	for _, opt := range opts {
		opt(inst)
	}

	if inst.storage == nil {
		if inst.dir == "" {
			dir, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			inst.dir = dir
		}
		storage, err := NewFilesystemStorage(inst.dir)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create default filesystem storage")
		}
		inst.storage = storage
	}

	return inst, nil
}

// DefaultDir is the journal directory in the user cache
func DefaultDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve user cache dir")
	}
	return filepath.Join(cache, "wca", "journal"), nil
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Record stores e and drops exchanges beyond the limit. Missing ids and times are filled in.
func (j *Journal) Record(ctx context.Context, e *Exchange) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	data, err := e.MarshalXML()
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal exchange")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	key := e.Key()
	if err := j.storage.Write(ctx, key, data); err != nil {
		return "", errors.Wrap(err, "failed to write exchange")
	}
	j.l.Debug("recorded exchange", zap.String("key", key), zap.String("method", e.Method))

	if err := j.cleanup(ctx); err != nil {
		return key, errors.Wrap(err, "failed to clean up journal")
	}
	return key, nil
}

// List returns the keys of all exchanges, newest first
func (j *Journal) List(ctx context.Context) ([]string, error) {
	keys, err := j.storage.List(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasSuffix(key, KeySuffix) {
			ret = append(ret, key)
		}
	}
	return ret, nil
}

// Get reads an exchange; a missing key returns os.ErrNotExist
func (j *Journal) Get(ctx context.Context, key string) (*Exchange, error) {
	data, err := j.storage.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	e, err := UnmarshalExchange(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read exchange %q", key)
	}
	return e, nil
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.storage.Close()
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (j *Journal) cleanup(ctx context.Context) error {
	if j.limit <= 0 {
		return nil
	}
	keys, err := j.List(ctx)
	if err != nil {
		return err
	}
	if len(keys) <= j.limit {
		return nil
	}
	var errs error
	for _, key := range keys[j.limit:] {
		j.l.Debug("removing outdated exchange", zap.String("key", key))
		if err := j.storage.Delete(ctx, key); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "could not remove %s", key))
		}
	}
	return errs
}
