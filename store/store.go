// Package store keeps named record images in a bbolt file.
//
// Each Put encodes the record bytes as an image (see package image) so what
// lands on disk carries its own length, checksum and compression. Get
// verifies the image before handing back a fixed RawBuffer.
package store

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.etcd.io/bbolt"

	"github.com/kansasdcf/legacyrec/buffer"
	"github.com/kansasdcf/legacyrec/compress"
	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/image"
	"github.com/kansasdcf/legacyrec/internal/options"
)

var recordsBucket = []byte("records")

// Store is a bbolt-backed map from record names to record images.
// It is safe for concurrent use.
type Store struct {
	db          *bbolt.DB
	compression format.CompressionType
	timeout     time.Duration
	logger      zerolog.Logger
}

// Option configures a Store.
type Option = options.Option[*Store]

// WithCompression sets the payload compression of images written by Put.
// The default is zstd.
func WithCompression(ct format.CompressionType) Option {
	return func(s *Store) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		s.compression = ct

		return nil
	}
}

// WithTimeout bounds how long Open waits for the file lock.
func WithTimeout(d time.Duration) Option {
	return options.NoError(func(s *Store) {
		s.timeout = d
	})
}

// WithLogger sets the logger for store events.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(s *Store) {
		s.logger = logger
	})
}

// Open opens or creates the store file at path.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		compression: format.CompressionZstd,
		timeout:     time.Second,
		logger:      zerolog.Nop(),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: s.timeout})
	if err != nil {
		return nil, fmt.Errorf("open record store %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init record store %s: %w", path, err)
	}
	s.db = db
	s.logger.Debug().Str("path", path).Str("compression", s.compression.String()).Msg("record store opened")

	return s, nil
}

// Close releases the store file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores the bytes of rb under name, replacing any previous image.
func (s *Store) Put(name string, rb *buffer.RawBuffer) error {
	if rb == nil {
		return errs.Argumentf("buffer", "must not be nil")
	}

	return s.PutBytes(name, rb.Bytes())
}

// PutBytes stores raw record bytes under name.
func (s *Store) PutBytes(name string, raw []byte) error {
	if name == "" {
		return errs.Argumentf("name", "must not be empty")
	}
	data, err := image.Encode(raw, s.compression)
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(name), data)
	})
	if err != nil {
		return fmt.Errorf("put record %q: %w", name, err)
	}
	s.logger.Debug().Str("name", name).Int("raw", len(raw)).Int("stored", len(data)).Msg("record stored")

	return nil
}

// Get returns the record stored under name as a fixed buffer.
func (s *Store) Get(name string) (*buffer.RawBuffer, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(recordsBucket).Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%w: %q", errs.ErrImageNotFound, name)
		}
		// v is only valid inside the transaction.
		data = make([]byte, len(v))
		copy(data, v)

		return nil
	})
	if err != nil {
		return nil, err
	}

	rb, err := image.DecodeBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", name, err)
	}

	return rb, nil
}

// Delete removes the record stored under name.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(recordsBucket)
		if b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %q", errs.ErrImageNotFound, name)
		}

		return b.Delete([]byte(name))
	})
}

// Names returns the stored record names in byte order.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(recordsBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

// Header returns the image header of the record stored under name without
// decoding its payload.
func (s *Store) Header(name string) (image.Header, error) {
	var h image.Header
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(recordsBucket).Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%w: %q", errs.ErrImageNotFound, name)
		}
		var perr error
		h, perr = image.ParseHeader(v)

		return perr
	})

	return h, err
}
