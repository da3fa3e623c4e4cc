package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

const (
	usersFile   = "users.json"
	appDataFile = "appdata.json"
	sessionFile = "session.json"
)

// File keeps each document in its own file under dir. Writes go through a
// temp file and rename, so a crash leaves either the old or the new document.
type File struct {
	dir    string
	sealer *Sealer

	mu sync.Mutex
}

type FileOption func(*File)

// WithSealer encrypts every document at rest.
func WithSealer(s *Sealer) FileOption {
	return func(f *File) { f.sealer = s }
}

func NewFile(dir string, opts ...FileOption) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	f := &File{dir: dir}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *File) Load(_ context.Context) (*rental.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users, err := f.read(usersFile)
	if err != nil {
		return nil, err
	}

	data, err := f.read(appDataFile)
	if err != nil {
		return nil, err
	}

	return decodeState(users, data), nil
}

func (f *File) Save(_ context.Context, st *rental.State) error {
	users, data, err := encodeState(st)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.write(usersFile, users); err != nil {
		return err
	}

	return f.write(appDataFile, data)
}

func (f *File) Session(_ context.Context) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := f.read(sessionFile)
	if err != nil {
		return 0, false, err
	}

	id, ok := decodeSession(b)

	return id, ok, nil
}

func (f *File) SetSession(_ context.Context, userID int64) error {
	b, err := encodeSession(userID)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.write(sessionFile, b)
}

func (f *File) ClearSession(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(filepath.Join(f.dir, sessionFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}

	return nil
}

// read returns the document contents, or nil when the file does not exist.
func (f *File) read(name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(f.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	if f.sealer == nil {
		return b, nil
	}

	plain, err := f.sealer.Open(b)
	if err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", name, err)
	}

	return plain, nil
}

func (f *File) write(name string, b []byte) error {
	if f.sealer != nil {
		sealed, err := f.sealer.Seal(b)
		if err != nil {
			return fmt.Errorf("encrypting %s: %w", name, err)
		}

		b = sealed
	}

	path := filepath.Join(f.dir, name)

	tmp, err := os.CreateTemp(f.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}

	return nil
}
