// Package cache persists inference results across runs.
//
// Each result is a small YAML file named by the hash of its signature. A
// file lock on the directory lets concurrent processes share the store:
// readers take a shared lock, writers an exclusive one.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/hfeeki/numba/infer"
	"github.com/hfeeki/numba/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	ENTRY_SUFFIX = ".yaml"
	LOCK_FILE    = ".lock"
	keyLen       = 16 // hex characters of the hash used as file name
)

// Entry is one cached result. Signature is stored in full so a short-hash
// collision reads as a miss.
type Entry struct {
	Signature string `yaml:"signature"`
	Result    string `yaml:"result"`
}

type Store struct {
	dir string
}

// Open creates dir if needed and returns a store backed by it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create cache dir")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) lock() *flock.Flock {
	return flock.New(filepath.Join(s.dir, LOCK_FILE))
}

func (s *Store) path(signature string) string {
	h := sha256.Sum256([]byte(signature))
	return filepath.Join(s.dir, hex.EncodeToString(h[:])[:keyLen]+ENTRY_SUFFIX)
}

// isEntryFile reports whether name has the form of an entry file name.
func isEntryFile(name string) bool {
	key, ok := strings.CutSuffix(name, ENTRY_SUFFIX)
	if !ok || len(key) != keyLen {
		return false
	}
	_, err := hex.DecodeString(key)
	return err == nil
}

// Get returns the stored result for signature.
func (s *Store) Get(signature string) (string, bool, error) {
	lock := s.lock()
	if err := lock.RLock(); err != nil {
		return "", false, errors.Wrap(err, "acquire cache read lock")
	}
	defer lock.Unlock()

	data, err := os.ReadFile(s.path(signature))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "read cache entry")
	}
	var e Entry
	if err := yaml.Unmarshal(data, &e); err != nil || e.Signature != signature {
		// corrupt entry or hash collision
		return "", false, nil
	}
	return e.Result, true, nil
}

// Put stores result for signature, replacing any previous entry.
func (s *Store) Put(signature, result string) error {
	data, err := yaml.Marshal(Entry{Signature: signature, Result: result})
	if err != nil {
		return errors.Wrap(err, "encode cache entry")
	}

	lock := s.lock()
	if err := lock.Lock(); err != nil {
		return errors.Wrap(err, "acquire cache lock")
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(s.dir, "entry-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create cache entry")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write cache entry")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "write cache entry")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path(signature)), "commit cache entry")
}

// Clean removes the oldest entries beyond the keep most recent, sparing any
// entry younger than minAge. It returns how many entries were removed.
func (s *Store) Clean(keep int, minAge time.Duration) (int, error) {
	lock := s.lock()
	if err := lock.Lock(); err != nil {
		return 0, errors.Wrap(err, "acquire cache lock")
	}
	defer lock.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, errors.Wrap(err, "list cache dir")
	}

	type fileInfo struct {
		name  string
		mtime time.Time
	}
	var files []fileInfo
	for _, e := range entries {
		if e.Type().IsRegular() && isEntryFile(e.Name()) {
			if info, err := e.Info(); err == nil {
				files = append(files, fileInfo{e.Name(), info.ModTime()})
			}
		}
	}
	if len(files) <= keep {
		return 0, nil
	}

	// oldest first
	cutoff := time.Now().Add(-minAge)
	sort.Slice(files, func(i, j int) bool { return files[i].mtime.Before(files[j].mtime) })
	removed := 0
	for i := 0; i < len(files)-keep; i++ {
		if files[i].mtime.Before(cutoff) {
			path := filepath.Join(s.dir, files[i].name)
			if err := os.Remove(path); err != nil {
				fmt.Printf("warning: failed to remove cache entry %s: %v\n", path, err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}

// Inferrer answers signatures from the store, falling back to the engine
// and recording what it computed. Failed inferences are not stored.
type Inferrer struct {
	Store  *Store
	Engine *infer.Engine
}

// Key is the store key of sig. It includes the width of intp.
func (c *Inferrer) Key(sig infer.Signature) string {
	return fmt.Sprintf("%s [intp=%s]", sig, c.Engine.IndexType())
}

// Infer returns the result type of sig and whether it came from the store.
func (c *Inferrer) Infer(sig infer.Signature) (types.Type, bool, error) {
	for _, arg := range sig.Args {
		if arg == nil {
			_, err := c.Engine.Infer(sig)
			return nil, false, err
		}
	}
	key := c.Key(sig)
	if src, ok, err := c.Store.Get(key); err != nil {
		return nil, false, err
	} else if ok {
		if t, err := c.Engine.ParseType(src); err == nil {
			return t, true, nil
		}
	}

	t, err := c.Engine.Infer(sig)
	if err != nil {
		return nil, false, err
	}
	if err := c.Store.Put(key, t.String()); err != nil {
		return nil, false, err
	}
	return t, false, nil
}
