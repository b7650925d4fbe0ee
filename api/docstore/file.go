/* file.go
 * Contains the document store backed by a local directory. Each document is stored as <name>.xml
 */

package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bracket-bot/api/bracket"
)

type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.Dir, name+extension)
}

// Read returns the contents of <Dir>/<name>.xml
func (f *FileStore) Read(_ context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return data, err
}

// Load reads and parses <Dir>/<name>.xml
func (f *FileStore) Load(ctx context.Context, name string) (*bracket.MatchupTree, error) {
	data, err := f.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	return bracket.FromDocument(data)
}

// Save writes the document, creating Dir if needed
func (f *FileStore) Save(_ context.Context, name string, tree *bracket.MatchupTree) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := tree.ToDocument()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", f.Dir, err)
	}
	return os.WriteFile(f.path(name), data, 0o644)
}

// List returns the names of every document in Dir, sorted
func (f *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), extension))
	}
	sort.Strings(names)
	return names, nil
}
