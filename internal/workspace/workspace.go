// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace confines file access to a single data root. Folder
// names supplied by users are resolved inside the root and can never reach
// outside it, whether through absolute paths, ".." segments or symlinks.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// SourceExtension selects the files a batch picks up.
const SourceExtension = ".schem"

var (
	// ErrOutsideRoot is returned for names that would escape the data root.
	ErrOutsideRoot = errors.New("path escapes data root")

	// ErrNotFolder is returned when a name does not resolve to an existing
	// directory.
	ErrNotFolder = errors.New("folder does not exist")
)

// Workspace is a data root directory.
type Workspace struct {
	root string
}

// New returns a workspace rooted at dir, creating the directory if needed.
func New(dir string) (*Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving data root %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating data root %s: %w", abs, err)
	}
	return &Workspace{root: abs}, nil
}

// Root returns the absolute data root.
func (w *Workspace) Root() string {
	return w.root
}

// join resolves name under base without leaving the root.
func (w *Workspace) join(base, name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, name)
	}
	rel, err := filepath.Rel(w.root, filepath.Join(base, name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, name)
	}
	p, err := securejoin.SecureJoin(w.root, rel)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", name, err)
	}
	return p, nil
}

// Resolve returns the absolute path of the existing folder name inside the
// root.
func (w *Workspace) Resolve(name string) (string, error) {
	p, err := w.join(w.root, name)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotFolder, name)
	}
	return p, nil
}

// OutputDir resolves sub inside folder, creating it if absent. folder must
// be a path returned by Resolve.
func (w *Workspace) OutputDir(folder, sub string) (string, error) {
	p, err := w.join(folder, sub)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(p, 0o755); err != nil {
		return "", fmt.Errorf("creating output folder %s: %w", sub, err)
	}
	return p, nil
}

// Discover lists the regular files directly inside folder whose extension
// is SourceExtension, sorted by name. Subdirectories are not searched.
func (w *Workspace) Discover(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", folder, err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != SourceExtension {
			continue
		}
		files = append(files, filepath.Join(folder, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Folders returns the names of the directories in the root starting with
// prefix, compared case-insensitively, sorted. Errors yield no candidates.
func (w *Workspace) Folders(prefix string) []string {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil
	}
	lower := strings.ToLower(prefix)
	var out []string
	for _, e := range entries {
		if !e.IsDir() && e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 {
			if _, err := w.Resolve(e.Name()); err != nil {
				continue
			}
		}
		if strings.HasPrefix(strings.ToLower(e.Name()), lower) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}
