// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codec reads and writes clipboards in each supported on-disk format.
//
// Codecs are looked up by canonical format name through a closed table; the
// set of formats is fixed at build time and mirrors the format catalog.
package codec

//go:generate mockgen -destination=mocks/mock_codec.go -package=mocks -source=codec.go Codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/schemconvert/internal/format"
	"github.com/pdiddy/schemconvert/pkg/types"
)

// Codec decodes a clipboard from and encodes it to one on-disk format.
// Implementations are stateless and safe for concurrent use.
type Codec interface {
	// Decode reads a complete document from r.
	Decode(r io.Reader) (*types.Clipboard, error)

	// Encode writes cb to w.
	Encode(w io.Writer, cb *types.Clipboard) error
}

var (
	// ErrNoCodec is returned by For when a format has no codec.
	ErrNoCodec = errors.New("no codec for format")

	// ErrMalformed marks input that could not be parsed as the expected format.
	ErrMalformed = errors.New("malformed schematic")
)

var codecs = map[string]Codec{
	format.FastV3:    spongeCodec{version: 3},
	format.FastV2:    spongeCodec{version: 2},
	format.SpongeV3:  spongeCodec{version: 3},
	format.SpongeV2:  spongeCodec{version: 2},
	format.SpongeV1:  spongeCodec{version: 1},
	format.Structure: structureCodec{},
	format.YAML:      yamlCodec{},
}

// For returns the codec registered for a format descriptor.
func For(desc types.FormatDescriptor) (Codec, error) {
	c, ok := codecs[desc.Name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrNoCodec, desc.Name)
	}
	return c, nil
}

// Load opens path, decodes it with c and closes the file on every path.
func Load(c Codec, path string) (*types.Clipboard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cb, err := c.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return cb, nil
}

// Save encodes cb with c into a temporary file next to path and renames it
// over path. An existing file at path is replaced. On failure, including a
// panic inside Encode, the temporary file is closed and removed and path is
// left untouched.
func Save(c Codec, path string, cb *types.Clipboard) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".schemconvert-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	closed, renamed := false, false
	defer func() {
		if !closed {
			tmp.Close()
		}
		if !renamed {
			os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := c.Encode(bw, cb); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	renamed = true
	return nil
}

// compactPalette returns a palette holding only the states cb uses, in order
// of first use, together with the blocks remapped onto it. Duplicate palette
// entries collapse into one.
func compactPalette(cb *types.Clipboard) ([]string, []int) {
	index := make(map[string]int)
	var palette []string
	blocks := make([]int, len(cb.Blocks))
	for i, b := range cb.Blocks {
		state := cb.Palette[b]
		idx, ok := index[state]
		if !ok {
			idx = len(palette)
			index[state] = idx
			palette = append(palette, state)
		}
		blocks[i] = idx
	}
	return palette, blocks
}

func malformed(msg string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(msg, args...))
}
