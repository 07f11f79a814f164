// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/schemconvert/pkg/types"
)

// yamlCodec writes clipboards as human-readable YAML documents.
type yamlCodec struct{}

const (
	yamlFormatTag = "schemconvert"
	yamlVersion   = 1
)

type yamlDocument struct {
	Format          string `yaml:"format"`
	Version         int    `yaml:"version"`
	types.Clipboard `yaml:",inline"`
}

func (yamlCodec) Decode(r io.Reader) (*types.Clipboard, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed("empty document")
		}
		return nil, fmt.Errorf("%w: parsing yaml: %w", ErrMalformed, err)
	}
	if doc.Format != yamlFormatTag {
		return nil, malformed("format %q, want %q", doc.Format, yamlFormatTag)
	}
	if doc.Version != yamlVersion {
		return nil, malformed("version %d not supported", doc.Version)
	}
	cb := doc.Clipboard
	if err := cb.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &cb, nil
}

func (yamlCodec) Encode(w io.Writer, cb *types.Clipboard) error {
	if err := cb.Validate(); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument{Format: yamlFormatTag, Version: yamlVersion, Clipboard: *cb}); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
