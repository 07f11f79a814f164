// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for schemconvert: the decoded
// clipboard document, format descriptors, and the job, outcome and summary
// records passed between the converter and the session controller.
package types

import (
	"errors"
	"fmt"
)

// MaxDimension is the largest extent a schematic axis may have. Sponge
// schematics store dimensions as unsigned shorts.
const MaxDimension = 65535

// MaxVolume caps the number of block positions in one clipboard. Decoders
// check it before allocating the block grid, since dimensions come from the
// file header.
const MaxVolume = 1 << 24

// AirState is the block state used for positions a format leaves unset.
const AirState = "minecraft:air"

// Clipboard is the in-memory form of one schematic, independent of the
// on-disk format it was read from or will be written to.
type Clipboard struct {
	// Width, Height and Length are the extents along X, Y and Z.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	Length int `json:"length" yaml:"length"`

	// Offset is the paste offset relative to the copy origin.
	Offset [3]int32 `json:"offset" yaml:"offset"`

	// DataVersion is the Minecraft data version the blocks were saved with.
	// Zero means unknown.
	DataVersion int32 `json:"data_version" yaml:"data_version"`

	// Palette maps a palette index to a block state string,
	// e.g. "minecraft:oak_stairs[facing=north,half=bottom]".
	Palette []string `json:"palette" yaml:"palette"`

	// Blocks holds one palette index per position, ordered x, then z, then y
	// (index = x + z*Width + y*Width*Length).
	Blocks []int `json:"blocks" yaml:"blocks,flow"`

	// BlockEntities carries tile data such as chest contents and sign text.
	BlockEntities []BlockEntity `json:"block_entities,omitempty" yaml:"block_entities,omitempty"`

	// Metadata holds format-specific extras (author, name, date) that a
	// target format may or may not be able to represent.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// BlockEntity is the extra data attached to the block at Pos.
type BlockEntity struct {
	Pos  [3]int32       `json:"pos" yaml:"pos,flow"`
	ID   string         `json:"id" yaml:"id"`
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// ErrInvalidClipboard marks a decoded document that violates the model's
// invariants. Codecs wrap it so callers can tell malformed input apart from
// I/O failures.
var ErrInvalidClipboard = errors.New("invalid clipboard")

// Volume returns the number of block positions.
func (c *Clipboard) Volume() int {
	return c.Width * c.Height * c.Length
}

// Index returns the Blocks index for a position.
func (c *Clipboard) Index(x, y, z int) int {
	return x + z*c.Width + y*c.Width*c.Length
}

// Position is the inverse of Index.
func (c *Clipboard) Position(i int) (x, y, z int) {
	layer := c.Width * c.Length
	y = i / layer
	rem := i % layer
	z = rem / c.Width
	x = rem % c.Width
	return x, y, z
}

// StateAt returns the block state at a position.
func (c *Clipboard) StateAt(x, y, z int) string {
	return c.Palette[c.Blocks[c.Index(x, y, z)]]
}

// Validate checks dimensions, block count, palette references and block
// entity positions.
func (c *Clipboard) Validate() error {
	for _, d := range []struct {
		axis string
		v    int
	}{{"width", c.Width}, {"height", c.Height}, {"length", c.Length}} {
		if d.v <= 0 || d.v > MaxDimension {
			return fmt.Errorf("%w: %s %d out of range", ErrInvalidClipboard, d.axis, d.v)
		}
	}
	if c.Volume() > MaxVolume {
		return fmt.Errorf("%w: volume %d exceeds %d", ErrInvalidClipboard, c.Volume(), MaxVolume)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidClipboard)
	}
	for i, s := range c.Palette {
		if s == "" {
			return fmt.Errorf("%w: palette entry %d is empty", ErrInvalidClipboard, i)
		}
	}
	if len(c.Blocks) != c.Volume() {
		return fmt.Errorf("%w: %d blocks for volume %d", ErrInvalidClipboard, len(c.Blocks), c.Volume())
	}
	for i, b := range c.Blocks {
		if b < 0 || b >= len(c.Palette) {
			return fmt.Errorf("%w: block %d references palette index %d of %d", ErrInvalidClipboard, i, b, len(c.Palette))
		}
	}
	for _, be := range c.BlockEntities {
		x, y, z := int(be.Pos[0]), int(be.Pos[1]), int(be.Pos[2])
		if x < 0 || y < 0 || z < 0 || x >= c.Width || y >= c.Height || z >= c.Length {
			return fmt.Errorf("%w: block entity %s at %v outside bounds", ErrInvalidClipboard, be.ID, be.Pos)
		}
	}
	return nil
}

// Equivalent reports whether two clipboards describe the same blocks: equal
// dimensions, the same block state at every position, and the same block
// entities. Palette order, offset, data version and metadata are ignored
// since not every format carries them.
func (c *Clipboard) Equivalent(o *Clipboard) bool {
	if c.Width != o.Width || c.Height != o.Height || c.Length != o.Length {
		return false
	}
	if len(c.Blocks) != len(o.Blocks) {
		return false
	}
	for i := range c.Blocks {
		if c.Palette[c.Blocks[i]] != o.Palette[o.Blocks[i]] {
			return false
		}
	}
	if len(c.BlockEntities) != len(o.BlockEntities) {
		return false
	}
	byPos := make(map[[3]int32]BlockEntity, len(o.BlockEntities))
	for _, be := range o.BlockEntities {
		byPos[be.Pos] = be
	}
	for _, be := range c.BlockEntities {
		other, ok := byPos[be.Pos]
		if !ok || other.ID != be.ID {
			return false
		}
		// fmt prints maps with sorted keys, and prints int32(5) and int(5)
		// alike, so payloads compare equal across codecs.
		if fmt.Sprint(be.Data) != fmt.Sprint(other.Data) {
			return false
		}
	}
	return true
}
