// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"fmt"
	"io"

	"github.com/pdiddy/schemconvert/pkg/types"
)

// spongeCodec implements the Sponge schematic formats, versions 1 to 3.
// FAWE's "fast" formats write the same layout and share this codec.
type spongeCodec struct {
	version int32
}

// spongeV3File wraps the v3 body, which sits in a "Schematic" compound under
// an unnamed root.
type spongeV3File struct {
	Schematic spongeV3 `nbt:"Schematic"`
}

type spongeV3 struct {
	Version     int32             `nbt:"Version"`
	DataVersion int32             `nbt:"DataVersion"`
	Width       int16             `nbt:"Width"`
	Height      int16             `nbt:"Height"`
	Length      int16             `nbt:"Length"`
	Offset      []int32           `nbt:"Offset"`
	Metadata    map[string]any    `nbt:"Metadata"`
	Blocks      spongeV3Container `nbt:"Blocks"`
}

type spongeV3Container struct {
	Palette       map[string]int32      `nbt:"Palette"`
	Data          []byte                `nbt:"Data"`
	BlockEntities []spongeV3BlockEntity `nbt:"BlockEntities"`
}

type spongeV3BlockEntity struct {
	Pos  []int32        `nbt:"Pos"`
	ID   string         `nbt:"Id"`
	Data map[string]any `nbt:"Data"`
}

// spongeV2 is the root "Schematic" compound of a version 2 file. Block
// entity fields are stored flat next to Pos and Id.
type spongeV2 struct {
	Version       int32            `nbt:"Version"`
	DataVersion   int32            `nbt:"DataVersion"`
	Width         int16            `nbt:"Width"`
	Height        int16            `nbt:"Height"`
	Length        int16            `nbt:"Length"`
	Offset        []int32          `nbt:"Offset"`
	Metadata      map[string]any   `nbt:"Metadata"`
	PaletteMax    int32            `nbt:"PaletteMax"`
	Palette       map[string]int32 `nbt:"Palette"`
	BlockData     []byte           `nbt:"BlockData"`
	BlockEntities []map[string]any `nbt:"BlockEntities"`
}

// spongeV1 predates DataVersion and calls block entities tile entities.
type spongeV1 struct {
	Version      int32            `nbt:"Version"`
	Width        int16            `nbt:"Width"`
	Height       int16            `nbt:"Height"`
	Length       int16            `nbt:"Length"`
	Offset       []int32          `nbt:"Offset"`
	Metadata     map[string]any   `nbt:"Metadata"`
	PaletteMax   int32            `nbt:"PaletteMax"`
	Palette      map[string]int32 `nbt:"Palette"`
	BlockData    []byte           `nbt:"BlockData"`
	TileEntities []map[string]any `nbt:"TileEntities"`
}

const spongeRoot = "Schematic"

func (c spongeCodec) Decode(r io.Reader) (*types.Clipboard, error) {
	var (
		cb  *types.Clipboard
		err error
	)
	switch c.version {
	case 3:
		cb, err = decodeSpongeV3(r)
	case 2:
		cb, err = decodeSpongeV2(r)
	case 1:
		cb, err = decodeSpongeV1(r)
	default:
		return nil, fmt.Errorf("sponge version %d not supported", c.version)
	}
	if err != nil {
		return nil, err
	}
	if err := cb.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return cb, nil
}

func (c spongeCodec) Encode(w io.Writer, cb *types.Clipboard) error {
	if err := cb.Validate(); err != nil {
		return err
	}
	palette, blocks := compactPalette(cb)
	paletteMap := make(map[string]int32, len(palette))
	for i, s := range palette {
		paletteMap[s] = int32(i)
	}
	width, height, length := int16(uint16(cb.Width)), int16(uint16(cb.Height)), int16(uint16(cb.Length))
	offset := []int32{cb.Offset[0], cb.Offset[1], cb.Offset[2]}
	data := encodeVarints(blocks)
	metadata := cb.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	switch c.version {
	case 3:
		entities := make([]spongeV3BlockEntity, 0, len(cb.BlockEntities))
		for _, be := range cb.BlockEntities {
			d := be.Data
			if d == nil {
				d = map[string]any{}
			}
			entities = append(entities, spongeV3BlockEntity{Pos: be.Pos[:], ID: be.ID, Data: d})
		}
		return writeNBT(w, spongeV3File{Schematic: spongeV3{
			Version:     3,
			DataVersion: cb.DataVersion,
			Width:       width,
			Height:      height,
			Length:      length,
			Offset:      offset,
			Metadata:    metadata,
			Blocks: spongeV3Container{
				Palette:       paletteMap,
				Data:          data,
				BlockEntities: entities,
			},
		}}, "")
	case 2:
		return writeNBT(w, spongeV2{
			Version:       2,
			DataVersion:   cb.DataVersion,
			Width:         width,
			Height:        height,
			Length:        length,
			Offset:        offset,
			Metadata:      metadata,
			PaletteMax:    int32(len(palette)),
			Palette:       paletteMap,
			BlockData:     data,
			BlockEntities: flattenBlockEntities(cb.BlockEntities),
		}, spongeRoot)
	case 1:
		return writeNBT(w, spongeV1{
			Version:      1,
			Width:        width,
			Height:       height,
			Length:       length,
			Offset:       offset,
			Metadata:     metadata,
			PaletteMax:   int32(len(palette)),
			Palette:      paletteMap,
			BlockData:    data,
			TileEntities: flattenBlockEntities(cb.BlockEntities),
		}, spongeRoot)
	default:
		return fmt.Errorf("sponge version %d not supported", c.version)
	}
}

func decodeSpongeV3(r io.Reader) (*types.Clipboard, error) {
	var f spongeV3File
	if _, err := readNBT(r, &f); err != nil {
		return nil, err
	}
	s := f.Schematic
	if s.Version != 3 {
		return nil, malformed("sponge schematic version %d, want 3", s.Version)
	}
	cb, err := spongeBody(s.Width, s.Height, s.Length, s.Blocks.Palette, s.Blocks.Data)
	if err != nil {
		return nil, err
	}
	cb.DataVersion = s.DataVersion
	cb.Offset = offset3(s.Offset)
	cb.Metadata = s.Metadata
	for _, be := range s.Blocks.BlockEntities {
		if len(be.Pos) != 3 {
			return nil, malformed("block entity %q has %d coordinates", be.ID, len(be.Pos))
		}
		cb.BlockEntities = append(cb.BlockEntities, types.BlockEntity{
			Pos:  [3]int32{be.Pos[0], be.Pos[1], be.Pos[2]},
			ID:   be.ID,
			Data: be.Data,
		})
	}
	return cb, nil
}

func decodeSpongeV2(r io.Reader) (*types.Clipboard, error) {
	var s spongeV2
	if _, err := readNBT(r, &s); err != nil {
		return nil, err
	}
	if s.Version != 2 {
		return nil, malformed("sponge schematic version %d, want 2", s.Version)
	}
	cb, err := spongeBody(s.Width, s.Height, s.Length, s.Palette, s.BlockData)
	if err != nil {
		return nil, err
	}
	cb.DataVersion = s.DataVersion
	cb.Offset = offset3(s.Offset)
	cb.Metadata = s.Metadata
	if cb.BlockEntities, err = unflattenBlockEntities(s.BlockEntities); err != nil {
		return nil, err
	}
	return cb, nil
}

func decodeSpongeV1(r io.Reader) (*types.Clipboard, error) {
	var s spongeV1
	if _, err := readNBT(r, &s); err != nil {
		return nil, err
	}
	if s.Version != 1 {
		return nil, malformed("sponge schematic version %d, want 1", s.Version)
	}
	cb, err := spongeBody(s.Width, s.Height, s.Length, s.Palette, s.BlockData)
	if err != nil {
		return nil, err
	}
	cb.Offset = offset3(s.Offset)
	cb.Metadata = s.Metadata
	if cb.BlockEntities, err = unflattenBlockEntities(s.TileEntities); err != nil {
		return nil, err
	}
	return cb, nil
}

// spongeBody builds the block grid shared by all versions. Palette indices
// must be dense: every index from 0 to len(palette)-1 used exactly once.
func spongeBody(w, h, l int16, paletteMap map[string]int32, data []byte) (*types.Clipboard, error) {
	width, height, length := dims(w, h, l)
	if width == 0 || height == 0 || length == 0 {
		return nil, malformed("empty dimensions %dx%dx%d", width, height, length)
	}
	if v := width * height * length; v > types.MaxVolume {
		return nil, malformed("dimensions %dx%dx%d hold %d blocks, limit is %d", width, height, length, v, types.MaxVolume)
	}
	if len(paletteMap) == 0 {
		return nil, malformed("missing palette")
	}
	palette := make([]string, len(paletteMap))
	for state, idx := range paletteMap {
		if idx < 0 || int(idx) >= len(palette) || palette[idx] != "" {
			return nil, malformed("palette index %d for %q is out of range or reused", idx, state)
		}
		palette[idx] = state
	}
	blocks, err := decodeVarints(data, width*height*length)
	if err != nil {
		return nil, err
	}
	return &types.Clipboard{
		Width:   width,
		Height:  height,
		Length:  length,
		Palette: palette,
		Blocks:  blocks,
	}, nil
}

// flattenBlockEntities writes v1/v2 block entities: Pos and Id beside the
// entity's own fields.
func flattenBlockEntities(in []types.BlockEntity) []map[string]any {
	out := make([]map[string]any, 0, len(in))
	for _, be := range in {
		m := make(map[string]any, len(be.Data)+2)
		for k, v := range be.Data {
			m[k] = v
		}
		m["Pos"] = []int32{be.Pos[0], be.Pos[1], be.Pos[2]}
		m["Id"] = be.ID
		out = append(out, m)
	}
	return out
}

func unflattenBlockEntities(in []map[string]any) ([]types.BlockEntity, error) {
	var out []types.BlockEntity
	for i, m := range in {
		pos, ok := m["Pos"].([]int32)
		if !ok || len(pos) != 3 {
			return nil, malformed("block entity %d has no valid Pos", i)
		}
		id, _ := m["Id"].(string)
		data := make(map[string]any, len(m))
		for k, v := range m {
			if k != "Pos" && k != "Id" {
				data[k] = v
			}
		}
		out = append(out, types.BlockEntity{
			Pos:  [3]int32{pos[0], pos[1], pos[2]},
			ID:   id,
			Data: data,
		})
	}
	return out, nil
}
