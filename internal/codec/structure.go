// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"fmt"
	"io"

	"github.com/pdiddy/schemconvert/pkg/types"
)

// structureCodec implements the vanilla structure block format (.nbt).
type structureCodec struct{}

type structureFile struct {
	DataVersion int32              `nbt:"DataVersion"`
	Size        []int32            `nbt:"size,list"`
	Palette     []structurePalette `nbt:"palette"`
	Blocks      []structureBlock   `nbt:"blocks"`
	Entities    []map[string]any   `nbt:"entities"`
}

type structurePalette struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties"`
}

type structureBlock struct {
	State int32          `nbt:"state"`
	Pos   []int32        `nbt:"pos,list"`
	NBT   map[string]any `nbt:"nbt,omitempty"`
}

func (structureCodec) Decode(r io.Reader) (*types.Clipboard, error) {
	var f structureFile
	if _, err := readNBT(r, &f); err != nil {
		return nil, err
	}
	if len(f.Size) != 3 {
		return nil, malformed("structure size has %d components", len(f.Size))
	}
	for _, d := range f.Size {
		if d <= 0 || d > types.MaxDimension {
			return nil, malformed("structure size %v out of range", f.Size)
		}
	}
	if v := int(f.Size[0]) * int(f.Size[1]) * int(f.Size[2]); v > types.MaxVolume {
		return nil, malformed("structure size %v holds %d blocks, limit is %d", f.Size, v, types.MaxVolume)
	}
	if len(f.Palette) == 0 {
		return nil, malformed("structure has no palette")
	}

	cb := &types.Clipboard{
		Width:       int(f.Size[0]),
		Height:      int(f.Size[1]),
		Length:      int(f.Size[2]),
		DataVersion: f.DataVersion,
	}
	for _, p := range f.Palette {
		if p.Name == "" {
			return nil, malformed("structure palette entry without name")
		}
		cb.Palette = append(cb.Palette, formatBlockState(p.Name, p.Properties))
	}

	// Positions the structure leaves out are air.
	air := -1
	cb.Blocks = make([]int, cb.Volume())
	seen := make([]bool, cb.Volume())
	for _, b := range f.Blocks {
		if len(b.Pos) != 3 {
			return nil, malformed("structure block with %d coordinates", len(b.Pos))
		}
		x, y, z := int(b.Pos[0]), int(b.Pos[1]), int(b.Pos[2])
		if x < 0 || y < 0 || z < 0 || x >= cb.Width || y >= cb.Height || z >= cb.Length {
			return nil, malformed("structure block at %v outside size %v", b.Pos, f.Size)
		}
		if b.State < 0 || int(b.State) >= len(f.Palette) {
			return nil, malformed("structure block at %v uses state %d", b.Pos, b.State)
		}
		i := cb.Index(x, y, z)
		if seen[i] {
			return nil, malformed("structure block at %v appears twice", b.Pos)
		}
		seen[i] = true
		cb.Blocks[i] = int(b.State)

		if len(b.NBT) > 0 {
			id, _ := b.NBT["id"].(string)
			data := make(map[string]any, len(b.NBT))
			for k, v := range b.NBT {
				if k != "id" {
					data[k] = v
				}
			}
			cb.BlockEntities = append(cb.BlockEntities, types.BlockEntity{
				Pos:  [3]int32{b.Pos[0], b.Pos[1], b.Pos[2]},
				ID:   id,
				Data: data,
			})
		}
	}
	for i, ok := range seen {
		if ok {
			continue
		}
		if air < 0 {
			air = paletteIndex(cb, types.AirState)
		}
		cb.Blocks[i] = air
	}

	if err := cb.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return cb, nil
}

func (structureCodec) Encode(w io.Writer, cb *types.Clipboard) error {
	if err := cb.Validate(); err != nil {
		return err
	}
	states, blocks := compactPalette(cb)
	f := structureFile{
		DataVersion: cb.DataVersion,
		Size:        []int32{int32(cb.Width), int32(cb.Height), int32(cb.Length)},
		Palette:     make([]structurePalette, 0, len(states)),
		Blocks:      make([]structureBlock, 0, len(blocks)),
		Entities:    []map[string]any{},
	}
	for _, s := range states {
		name, props, err := parseBlockState(s)
		if err != nil {
			return err
		}
		if props == nil {
			props = map[string]string{}
		}
		f.Palette = append(f.Palette, structurePalette{Name: name, Properties: props})
	}

	entities := make(map[[3]int32]types.BlockEntity, len(cb.BlockEntities))
	for _, be := range cb.BlockEntities {
		entities[be.Pos] = be
	}
	for i, state := range blocks {
		x, y, z := cb.Position(i)
		pos := [3]int32{int32(x), int32(y), int32(z)}
		sb := structureBlock{State: int32(state), Pos: pos[:]}
		if be, ok := entities[pos]; ok {
			sb.NBT = make(map[string]any, len(be.Data)+1)
			for k, v := range be.Data {
				sb.NBT[k] = v
			}
			sb.NBT["id"] = be.ID
		}
		f.Blocks = append(f.Blocks, sb)
	}
	return writeNBT(w, f, "")
}

// paletteIndex returns the index of state in cb's palette, appending it if
// absent.
func paletteIndex(cb *types.Clipboard, state string) int {
	for i, s := range cb.Palette {
		if s == state {
			return i
		}
	}
	cb.Palette = append(cb.Palette, state)
	return len(cb.Palette) - 1
}
