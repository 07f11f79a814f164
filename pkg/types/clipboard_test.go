// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cube() *Clipboard {
	return &Clipboard{
		Width: 2, Height: 2, Length: 3,
		Palette: []string{AirState, "minecraft:stone"},
		Blocks:  []int{0, 1, 0, 1, 0, 1, 1, 1, 1, 1, 1, 1},
		BlockEntities: []BlockEntity{
			{Pos: [3]int32{1, 1, 2}, ID: "minecraft:sign", Data: map[string]any{"Text": "hi"}},
		},
	}
}

func TestIndexPosition(t *testing.T) {
	c := cube()
	for i := 0; i < c.Volume(); i++ {
		x, y, z := c.Position(i)
		assert.Equal(t, i, c.Index(x, y, z))
	}
	assert.Equal(t, 1+2*2+1*2*3, c.Index(1, 1, 2))
	assert.Equal(t, "minecraft:stone", c.StateAt(1, 0, 0))
	assert.Equal(t, AirState, c.StateAt(0, 0, 0))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Clipboard)
		errMsg string
	}{
		{name: "valid", mutate: func(*Clipboard) {}},
		{name: "zero width", mutate: func(c *Clipboard) { c.Width = 0 }, errMsg: "width 0 out of range"},
		{name: "too long", mutate: func(c *Clipboard) { c.Length = MaxDimension + 1 }, errMsg: "length 65536 out of range"},
		{name: "volume over limit", mutate: func(c *Clipboard) { c.Width, c.Height, c.Length = 4096, 4096, 2 }, errMsg: "exceeds 16777216"},
		{name: "empty palette", mutate: func(c *Clipboard) { c.Palette = nil }, errMsg: "empty palette"},
		{name: "blank palette entry", mutate: func(c *Clipboard) { c.Palette[1] = "" }, errMsg: "palette entry 1 is empty"},
		{name: "short blocks", mutate: func(c *Clipboard) { c.Blocks = c.Blocks[:5] }, errMsg: "5 blocks for volume 12"},
		{name: "bad palette index", mutate: func(c *Clipboard) { c.Blocks[3] = 2 }, errMsg: "block 3 references palette index 2"},
		{name: "negative palette index", mutate: func(c *Clipboard) { c.Blocks[0] = -1 }, errMsg: "palette index -1"},
		{name: "entity outside", mutate: func(c *Clipboard) { c.BlockEntities[0].Pos = [3]int32{2, 0, 0} }, errMsg: "outside bounds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cube()
			tt.mutate(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidClipboard)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEquivalent(t *testing.T) {
	base := cube()

	reordered := cube()
	reordered.Palette = []string{"minecraft:stone", AirState}
	for i, b := range reordered.Blocks {
		reordered.Blocks[i] = 1 - b
	}
	reordered.Offset = [3]int32{4, 5, 6}
	reordered.DataVersion = 3700
	reordered.Metadata = map[string]any{"Author": "someone"}
	reordered.BlockEntities[0].Data = map[string]any{"Text": "hi"}
	assert.True(t, base.Equivalent(reordered))

	// int32 payloads from NBT compare equal to ints from YAML.
	a, b := cube(), cube()
	a.BlockEntities[0].Data = map[string]any{"Rot": int32(4)}
	b.BlockEntities[0].Data = map[string]any{"Rot": 4}
	assert.True(t, a.Equivalent(b))

	tests := []struct {
		name   string
		mutate func(*Clipboard)
	}{
		{name: "dimensions", mutate: func(c *Clipboard) { c.Width, c.Length = 3, 2 }},
		{name: "one block", mutate: func(c *Clipboard) { c.Blocks[0] = 1 }},
		{name: "state name", mutate: func(c *Clipboard) { c.Palette[1] = "minecraft:dirt" }},
		{name: "missing entity", mutate: func(c *Clipboard) { c.BlockEntities = nil }},
		{name: "entity id", mutate: func(c *Clipboard) { c.BlockEntities[0].ID = "minecraft:chest" }},
		{name: "entity data", mutate: func(c *Clipboard) { c.BlockEntities[0].Data["Text"] = "bye" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := cube()
			tt.mutate(other)
			assert.False(t, base.Equivalent(other))
		})
	}
}
