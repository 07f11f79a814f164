// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/schemconvert/internal/format"
	"github.com/pdiddy/schemconvert/pkg/types"
)

// sampleClipboard returns a 2x2x2 clipboard with a chest block entity.
func sampleClipboard() *types.Clipboard {
	return &types.Clipboard{
		Width:       2,
		Height:      2,
		Length:      2,
		Offset:      [3]int32{-1, 0, 3},
		DataVersion: 3465,
		Palette: []string{
			"minecraft:air",
			"minecraft:stone",
			"minecraft:chest[facing=north,waterlogged=false]",
		},
		Blocks: []int{1, 1, 1, 2, 0, 0, 0, 1},
		BlockEntities: []types.BlockEntity{
			{Pos: [3]int32{1, 0, 1}, ID: "minecraft:chest", Data: map[string]any{"CustomName": "loot"}},
		},
	}
}

func codecFor(t *testing.T, name string) Codec {
	t.Helper()
	desc, ok := format.Resolve(name)
	require.True(t, ok, name)
	c, err := For(desc)
	require.NoError(t, err)
	return c
}

func TestFor_EveryCatalogFormat(t *testing.T) {
	for _, d := range format.All() {
		c, err := For(d)
		require.NoError(t, err, d.Name)
		assert.NotNil(t, c, d.Name)
	}
}

func TestFor_Unknown(t *testing.T) {
	_, err := For(types.FormatDescriptor{Name: "LITEMATICA"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCodec)
}

func TestRoundTrip(t *testing.T) {
	for _, d := range format.All() {
		t.Run(d.Name, func(t *testing.T) {
			c := codecFor(t, d.Name)
			want := sampleClipboard()

			var buf bytes.Buffer
			require.NoError(t, c.Encode(&buf, want))

			got, err := c.Decode(&buf)
			require.NoError(t, err)
			assert.True(t, want.Equivalent(got), "decoded clipboard differs: %+v", got)
		})
	}
}

func TestRoundTrip_KeepsOffsetAndDataVersion(t *testing.T) {
	for _, name := range []string{format.SpongeV3, format.SpongeV2, format.YAML} {
		t.Run(name, func(t *testing.T) {
			c := codecFor(t, name)
			var buf bytes.Buffer
			require.NoError(t, c.Encode(&buf, sampleClipboard()))

			got, err := c.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, [3]int32{-1, 0, 3}, got.Offset)
			assert.Equal(t, int32(3465), got.DataVersion)
		})
	}
}

func TestSaveLoad_AcrossFormats(t *testing.T) {
	dir := t.TempDir()
	want := sampleClipboard()

	v3 := codecFor(t, "fast")
	structure := codecFor(t, "structure")

	src := filepath.Join(dir, "house.schem")
	require.NoError(t, Save(v3, src, want))

	cb, err := Load(v3, src)
	require.NoError(t, err)

	mid := filepath.Join(dir, "house.nbt")
	require.NoError(t, Save(structure, mid, cb))
	cb, err = Load(structure, mid)
	require.NoError(t, err)

	back := filepath.Join(dir, "back.schem")
	require.NoError(t, Save(v3, back, cb))
	got, err := Load(v3, back)
	require.NoError(t, err)

	assert.True(t, want.Equivalent(got))
}

func TestDecode_Malformed(t *testing.T) {
	gz := func(b []byte) []byte {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		zw.Write(b)
		zw.Close()
		return buf.Bytes()
	}
	hugeStructure := func() []byte {
		var buf bytes.Buffer
		require.NoError(t, writeNBT(&buf, structureFile{
			Size:     []int32{2048, 2048, 1024},
			Palette:  []structurePalette{{Name: "minecraft:stone", Properties: map[string]string{}}},
			Blocks:   []structureBlock{},
			Entities: []map[string]any{},
		}, ""))
		return buf.Bytes()
	}
	hugeSponge := func() []byte {
		var buf bytes.Buffer
		require.NoError(t, writeNBT(&buf, spongeV2{
			Version:       2,
			Width:         -1,
			Height:        -1,
			Length:        16,
			Offset:        []int32{0, 0, 0},
			Metadata:      map[string]any{},
			PaletteMax:    1,
			Palette:       map[string]int32{"minecraft:stone": 0},
			BlockData:     []byte{},
			BlockEntities: []map[string]any{},
		}, spongeRoot))
		return buf.Bytes()
	}
	v2 := func() []byte {
		var buf bytes.Buffer
		require.NoError(t, codecFor(t, "sponge.2").Encode(&buf, sampleClipboard()))
		return buf.Bytes()
	}

	tests := []struct {
		name   string
		format string
		input  []byte
	}{
		{name: "plain text as sponge", format: "sponge", input: []byte("this is not a schematic")},
		{name: "empty file", format: "fast", input: nil},
		{name: "gzip of garbage", format: "sponge.1", input: gz([]byte{0xff, 0x00, 0x13})},
		{name: "v2 read as v3", format: "sponge.3", input: v2()},
		{name: "plain text as structure", format: "nbt", input: []byte("hello")},
		{name: "structure size over volume limit", format: "nbt", input: hugeStructure()},
		{name: "sponge dimensions over volume limit", format: "sponge.2", input: hugeSponge()},
		{name: "empty yaml", format: "yaml", input: nil},
		{name: "yaml wrong shape", format: "yaml", input: []byte("- a\n- b\n")},
		{name: "yaml unknown field", format: "yaml", input: []byte("format: schemconvert\nversion: 1\ncolour: red\n")},
		{name: "yaml wrong format tag", format: "yaml", input: []byte("format: other\nversion: 1\n")},
		{name: "yaml invalid clipboard", format: "yaml", input: []byte("format: schemconvert\nversion: 1\nwidth: 1\nheight: 1\nlength: 1\npalette: [\"minecraft:stone\"]\nblocks: [4]\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codecFor(t, tt.format).Decode(bytes.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestEncode_RejectsInvalidClipboard(t *testing.T) {
	cb := sampleClipboard()
	cb.Blocks = cb.Blocks[:3]

	for _, d := range format.All() {
		err := codecFor(t, d.Name).Encode(&bytes.Buffer{}, cb)
		require.Error(t, err, d.Name)
		assert.ErrorIs(t, err, types.ErrInvalidClipboard, d.Name)
	}
}

func TestEncode_CompactsPalette(t *testing.T) {
	cb := sampleClipboard()
	cb.Palette = append(cb.Palette, "minecraft:stone", "minecraft:unused")
	cb.Blocks[0] = 3

	c := codecFor(t, "sponge")
	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, cb))
	got, err := c.Decode(&buf)
	require.NoError(t, err)

	assert.Len(t, got.Palette, 3)
	assert.NotContains(t, got.Palette, "minecraft:unused")
	assert.True(t, cb.Equivalent(got))
}

func TestStructure_UnsetPositionsAreAir(t *testing.T) {
	f := structureFile{
		DataVersion: 3465,
		Size:        []int32{2, 1, 1},
		Palette:     []structurePalette{{Name: "minecraft:stone", Properties: map[string]string{}}},
		Blocks:      []structureBlock{{State: 0, Pos: []int32{1, 0, 0}, NBT: map[string]any{}}},
		Entities:    []map[string]any{},
	}
	var buf bytes.Buffer
	require.NoError(t, writeNBT(&buf, f, ""))

	cb, err := structureCodec{}.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, types.AirState, cb.StateAt(0, 0, 0))
	assert.Equal(t, "minecraft:stone", cb.StateAt(1, 0, 0))
}

func TestStructure_NBTOnlyOnBlockEntities(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, structureCodec{}.Encode(&buf, sampleClipboard()))

	var f structureFile
	_, err := readNBT(&buf, &f)
	require.NoError(t, err)
	require.Len(t, f.Blocks, 8)

	var tagged [][]int32
	for _, b := range f.Blocks {
		if b.NBT != nil {
			tagged = append(tagged, b.Pos)
			assert.Equal(t, "minecraft:chest", b.NBT["id"])
		}
	}
	assert.Equal(t, [][]int32{{1, 0, 1}}, tagged)
}

func TestStructure_DuplicatePosition(t *testing.T) {
	f := structureFile{
		Size:    []int32{1, 1, 1},
		Palette: []structurePalette{{Name: "minecraft:stone", Properties: map[string]string{}}},
		Blocks: []structureBlock{
			{State: 0, Pos: []int32{0, 0, 0}, NBT: map[string]any{}},
			{State: 0, Pos: []int32{0, 0, 0}, NBT: map[string]any{}},
		},
		Entities: []map[string]any{},
	}
	var buf bytes.Buffer
	require.NoError(t, writeNBT(&buf, f, ""))

	_, err := structureCodec{}.Decode(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "appears twice")
}

func TestYAML_Document(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, yamlCodec{}.Encode(&buf, sampleClipboard()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "format: schemconvert\nversion: 1\n"), out)
	assert.Contains(t, out, "blocks: [1, 1, 1, 2, 0, 0, 0, 1]")
}

func TestSave_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.schem")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0o644))

	c := codecFor(t, "sponge")
	require.NoError(t, Save(c, path, sampleClipboard()))

	got, err := Load(c, path)
	require.NoError(t, err)
	assert.True(t, sampleClipboard().Equivalent(got))
	assertNoTempFiles(t, dir)
}

func TestSave_FailureLeavesTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.schem")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0o644))

	bad := sampleClipboard()
	bad.Palette = nil

	err := Save(codecFor(t, "sponge"), path, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding a.schem")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old contents", string(data))
	assertNoTempFiles(t, dir)
}

type panicCodec struct{}

func (panicCodec) Decode(io.Reader) (*types.Clipboard, error) { panic("decode") }

func (panicCodec) Encode(w io.Writer, _ *types.Clipboard) error {
	w.Write([]byte("partial"))
	panic("encode")
}

func TestSave_PanicRemovesTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.schem")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0o644))

	assert.PanicsWithValue(t, "encode", func() {
		_ = Save(panicCodec{}, path, sampleClipboard())
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old contents", string(data))
	assertNoTempFiles(t, dir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(codecFor(t, "sponge"), filepath.Join(t.TempDir(), "missing.schem"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".schemconvert-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
