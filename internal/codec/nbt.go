// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

// readNBT decompresses r and decodes its root compound into v, returning the
// root tag name.
func readNBT(r io.Reader, v any) (string, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return "", fmt.Errorf("%w: not gzip compressed: %w", ErrMalformed, err)
	}
	defer zr.Close()

	name, err := nbt.NewDecoder(zr).Decode(v)
	if err != nil {
		return "", fmt.Errorf("%w: decoding nbt: %w", ErrMalformed, err)
	}
	return name, nil
}

// writeNBT encodes v as a gzip-compressed root compound named rootName.
func writeNBT(w io.Writer, v any, rootName string) error {
	zw := gzip.NewWriter(w)
	if err := nbt.NewEncoder(zw).Encode(v, rootName); err != nil {
		zw.Close()
		return fmt.Errorf("encoding nbt: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing: %w", err)
	}
	return nil
}

// encodeVarints packs palette indices as unsigned LEB128 varints, the block
// data layout shared by every Sponge version.
func encodeVarints(blocks []int) []byte {
	out := make([]byte, 0, len(blocks))
	for _, b := range blocks {
		out = binary.AppendUvarint(out, uint64(b))
	}
	return out
}

// decodeVarints unpacks exactly n varints from data.
func decodeVarints(data []byte, n int) ([]int, error) {
	// Every varint takes at least one byte.
	if n > len(data) {
		return nil, malformed("block data holds %d bytes for %d blocks", len(data), n)
	}
	out := make([]int, 0, n)
	for len(data) > 0 {
		v, k := binary.Uvarint(data)
		if k <= 0 || v > math.MaxInt32 {
			return nil, malformed("bad varint at block %d", len(out))
		}
		out = append(out, int(v))
		data = data[k:]
	}
	if len(out) != n {
		return nil, malformed("block data holds %d blocks, want %d", len(out), n)
	}
	return out, nil
}

// dims converts stored unsigned-short extents to ints.
func dims(w, h, l int16) (int, int, int) {
	return int(uint16(w)), int(uint16(h)), int(uint16(l))
}

// offset3 reads an optional three-element offset.
func offset3(v []int32) [3]int32 {
	var out [3]int32
	copy(out[:], v)
	return out
}
