// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format holds the static catalog of supported schematic formats and
// resolves user-supplied names and aliases against it.
//
// The catalog is built once at package initialisation and never mutated, so
// it is safe to share across goroutines without locking.
package format

import (
	"fmt"
	"strings"

	"github.com/pdiddy/schemconvert/pkg/types"
)

// Canonical format names.
const (
	FastV3     = "FAST_V3"
	FastV2     = "FAST_V2"
	SpongeV3   = "SPONGE_V3_SCHEMATIC"
	SpongeV2   = "SPONGE_V2_SCHEMATIC"
	SpongeV1   = "SPONGE_V1_SCHEMATIC"
	Structure  = "MINECRAFT_STRUCTURE"
	YAML       = "YAML"
	defaultFmt = FastV3
)

// catalog order decides which descriptor wins when names would collide;
// validate rejects collisions, so in practice it only orders listings.
var catalog = []types.FormatDescriptor{
	{Name: FastV3, Aliases: []string{"fast", "fawe", "fast.3"}, Extension: "schem"},
	{Name: FastV2, Aliases: []string{"fast.2", "fawe.2"}, Extension: "schem"},
	{Name: SpongeV3, Aliases: []string{"sponge", "sponge.3"}, Extension: "schem"},
	{Name: SpongeV2, Aliases: []string{"sponge.2"}, Extension: "schem"},
	{Name: SpongeV1, Aliases: []string{"sponge.1"}, Extension: "schem"},
	{Name: Structure, Aliases: []string{"structure", "nbt"}, Extension: "nbt"},
	{Name: YAML, Aliases: []string{"yml"}, Extension: "yaml"},
}

func init() {
	if err := validate(catalog); err != nil {
		panic(err)
	}
}

// validate checks that no two descriptors share a name or alias, ignoring case.
// Names match case-insensitively, so an alias that only repeats its own
// canonical name in another case is also a collision.
func validate(entries []types.FormatDescriptor) error {
	seen := make(map[string]string)
	for _, d := range entries {
		if d.Name == "" || d.Extension == "" {
			return fmt.Errorf("format catalog: descriptor %q is incomplete", d.Name)
		}
		for _, n := range append([]string{d.Name}, d.Aliases...) {
			key := strings.ToLower(n)
			if owner, ok := seen[key]; ok {
				return fmt.Errorf("format catalog: %q registered by both %s and %s", n, owner, d.Name)
			}
			seen[key] = d.Name
		}
	}
	return nil
}

// Resolve looks up a format by canonical name or alias, case-insensitively.
// Canonical names are matched before aliases. A miss returns false; callers
// report it to the user rather than treating it as a fault.
func Resolve(name string) (types.FormatDescriptor, bool) {
	for _, d := range catalog {
		if strings.EqualFold(d.Name, name) {
			return clone(d), true
		}
	}
	for _, d := range catalog {
		for _, a := range d.Aliases {
			if strings.EqualFold(a, name) {
				return clone(d), true
			}
		}
	}
	return types.FormatDescriptor{}, false
}

// All returns every descriptor in catalog order.
func All() []types.FormatDescriptor {
	out := make([]types.FormatDescriptor, len(catalog))
	for i, d := range catalog {
		out[i] = clone(d)
	}
	return out
}

// Default returns the format used when the caller omits a target.
func Default() types.FormatDescriptor {
	d, _ := Resolve(defaultFmt)
	return d
}

// Names returns every canonical name followed by its aliases, in catalog
// order. Used for shell completion.
func Names() []string {
	var out []string
	for _, d := range catalog {
		out = append(out, d.Name)
		out = append(out, d.Aliases...)
	}
	return out
}

func clone(d types.FormatDescriptor) types.FormatDescriptor {
	d.Aliases = append([]string(nil), d.Aliases...)
	return d
}
