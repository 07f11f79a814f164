// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FormatDescriptor identifies one supported on-disk schematic format.
// Descriptors come from a fixed catalog and are treated as immutable values.
type FormatDescriptor struct {
	// Name is the canonical identifier, e.g. "SPONGE_V3_SCHEMATIC".
	Name string `json:"name" yaml:"name"`

	// Aliases are alternate spellings accepted on the command line.
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	// Extension is the file extension, without dot, the format is written with.
	Extension string `json:"extension" yaml:"extension"`
}

// String returns the canonical name.
func (f FormatDescriptor) String() string {
	return f.Name
}

// IsZero reports whether f is the zero descriptor.
func (f FormatDescriptor) IsZero() bool {
	return f.Name == ""
}
