// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchSummary_Add(t *testing.T) {
	var s BatchSummary
	s.Add(Succeeded("a.schem", "out/a.schem"))
	s.Add(Failed("b.schem", errors.New("truncated")))
	s.Add(Succeeded("c.schem", "out/c.schem"))

	assert.Equal(t, 3, s.TotalFiles)
	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, 1, s.Failed)
	assert.True(t, s.HasFailures())
	assert.Equal(t, s.TotalFiles, s.Succeeded+s.Failed)
}

func TestConversionOutcome(t *testing.T) {
	ok := Succeeded("a.schem", "out/a.schem")
	assert.True(t, ok.OK())
	assert.Empty(t, ok.Message())

	bad := Failed("b.schem", errors.New("truncated"))
	assert.False(t, bad.OK())
	assert.Equal(t, OutcomeFailure, bad.Status)
	assert.Equal(t, "truncated", bad.Message())
}

func TestConverterConfig_WithDefaults(t *testing.T) {
	c := ConverterConfig{Workers: -2}.WithDefaults()
	assert.Equal(t, DefaultWorkers, c.Workers)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)

	c = ConverterConfig{Workers: 8, LogLevel: "debug"}.WithDefaults()
	assert.Equal(t, 8, c.Workers)
	assert.Equal(t, "debug", c.LogLevel)
}
