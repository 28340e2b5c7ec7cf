package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matforge/forge-tui/msg"
)

func TestIndicatorStartStop(t *testing.T) {
	ind := NewIndicator()
	assert.False(t, ind.Active())
	assert.Empty(t, ind.View())

	cmd := ind.Start()
	require.NotNil(t, cmd, "Start must schedule both cycles")
	assert.True(t, ind.Active())
	assert.NotEmpty(t, ind.View())

	ind.Stop()
	assert.False(t, ind.Active())
	assert.Empty(t, ind.View())
}

func TestIndicatorTicksAdvanceFrames(t *testing.T) {
	ind := NewIndicator()
	ind.Start()
	gen := ind.gen

	before := ind.View()
	ind, cmd := ind.Update(msg.GlyphTick{Gen: gen})
	require.NotNil(t, cmd, "a live glyph tick reschedules itself")
	assert.NotEqual(t, before, ind.View())

	before = ind.View()
	ind, cmd = ind.Update(msg.PhraseTick{Gen: gen})
	require.NotNil(t, cmd, "a live phrase tick reschedules itself")
	assert.NotEqual(t, before, ind.View())
}

func TestIndicatorStaleTicksAreDropped(t *testing.T) {
	ind := NewIndicator()
	ind.Start()
	stale := ind.gen
	ind.Stop()

	// Ticks from the cancelled run must not reschedule: that is what
	// tears the repeating task down instead of pausing it.
	ind, cmd := ind.Update(msg.GlyphTick{Gen: stale})
	assert.Nil(t, cmd)
	ind, cmd = ind.Update(msg.PhraseTick{Gen: stale})
	assert.Nil(t, cmd)

	// A restarted indicator ignores them too.
	ind.Start()
	ind, cmd = ind.Update(msg.GlyphTick{Gen: stale})
	assert.Nil(t, cmd)
	_ = ind
}

func TestIndicatorResetsOnStart(t *testing.T) {
	ind := NewIndicator()
	ind.Start()
	gen := ind.gen
	ind, _ = ind.Update(msg.GlyphTick{Gen: gen})
	ind, _ = ind.Update(msg.PhraseTick{Gen: gen})
	ind.Stop()

	ind.Start()
	assert.Equal(t, 0, ind.frame, "glyph cycle restarts from the first frame")
	assert.Equal(t, 0, ind.phrase, "phrase cycle restarts from the first phrase")
}
