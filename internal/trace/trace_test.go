package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltersScopes(t *testing.T) {
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFile))
	assert.True(t, LevelDetail.ShouldEmit(ScopeFile))
	assert.False(t, LevelDetail.ShouldEmit(ScopeNode))
	assert.True(t, LevelDebug.ShouldEmit(ScopeNode))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestRingKeepsNewest(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"lex", "parse", "bind"} {
		Point(ring, ScopePass, name, "", 0)
	}
	snap := ring.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "parse", snap[0].Name)
	assert.Equal(t, "bind", snap[1].Name)
}

func TestSpanBeginEnd(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	sp := Begin(ring, ScopePass, "eval", 0)
	sp.WithExtra("result", "3").End("ok")

	snap := ring.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, KindSpanBegin, snap[0].Kind)
	assert.Equal(t, KindSpanEnd, snap[1].Kind)
	assert.Equal(t, snap[0].SpanID, snap[1].SpanID)
	assert.Equal(t, "3", snap[1].Extra["result"])
}

func TestFilteredSpanIsInert(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	sp := Begin(ring, ScopeNode, "binary", 0)
	assert.Zero(t, sp.ID())
	sp.End("")
	assert.Empty(t, ring.Snapshot())
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Format: FormatNDJSON, Output: &buf})
	require.NoError(t, err)

	Begin(tr, ScopePass, "parse", 0).End("")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &ev))
	assert.Equal(t, "end", ev["kind"])
	assert.Equal(t, "pass", ev["scope"])
	assert.Equal(t, "parse", ev["name"])
}

func TestBothModeExposesRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	require.NoError(t, err)
	Point(tr, ScopeDriver, "start", "", 0)

	ring := RingOf(tr)
	require.NotNil(t, ring)
	assert.Len(t, ring.Snapshot(), 1)
	assert.Contains(t, buf.String(), "• start")
}

func TestContextRoundTrip(t *testing.T) {
	assert.Equal(t, Nop, FromContext(context.Background()))

	ring := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	assert.Same(t, ring, FromContext(ctx))

	sp := Begin(ring, ScopeDriver, "eval", 0)
	ctx = WithSpan(ctx, sp)
	assert.Equal(t, sp.ID(), CurrentSpan(ctx))
}
