package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRecords(t *testing.T) {
	assert.False(t, LevelOff.Records(ScopeRun))
	assert.False(t, LevelError.Records(ScopeRun))
	assert.True(t, LevelPhase.Records(ScopePhase))
	assert.False(t, LevelPhase.Records(ScopeFile))
	assert.True(t, LevelDetail.Records(ScopeFile))
	assert.False(t, LevelDetail.Records(ScopeNode))
	assert.True(t, LevelDebug.Records(ScopeNode))
}

func TestParseLevelModeFormat(t *testing.T) {
	l, err := ParseLevel("DETAIL")
	require.NoError(t, err)
	assert.Equal(t, LevelDetail, l)
	assert.Equal(t, "detail", l.String())
	_, err = ParseLevel("loud")
	require.ErrorContains(t, err, "off|error|phase|detail|debug")

	m, err := ParseMode("Both")
	require.NoError(t, err)
	assert.Equal(t, ModeBoth, m)
	assert.Equal(t, "both", m.String())

	f, err := ParseFormat("jsonl")
	require.NoError(t, err)
	assert.Equal(t, FormatNDJSON, f)
	assert.Equal(t, FormatNDJSON, formatForPath("run.ndjson"))
	assert.Equal(t, FormatText, formatForPath("run.log"))
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStream(&buf, LevelPhase, FormatText)

	span := Begin(tr, ScopePhase, "parse", 0)
	span.Attr("nodes", "14").Attr("errors", "0").End("ok")
	Begin(tr, ScopeFile, "file:a.lt", span.ID()).End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "file scope is not recorded at phase level")
	assert.Contains(t, lines[0], "> parse")
	assert.Contains(t, lines[1], "< parse ")
	assert.True(t, strings.HasSuffix(lines[1], "(ok) nodes=14 errors=0"), lines[1])
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStream(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeRun, "crasher", "seed=1")

	var got map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got))
	assert.Equal(t, "point", got["kind"])
	assert.Equal(t, "run", got["scope"])
	assert.Equal(t, "crasher", got["name"])
	assert.Equal(t, "seed=1", got["detail"])
}

func TestSpanEndOnce(t *testing.T) {
	r := NewRing(8, LevelDebug)
	span := Begin(r, ScopeRun, "check", 0)
	span.End("")
	span.End("")
	assert.Len(t, r.Snapshot(), 2)
}

func TestStartNestsThroughContext(t *testing.T) {
	r := NewRing(16, LevelDebug)
	ctx := WithTracer(context.Background(), r)

	ctx1, outer := Start(ctx, ScopeRun, "check")
	_, inner := Start(ctx1, ScopeFile, "file:a.lt")
	inner.End("")
	outer.End("")

	assert.Equal(t, outer.ID(), SpanFromContext(ctx1))
	assert.Zero(t, SpanFromContext(ctx))

	snap := r.Snapshot()
	require.Len(t, snap, 4)
	assert.Equal(t, outer.ID(), snap[1].ParentID)
	assert.Equal(t, "file:a.lt", snap[2].Name)
	assert.Equal(t, KindEnd, snap[2].Kind)
}

func TestRingWrapsAround(t *testing.T) {
	r := NewRing(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, "")
	}
	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "c", snap[0].Name)
	assert.Equal(t, "e", snap[2].Name)
	assert.Less(t, snap[0].Seq, snap[2].Seq)

	var buf bytes.Buffer
	require.NoError(t, r.WriteTo(&buf, FormatText))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestEventAttr(t *testing.T) {
	ev := Event{Attrs: []Attr{{"files", "3"}}}
	v, ok := ev.Attr("files")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	_, ok = ev.Attr("nope")
	assert.False(t, ok)
}

func TestNopAndContext(t *testing.T) {
	assert.False(t, Nop.Enabled())
	assert.Equal(t, Nop, FromContext(context.Background()))

	r := NewRing(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	assert.Equal(t, Tracer(r), FromContext(ctx))

	span := Begin(Nop, ScopeRun, "ignored", 0)
	assert.Zero(t, span.ID())
	assert.Equal(t, time.Duration(0), span.Attr("k", "v").End(""))

	ctx2, s := Start(context.Background(), ScopeRun, "no tracer")
	assert.Zero(t, s.ID())
	assert.Zero(t, SpanFromContext(ctx2))
}

func TestNew(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())

	tr, err = New(Config{Level: LevelPhase, Mode: ModeRing})
	require.NoError(t, err)
	assert.IsType(t, &Ring{}, tr)

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	require.NoError(t, err)
	Point(tr, ScopeRun, "x", "")
	require.NoError(t, tr.Close())
	assert.Contains(t, buf.String(), "* x")

	path := filepath.Join(t.TempDir(), "run.ndjson")
	tr, err = New(Config{Level: LevelPhase, OutputPath: path})
	require.NoError(t, err)
	Point(tr, ScopeRun, "x", "")
	require.NoError(t, tr.Close())
}

func TestHeartbeat(t *testing.T) {
	r := NewRing(16, LevelDebug)
	stop := StartHeartbeat(r, time.Millisecond)
	require.Eventually(t, func() bool { return len(r.Snapshot()) > 0 }, time.Second, time.Millisecond)
	stop()
	stop()
	assert.Equal(t, KindHeartbeat, r.Snapshot()[0].Kind)

	// выключенный трейсер — пустой stop
	StartHeartbeat(Nop, time.Millisecond)()
}
