package notify

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/langportal/internal/clock"
)

func TestCenterRingBuffer(t *testing.T) {
	c := NewCenter(3, clock.NewMockClock(time.Unix(100, 0)))

	for _, m := range []string{"a", "b", "c", "d"} {
		c.Notify(LevelError, m)
	}

	assert.Equal(t, 3, c.Count())
	last := c.Last(10)
	require.Len(t, last, 3)
	assert.Equal(t, "b", last[0].Message)
	assert.Equal(t, "d", last[2].Message)
	assert.Equal(t, uint64(4), last[2].ID)

	assert.Empty(t, c.Last(0))
	assert.Equal(t, "d", c.Last(1)[0].Message)
}

func TestCenterActiveExpires(t *testing.T) {
	mc := clock.NewMockClock(time.Unix(100, 0))
	c := NewCenter(5, mc)

	c.Notify(LevelInfo, "old")
	mc.Advance(3 * time.Second)
	c.Notify(LevelInfo, "new")
	mc.Advance(2 * time.Second)

	active := c.Active(4 * time.Second)
	require.Len(t, active, 1)
	assert.Equal(t, "new", active[0].Message)
}

func TestCenterSubscribe(t *testing.T) {
	c := NewCenter(5, nil)
	ch, cancel := c.Subscribe(1)

	Error(c, "failed %d", 1)
	n := <-ch
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "failed 1", n.Message)

	// Full buffer drops instead of blocking.
	c.Notify(LevelInfo, "one")
	c.Notify(LevelInfo, "two")
	assert.Equal(t, "one", (<-ch).Message)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	c.Notify(LevelInfo, "after cancel")
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	Success(w, "reset done")
	Error(w, "boom")
	Info(w, "open %s", "http://x")

	out := buf.String()
	assert.True(t, strings.Contains(out, "✓ reset done"))
	assert.True(t, strings.Contains(out, "✗ boom"))
	assert.True(t, strings.Contains(out, "ℹ open http://x"))
}

func TestFuncAndDiscard(t *testing.T) {
	var got string
	Func(func(level, msg string) { got = level + ":" + msg }).Notify(LevelWarning, "x")
	assert.Equal(t, "warning:x", got)
	Discard{}.Notify(LevelError, "ignored")
}
