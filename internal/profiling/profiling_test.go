package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTopN(t *testing.T) {
	ResetFrame()
	Add("quad.Render", 1200*time.Microsecond)
	Add("triangle.Update", 300*time.Microsecond)
	Add("triangle.Update", 100*time.Microsecond)
	Add("renderer.Finish", 2*time.Millisecond)

	assert.Equal(t, "renderer.Finish:2.0ms, quad.Render:1.2ms", TopN(2))
	assert.Equal(t, "renderer.Finish:2.0ms, quad.Render:1.2ms, triangle.Update:0.4ms", TopN(10))
	assert.Equal(t, "", TopN(0))
	assert.Equal(t, "", TopN(-1))
}

func TestTrackAndReset(t *testing.T) {
	ResetFrame()
	stop := Track("x")
	stop()
	snap := Snapshot()
	assert.Contains(t, snap, "x")

	// snapshots are copies
	snap["y"] = time.Second
	assert.NotContains(t, Snapshot(), "y")

	ResetFrame()
	assert.Empty(t, Snapshot())
}
