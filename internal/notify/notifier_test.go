package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushOrdersMostRecentFirst(t *testing.T) {
	n := New(5, 0)
	n.Info("first")
	n.Success("second")

	items := n.List()
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Message)
	assert.Equal(t, "first", items[1].Message)
}

func TestPushNeverExceedsCap(t *testing.T) {
	n := New(5, 0)
	for i := 0; i < 12; i++ {
		n.Info(fmt.Sprintf("msg %d", i))
	}

	items := n.List()
	require.Len(t, items, 5)
	assert.Equal(t, "msg 11", items[0].Message)
	assert.Equal(t, "msg 7", items[4].Message)
}

func TestRemoveIsIdempotent(t *testing.T) {
	n := New(5, 0)
	id := n.Error("boom")

	n.Remove(id)
	require.Empty(t, n.List())

	// second removal of the same id must be a no-op
	n.Remove(id)
	n.Remove("never-existed")
	require.Empty(t, n.List())
}

func TestAutoExpiry(t *testing.T) {
	n := New(5, 20*time.Millisecond)
	defer n.Close()

	n.Info("ephemeral")
	require.Len(t, n.List(), 1)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(n.List()) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("notification still visible after expiry window")
}

func TestMarkRead(t *testing.T) {
	n := New(5, 0)
	id := n.Success("done")

	require.True(t, n.MarkRead(id))
	assert.True(t, n.List()[0].Read)
	assert.False(t, n.MarkRead("missing"))
}

func TestUniqueIDs(t *testing.T) {
	n := New(5, 0)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		id := n.Info("x")
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
