package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueSwapDeliversPreviousBatch(t *testing.T) {
	q := NewQueue()
	q.Push(Input{Name: KeyDown, Key: Right})
	q.Push(Input{Name: KeyUp, Key: Right})
	assert.Equal(t, 2, q.Pending())

	batch := q.Swap()
	require.Len(t, batch, 2)
	assert.Equal(t, Input{Name: KeyDown, Key: Right}, batch[0])
	assert.Equal(t, 0, q.Pending())

	assert.Empty(t, q.Swap())
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(Input{Name: KeyDown, Key: Up})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Swap(), 800)
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey(" Escape ")
	require.NoError(t, err)
	assert.Equal(t, Escape, k)

	_, err = ParseKey("hyper")
	assert.Error(t, err)

	var parsed Key
	require.NoError(t, parsed.UnmarshalText([]byte("left")))
	assert.Equal(t, Left, parsed)
	assert.Equal(t, "left", parsed.String())
	assert.Equal(t, "key(99)", Key(99).String())
}

func TestKeyHelpers(t *testing.T) {
	assert.True(t, Up.IsDirection())
	assert.True(t, Left.IsDirection())
	assert.False(t, Escape.IsDirection())

	assert.Equal(t, Down, KeyArg([]any{Down}))
	assert.Equal(t, None, KeyArg(nil))
	assert.Equal(t, None, KeyArg([]any{"down"}))
	assert.Equal(t, 0.5, DtArg([]any{0.5}))
	assert.Equal(t, 0.0, DtArg(nil))
}
