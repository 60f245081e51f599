package isearch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settleRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *settleRecorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *settleRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncerSettlesOnceWithFinalValue(t *testing.T) {
	rec := &settleRecorder{}
	d := NewDebouncer(30*time.Millisecond, rec.record)
	defer d.Stop()

	for _, v := range []string{"p", "pa", "par", "para"} {
		d.Push(v)
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"para"}, rec.snapshot())

	value, ok := d.Settled()
	assert.True(t, ok)
	assert.Equal(t, "para", value)
}

func TestDebouncerDistinguishesEmptyFromUnset(t *testing.T) {
	d := NewDebouncer(10*time.Millisecond, nil)
	defer d.Stop()

	_, ok := d.Settled()
	assert.False(t, ok)

	d.Push("")
	d.Flush()
	value, ok := d.Settled()
	assert.True(t, ok)
	assert.Equal(t, "", value)
}

func TestDebouncerDefaultWindow(t *testing.T) {
	d := NewDebouncer(0, nil)
	assert.Equal(t, DefaultDebounce, d.Window())
}

func TestDebouncerFlushSettlesImmediately(t *testing.T) {
	rec := &settleRecorder{}
	d := NewDebouncer(time.Hour, rec.record)
	defer d.Stop()

	d.Push("aspirin")
	assert.True(t, d.Pending())
	d.Flush()
	assert.False(t, d.Pending())
	assert.Equal(t, []string{"aspirin"}, rec.snapshot())

	d.Flush()
	assert.Equal(t, []string{"aspirin"}, rec.snapshot())
}

func TestDebouncerStopAndCancelDropPending(t *testing.T) {
	rec := &settleRecorder{}
	d := NewDebouncer(10*time.Millisecond, rec.record)

	d.Push("a")
	d.Cancel()
	assert.False(t, d.Pending())

	d.Push("b")
	d.Stop()
	d.Push("c")
	time.Sleep(40 * time.Millisecond)

	assert.Empty(t, rec.snapshot())
	_, ok := d.Settled()
	assert.False(t, ok)
}
