package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Int(KeyScore)
	a.Add(3)
	assert.Same(t, a, r.Ints.Get(KeyScore))
	assert.Equal(t, int64(3), r.Int(KeyScore).Load())
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Int(KeyShockwaveActive).Store(2)
	r.Floats.Get(KeyFrameTimeMs).Set(16.5)
	r.Bools.Get(KeyPaused).Store(true)
	r.Strings.Get(KeyTarget).Store("3/5")

	snap := r.Snapshot()
	assert.Equal(t, 2.0, snap[KeyShockwaveActive])
	assert.Equal(t, 16.5, snap[KeyFrameTimeMs])
	assert.Equal(t, 1.0, snap[KeyPaused])
	assert.NotContains(t, snap, KeyTarget)
	assert.Equal(t, 4, r.TotalCount())
}

func TestConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get("x").Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800.0, m.Get("x").Get())
	assert.Equal(t, []string{"x"}, m.Keys())
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store("0123456789012345678901234567890123456789")
	assert.Len(t, s.Load(), MaxStringLen)
}
