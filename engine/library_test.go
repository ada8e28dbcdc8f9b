package engine

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryLifecycle(t *testing.T) {
	lib, err := Acquire()
	require.NoError(t, err)
	other, err := Acquire()
	require.NoError(t, err)
	assert.Same(t, lib, other)
	assert.Equal(t, 2, lib.Refs())
	other.Release()
	assert.Equal(t, 1, lib.Refs())
	assert.True(t, lib.alive())
	lib.Release()
	assert.Equal(t, 0, lib.Refs())
	assert.False(t, lib.alive())
	assert.ErrorIs(t, lib.Retain(), ErrLibraryReleased)
	lib.Release() // no effect
	assert.Equal(t, 0, lib.Refs())
	//
	fresh, err := Acquire()
	require.NoError(t, err)
	defer fresh.Release()
	assert.NotSame(t, lib, fresh)
	assert.Equal(t, 1, fresh.Refs())
}

func TestLibraryBuffers(t *testing.T) {
	lib, err := Acquire()
	require.NoError(t, err)
	defer lib.Release()
	b := lib.buffer()
	require.NotNil(t, b)
	lib.putBuffer(b)
	lib.putBuffer(nil)
	assert.NotNil(t, lib.buffer())
}

func TestAcquireDuringTeardown(t *testing.T) {
	lib, err := Acquire()
	require.NoError(t, err)
	// last reference dropped, library still registered
	lib.mu.Lock()
	lib.refs = -1
	lib.mu.Unlock()
	fresh, err := Acquire()
	require.NoError(t, err)
	assert.NotSame(t, lib, fresh)
	assert.Equal(t, 1, fresh.Refs())
	lib.Release() // no effect on fresh
	assert.Equal(t, 1, fresh.Refs())
	fresh.Release()
	global.Lock()
	assert.Nil(t, global.lib)
	global.Unlock()
}

func TestConcurrentAcquire(t *testing.T) {
	var failed atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 5000 {
				lib, err := Acquire()
				if err != nil {
					failed.Add(1)
					continue
				}
				lib.Release()
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, failed.Load(), "Acquire failed during concurrent releases")
}
