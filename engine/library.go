package engine

import (
	"errors"
	"sync"

	"golang.org/x/image/font/sfnt"
)

// ErrLibraryReleased is returned when using a library after its last
// reference has been released.
var ErrLibraryReleased = errors.New("engine library has been released")

// Library is an engine context shared between faces. It is created lazily
// by the first call to Acquire and torn down when the last reference is
// released.
type Library struct {
	mu      sync.Mutex
	refs    int
	buffers sync.Pool // of *sfnt.Buffer
}

var global struct {
	sync.Mutex
	lib *Library
}

// Acquire returns the process-wide library, creating it if necessary, and
// adds a reference to it. Every call to Acquire has to be matched by a call
// to Release.
func Acquire() (*Library, error) {
	global.Lock()
	defer global.Unlock()
	if global.lib == nil {
		tracer().Debugf("creating engine library")
		global.lib = newLibrary()
	}
	if err := global.lib.Retain(); err != nil {
		// the last reference was dropped, but Release has not yet
		// unregistered the library
		tracer().Debugf("replacing released engine library")
		global.lib = newLibrary()
		if err = global.lib.Retain(); err != nil {
			return nil, err
		}
	}
	return global.lib, nil
}

func newLibrary() *Library {
	lib := &Library{}
	lib.buffers.New = func() any { return &sfnt.Buffer{} }
	return lib
}

// Retain adds a reference to lib. Retaining a library which has already
// been torn down fails with ErrLibraryReleased.
func (lib *Library) Retain() error {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if lib.refs < 0 {
		return ErrLibraryReleased
	}
	lib.refs++
	return nil
}

// Release drops a reference to lib. Releasing the last reference tears the
// library down; a following Acquire will create a fresh one.
func (lib *Library) Release() {
	lib.mu.Lock()
	if lib.refs <= 0 {
		lib.mu.Unlock()
		return
	}
	lib.refs--
	last := lib.refs == 0
	if last {
		lib.refs = -1
	}
	lib.mu.Unlock()
	if !last {
		return
	}
	tracer().Debugf("tearing down engine library")
	global.Lock()
	if global.lib == lib {
		global.lib = nil
	}
	global.Unlock()
}

// Refs returns the number of references held on lib. A library which has
// been torn down has no references.
func (lib *Library) Refs() int {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	return max(0, lib.refs)
}

func (lib *Library) alive() bool {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	return lib.refs > 0
}

func (lib *Library) buffer() *sfnt.Buffer {
	return lib.buffers.Get().(*sfnt.Buffer)
}

func (lib *Library) putBuffer(b *sfnt.Buffer) {
	if b != nil {
		lib.buffers.Put(b)
	}
}
