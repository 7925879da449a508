package naive

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// goroutineID extracts the numeric id Go assigns to the calling goroutine, by
// parsing the header line of a runtime.Stack dump. The runtime does not
// expose this id through any public API; parsing the stack header is the
// standard workaround used throughout the ecosystem when a library needs
// goroutine-local storage and has no dedicated package to reach for.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return -1
	}
	id, _ := strconv.ParseInt(string(fields[1]), 10, 64)
	return id
}

// goroutineLocal holds the per-goroutine state the naive engine needs: the
// stack of "current owner" tags, and the set of Cancelable instances the
// goroutine is presently inside (used to detect a handler disabling itself
// from within its own invocation). Entries are created lazily and removed
// once both are empty, so steady-state memory use tracks only goroutines
// presently inside the runtime, not every goroutine that ever touched it.
type goroutineLocal struct {
	mu      sync.Mutex
	owners  []any
	entered map[*Cancelable]struct{}
}

var tlsRegistry sync.Map // int64 -> *goroutineLocal

func localForCurrentGoroutine() (*goroutineLocal, int64) {
	gid := goroutineID()
	v, _ := tlsRegistry.LoadOrStore(gid, &goroutineLocal{})
	return v.(*goroutineLocal), gid
}

func (gl *goroutineLocal) releaseIfEmpty(gid int64) {
	gl.mu.Lock()
	empty := len(gl.owners) == 0 && len(gl.entered) == 0
	gl.mu.Unlock()
	if empty {
		tlsRegistry.CompareAndDelete(gid, gl)
	}
}

func pushOwner(owner any) {
	gl, _ := localForCurrentGoroutine()
	gl.mu.Lock()
	gl.owners = append(gl.owners, owner)
	gl.mu.Unlock()
}

func popOwner() {
	gl, gid := localForCurrentGoroutine()
	gl.mu.Lock()
	if n := len(gl.owners); n > 0 {
		gl.owners = gl.owners[:n-1]
	}
	gl.mu.Unlock()
	gl.releaseIfEmpty(gid)
}

func currentOwner() (any, bool) {
	gid := goroutineID()
	v, ok := tlsRegistry.Load(gid)
	if !ok {
		return nil, false
	}
	gl := v.(*goroutineLocal)
	gl.mu.Lock()
	defer gl.mu.Unlock()
	if len(gl.owners) == 0 {
		return nil, false
	}
	return gl.owners[len(gl.owners)-1], true
}

func pushEntered(c *Cancelable) {
	gl, _ := localForCurrentGoroutine()
	gl.mu.Lock()
	if gl.entered == nil {
		gl.entered = make(map[*Cancelable]struct{}, 1)
	}
	gl.entered[c] = struct{}{}
	gl.mu.Unlock()
}

func popEntered(c *Cancelable) {
	gl, gid := localForCurrentGoroutine()
	gl.mu.Lock()
	delete(gl.entered, c)
	gl.mu.Unlock()
	gl.releaseIfEmpty(gid)
}

func enteredContains(c *Cancelable) bool {
	gid := goroutineID()
	v, ok := tlsRegistry.Load(gid)
	if !ok {
		return false
	}
	gl := v.(*goroutineLocal)
	gl.mu.Lock()
	defer gl.mu.Unlock()
	_, ok = gl.entered[c]
	return ok
}

// RunWithOwner invokes fn with owner recorded as the current goroutine's
// innermost owner tag, restoring whatever was previously recorded
// afterwards - including when fn panics, so that a panic unwinding through
// a nested operation leaves thread-local state consistent for whatever
// recovers it further up the stack.
func RunWithOwner(owner any, fn func()) {
	pushOwner(owner)
	defer popOwner()
	fn()
}

// IsRunWithOwner reports whether the calling goroutine is presently executing
// an operation owned by owner.
func IsRunWithOwner(owner any) bool {
	cur, ok := currentOwner()
	return ok && cur == owner
}
