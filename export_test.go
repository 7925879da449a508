package xdispatch2

import "github.com/joeycumines/xdispatch2/internal/naive"

// cancelMainThread lets tests stop the shared main queue's Exec loop without
// exposing naive.MainThread outside the module.
func cancelMainThread() {
	naive.MainThread.Cancel()
}
