package xdispatch2

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/stretchr/testify/require"
)

func TestSocketNotifier_FiresOnReadReady(t *testing.T) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	readFD, writeFD := fds[0], fds[1]
	defer unix.Close(readFD)
	defer unix.Close(writeFD)

	q := NewSerialQueue("notifier-target", PriorityDefault)
	fired := make(chan int, 1)
	n := NewSocketNotifier("test", readFD, DirectionRead).TargetQueue(q).Handler(func(fd int, dir Direction) {
		require.True(t, q.IsCurrentQueue())
		require.Equal(t, DirectionRead, dir)
		buf := make([]byte, 8)
		_, _ = unix.Read(fd, buf)
		fired <- fd
	})
	n.Resume()
	defer n.Cancel()

	_, err = unix.Write(writeFD, make([]byte, 8))
	require.NoError(t, err)

	select {
	case fd := <-fired:
		require.Equal(t, readFD, fd)
	case <-time.After(3 * time.Second):
		t.Fatal("notifier never fired")
	}
}

func TestSocketNotifier_AccessorsReflectConstruction(t *testing.T) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	n := NewSocketNotifier("test", fds[0], DirectionWrite)
	require.Equal(t, fds[0], n.Socket())
	require.Equal(t, DirectionWrite, n.Type())
}

func TestSocketNotifier_TargetQueueNilPanics(t *testing.T) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	n := NewSocketNotifier("test", fds[0], DirectionRead)
	require.Panics(t, func() { n.TargetQueue(nil) })
}
