//go:build linux

package unixutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func newPipe(t *testing.T) (rd, wr int) {
	fds := []int{0, 0}
	require.NoError(t, unix.Pipe(fds))
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func TestWaitWritable(t *testing.T) {
	_, wr := newPipe(t)
	ready, err := WaitWritable(wr, time.Second)
	require.NoError(t, err)
	require.True(t, ready)
}

func TestSelectTimesOut(t *testing.T) {
	rd, _ := newPipe(t)
	start := time.Now()
	res, err := Select(NewFDSet(rd), nil, 20*time.Millisecond)
	require.NoError(t, err)
	require.False(t, res.IsReadable(rd))
	require.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestSelectReadable(t *testing.T) {
	rd, wr := newPipe(t)
	_, err := unix.Write(wr, []byte("x"))
	require.NoError(t, err)

	res, err := Select(NewFDSet(rd), NewFDSet(wr), time.Second)
	require.NoError(t, err)
	require.True(t, res.IsReadable(rd))
	require.True(t, res.IsWritable(wr))
}
