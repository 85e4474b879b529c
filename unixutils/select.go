//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build linux

package unixutils

import (
	"time"

	"github.com/creack/goselect"
)

// FDSet is a set of file descriptors suitable for a select call
type FDSet struct {
	set goselect.FDSet
	max uintptr
}

// NewFDSet creates a set of file descriptors suitable for a Select call.
func NewFDSet(fds ...int) *FDSet {
	s := &FDSet{}
	s.Add(fds...)
	return s
}

// Add adds the file descriptors passed as parameter to the FDSet.
func (s *FDSet) Add(fds ...int) {
	for _, fd := range fds {
		f := uintptr(fd)
		s.set.Set(f)
		if f > s.max {
			s.max = f
		}
	}
}

// FDResultSets contains the result of a Select operation.
type FDResultSets struct {
	readable  goselect.FDSet
	writeable goselect.FDSet
}

// IsReadable test if a file descriptor is ready to be read.
func (r *FDResultSets) IsReadable(fd int) bool {
	return r.readable.IsSet(uintptr(fd))
}

// IsWritable test if a file descriptor is ready to be written.
func (r *FDResultSets) IsWritable(fd int) bool {
	return r.writeable.IsSet(uintptr(fd))
}

// Select performs a select system call,
// file descriptors in the rd set are tested for read-events and
// file descriptors in the wd set are tested for write-events.
// The function will block until an event happens or the timeout expires,
// a negative timeout blocks forever.
// The function return an FDResultSets that contains all the file descriptor
// that have a pending read/write event.
func Select(rd, wr *FDSet, timeout time.Duration) (FDResultSets, error) {
	var max uintptr
	res := FDResultSets{}
	if rd != nil {
		res.readable = rd.set
		max = rd.max
	}
	if wr != nil {
		res.writeable = wr.set
		if wr.max > max {
			max = wr.max
		}
	}
	err := goselect.Select(int(max)+1, &res.readable, &res.writeable, nil, timeout)
	return res, err
}

// WaitWritable blocks until fd accepts writes or timeout expires. It
// reports whether fd became writable.
func WaitWritable(fd int, timeout time.Duration) (bool, error) {
	res, err := Select(nil, NewFDSet(fd), timeout)
	if err != nil {
		return false, err
	}
	return res.IsWritable(fd), nil
}
