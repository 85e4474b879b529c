package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func fakeList() ([]*enumerator.PortDetails, error) {
	return []*enumerator.PortDetails{
		{Name: "COM1"},
		{Name: "COM4", IsUSB: true, VID: "2341", PID: "8053", SerialNumber: "FB7B6060"},
	}, nil
}

func TestListPorts(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listPorts(&out, fakeList, false))
	require.Equal(t, "Port: COM1\n"+
		"Port: COM4\n"+
		"   USB ID     2341:8053\n"+
		"   USB serial FB7B6060\n", out.String())
}

func TestListPortsUSBOnly(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listPorts(&out, fakeList, true))
	require.Equal(t, "Port: COM4\n"+
		"   USB ID     2341:8053\n"+
		"   USB serial FB7B6060\n", out.String())
}

func TestListPortsError(t *testing.T) {
	failing := func() ([]*enumerator.PortDetails, error) {
		return nil, errors.New("enumeration failed")
	}
	var out bytes.Buffer
	require.EqualError(t, listPorts(&out, failing, false), "enumeration failed")
	require.Empty(t, out.String())
}
