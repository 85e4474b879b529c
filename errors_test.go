package serialsend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransmitErrorMessages(t *testing.T) {
	tests := map[ErrorCode]string{
		OpenFailed:          "serial port COM1 could not be opened",
		QueryFailed:         "error getting device state",
		ConfigureFailed:     "error setting device parameters",
		TimeoutConfigFailed: "error setting timeouts",
		WriteFailed:         "error writing text to COM1",
		CloseFailed:         "error closing serial device COM1",
	}
	for code, msg := range tests {
		err := &TransmitError{code: code, device: "COM1"}
		require.Equal(t, msg, err.Error())
		require.Equal(t, code, err.Code())
		require.Equal(t, "COM1", err.Device())
	}
}

func TestErrors(t *testing.T) {
	require.Nil(t, Errors(nil))

	plain := errors.New("plain")
	errs := Errors(plain)
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], plain)
	require.True(t, IsFatal(plain))

	write := &TransmitError{code: WriteFailed, device: "COM1"}
	require.False(t, IsFatal(write))
	require.False(t, IsFatal(nil))

	joined := errors.Join(write, &TransmitError{code: CloseFailed, device: "COM1"})
	errs = Errors(joined)
	require.Len(t, errs, 2)
	require.Equal(t, WriteFailed, errs[0].Code())
	require.Equal(t, CloseFailed, errs[1].Code())
	require.True(t, IsFatal(joined))
}

func TestNewUsageError(t *testing.T) {
	err := NewUsageError(&PortError{code: InvalidParity})
	require.Equal(t, UsageError, err.Code())
	require.Equal(t, "invalid usage: Port parity invalid or not supported", err.Error())
	require.True(t, IsFatal(err))
}
