package serialsend

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

func testPortName(t *testing.T) string {
	ports, err := serial.GetPortsList()
	if err != nil || len(ports) == 0 {
		t.SkipNow()
	}
	return ports[0]
}

func TestTransmitToFirstPort(t *testing.T) {
	// prevent port from being busy in other tests
	defer time.Sleep(time.Millisecond)

	name := testPortName(t)
	tx := NewTransmitter(NativeDriver(), DefaultMode(), DefaultTimeouts())
	_, err := tx.Transmit(name, []byte("S365"))
	require.False(t, IsFatal(err), "transmit failed: %v", err)
}

func TestOpenIsExclusive(t *testing.T) {
	defer time.Sleep(time.Millisecond)

	name := testPortName(t)
	dev, err := NativeDriver().Open(name)
	require.NoError(t, err)
	defer dev.Close()

	_, err = NativeDriver().Open(name)
	var portErr *PortError
	require.True(t, errors.As(err, &portErr))
	require.Equal(t, PortBusy, portErr.Code())
}

func TestOpenMissingPort(t *testing.T) {
	_, err := NativeDriver().Open("COM255")
	var portErr *PortError
	require.True(t, errors.As(err, &portErr))
	require.Equal(t, PortNotFound, portErr.Code())
}
