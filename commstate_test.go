package serialsend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDCBModeConversion(t *testing.T) {
	tests := []struct {
		mode     Mode
		parity   byte
		stopBits byte
	}{
		{Mode{BaudRate: 38400, DataBits: 8, Parity: NoParity, StopBits: OneStopBit}, noParity, oneStopBit},
		{Mode{BaudRate: 9600, DataBits: 7, Parity: OddParity, StopBits: TwoStopBits}, oddParity, twoStopBits},
		{Mode{BaudRate: 19200, DataBits: 7, Parity: EvenParity, StopBits: OnePointFiveStopBits}, evenParity, one5StopBits},
		{Mode{BaudRate: 115200, DataBits: 6, Parity: MarkParity, StopBits: OneStopBit}, markParity, oneStopBit},
		{Mode{BaudRate: 300, DataBits: 5, Parity: SpaceParity, StopBits: TwoStopBits}, spaceParity, twoStopBits},
	}
	for _, test := range tests {
		t.Run(test.mode.String(), func(t *testing.T) {
			params := &dcb{Flags: 0x80, XonLim: 2048, XonChar: 17}
			modeToDCB(test.mode, params)
			require.Equal(t, uint32(test.mode.BaudRate), params.BaudRate)
			require.Equal(t, byte(test.mode.DataBits), params.ByteSize)
			require.Equal(t, test.parity, params.Parity)
			require.Equal(t, test.stopBits, params.StopBits)

			// untouched baseline fields
			require.Equal(t, uint32(0x80), params.Flags)
			require.Equal(t, uint16(2048), params.XonLim)
			require.Equal(t, byte(17), params.XonChar)

			require.Equal(t, test.mode, dcbToMode(params))
		})
	}
}

func TestDCBToModeBaseline(t *testing.T) {
	params := &dcb{BaudRate: 9600, ByteSize: 8, Parity: evenParity, StopBits: twoStopBits}
	require.Equal(t, Mode{BaudRate: 9600, DataBits: 8, Parity: EvenParity, StopBits: TwoStopBits}, dcbToMode(params))
}

func TestToCommTimeouts(t *testing.T) {
	timeouts := DefaultTimeouts()
	require.Equal(t, &commTimeouts{
		ReadIntervalTimeout:         50,
		ReadTotalTimeoutMultiplier:  10,
		ReadTotalTimeoutConstant:    50,
		WriteTotalTimeoutMultiplier: 10,
		WriteTotalTimeoutConstant:   50,
	}, toCommTimeouts(&timeouts))
}
