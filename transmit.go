//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialsend

import "errors"

// Transmitter sends a payload through a serial device. A zero Transmitter
// is not usable, build one with NewTransmitter.
type Transmitter struct {
	driver   Driver
	mode     Mode
	timeouts Timeouts

	// Count is the number of payload bytes to write. A negative value
	// writes the whole payload. Counts beyond the payload are clamped.
	Count int

	// LegacyCount writes as many bytes as the device name is long, the
	// way historic SerialSend builds did. It overrides Count.
	LegacyCount bool
}

// NewTransmitter returns a Transmitter that opens devices through driver
// and configures them with mode and timeouts.
func NewTransmitter(driver Driver, mode Mode, timeouts Timeouts) *Transmitter {
	return &Transmitter{
		driver:   driver,
		mode:     mode,
		timeouts: timeouts,
		Count:    -1,
	}
}

// Mode returns the line configuration applied by t.
func (t *Transmitter) Mode() Mode {
	return t.mode
}

// Transmit opens deviceName, configures it, writes payload and closes the
// device again. It returns the number of bytes actually written.
//
// Once the device is open it is closed exactly once, whatever step fails.
// A failed write does not stop the close; when both fail the returned
// error joins a WriteFailed and a CloseFailed TransmitError.
func (t *Transmitter) Transmit(deviceName string, payload []byte) (n int, err error) {
	if err := t.mode.Validate(); err != nil {
		return 0, NewUsageError(err)
	}

	dev, err := t.driver.Open(deviceName)
	if err != nil {
		return 0, &TransmitError{code: OpenFailed, device: deviceName, causedBy: err}
	}
	defer func() {
		cerr := dev.Close()
		if cerr == nil {
			return
		}
		closeErr := &TransmitError{code: CloseFailed, device: deviceName, causedBy: cerr}
		if err == nil {
			err = closeErr
		} else {
			err = errors.Join(err, closeErr)
		}
	}()

	state, err := dev.GetState()
	if err != nil {
		return 0, &TransmitError{code: QueryFailed, device: deviceName, causedBy: err}
	}
	state.Mode = t.mode
	if err := dev.SetState(state); err != nil {
		return 0, &TransmitError{code: ConfigureFailed, device: deviceName, causedBy: err}
	}

	timeouts := t.timeouts
	if err := dev.SetTimeouts(&timeouts); err != nil {
		return 0, &TransmitError{code: TimeoutConfigFailed, device: deviceName, causedBy: err}
	}

	n, werr := dev.Write(payload[:t.writeCount(deviceName, payload)])
	if werr != nil {
		return n, &TransmitError{code: WriteFailed, device: deviceName, causedBy: werr}
	}
	return n, nil
}

func (t *Transmitter) writeCount(deviceName string, payload []byte) int {
	count := t.Count
	if t.LegacyCount {
		count = len(deviceName)
	}
	if count < 0 || count > len(payload) {
		count = len(payload)
	}
	return count
}
