//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialsend

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"

	"github.com/abakum/serialsend/unixutils"
)

type unixDriver struct{}

// NativeDriver returns the Driver backed by termios ioctls.
func NativeDriver() Driver {
	return unixDriver{}
}

// CSTOPB only selects between one and two stop bits.
const nativeOnePointFiveStopBits = false

type unixPort struct {
	handle   int
	timeouts Timeouts
}

var baudrateMap = map[int]uint32{
	50:      unix.B50,
	75:      unix.B75,
	110:     unix.B110,
	134:     unix.B134,
	150:     unix.B150,
	200:     unix.B200,
	300:     unix.B300,
	600:     unix.B600,
	1200:    unix.B1200,
	1800:    unix.B1800,
	2400:    unix.B2400,
	4800:    unix.B4800,
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	230400:  unix.B230400,
	460800:  unix.B460800,
	500000:  unix.B500000,
	576000:  unix.B576000,
	921600:  unix.B921600,
	1000000: unix.B1000000,
	1152000: unix.B1152000,
	1500000: unix.B1500000,
	2000000: unix.B2000000,
	2500000: unix.B2500000,
	3000000: unix.B3000000,
	3500000: unix.B3500000,
	4000000: unix.B4000000,
}

var databitsMap = map[int]uint32{
	5: unix.CS5,
	6: unix.CS6,
	7: unix.CS7,
	8: unix.CS8,
}

func (unixDriver) Open(portName string) (Device, error) {
	if portName == "" {
		return nil, &PortError{code: PortNotFound}
	}
	h, err := unix.Open(portName, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		switch err {
		case unix.EBUSY:
			return nil, &PortError{code: PortBusy, causedBy: err}
		case unix.EACCES:
			return nil, &PortError{code: PermissionDenied, causedBy: err}
		case unix.ENOENT:
			return nil, &PortError{code: PortNotFound, causedBy: err}
		}
		return nil, &PortError{code: OsError, causedBy: err}
	}
	// Refuse further opens of the same tty while we hold it
	if err := unix.IoctlSetInt(h, unix.TIOCEXCL, 0); err != nil {
		unix.Close(h)
		return nil, &PortError{code: InvalidSerialPort, causedBy: err}
	}
	return &unixPort{handle: h}, nil
}

func (port *unixPort) GetState() (*LineState, error) {
	settings, err := unix.IoctlGetTermios(port.handle, unix.TCGETS)
	if err != nil {
		return nil, &PortError{code: InvalidSerialPort, causedBy: err}
	}
	return &LineState{Mode: termiosToMode(settings), Native: settings}, nil
}

func (port *unixPort) SetState(state *LineState) error {
	settings, ok := state.Native.(*unix.Termios)
	if !ok {
		return &PortError{code: InvalidSerialPort}
	}
	if err := modeToTermios(state.Mode, settings); err != nil {
		return err
	}
	if err := unix.IoctlSetTermios(port.handle, unix.TCSETS, settings); err != nil {
		return &PortError{code: InvalidSerialPort, causedBy: err}
	}
	return nil
}

// SetTimeouts keeps the policy for Write. Termios has no notion of a
// write timeout, so it is enforced with select.
func (port *unixPort) SetTimeouts(t *Timeouts) error {
	if t.WriteTotalConstant < 0 || t.WriteTotalMultiplier < 0 {
		return &PortError{code: InvalidTimeoutValue}
	}
	port.timeouts = *t
	return nil
}

// Write sends p, giving up once the write total timeout expires. Like
// WriteFile on Windows, an expired timeout is not an error: the count of
// bytes that made it out is returned.
func (port *unixPort) Write(p []byte) (int, error) {
	total := port.timeouts.WriteTotal(len(p))
	var deadline time.Time
	if total > 0 {
		deadline = time.Now().Add(total)
	}
	written := 0
	for written < len(p) {
		wait := time.Duration(-1)
		if !deadline.IsZero() {
			wait = time.Until(deadline)
			if wait <= 0 {
				return written, nil
			}
		}
		ready, err := unixutils.WaitWritable(port.handle, wait)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return written, err
		}
		if !ready {
			continue
		}
		n, err := unix.Write(port.handle, p[written:])
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

func (port *unixPort) Close() error {
	unix.IoctlSetInt(port.handle, unix.TIOCNXCL, 0)
	return unix.Close(port.handle)
}

// termios manipulation functions

// termiosToMode decodes the line parameters held in settings.
func termiosToMode(settings *unix.Termios) Mode {
	var mode Mode
	for rate, flag := range baudrateMap {
		if settings.Cflag&unix.CBAUD == flag {
			mode.BaudRate = rate
		}
	}
	for bits, flag := range databitsMap {
		if settings.Cflag&unix.CSIZE == flag {
			mode.DataBits = bits
		}
	}
	switch {
	case settings.Cflag&unix.PARENB == 0:
		mode.Parity = NoParity
	case settings.Cflag&unix.CMSPAR != 0 && settings.Cflag&unix.PARODD != 0:
		mode.Parity = MarkParity
	case settings.Cflag&unix.CMSPAR != 0:
		mode.Parity = SpaceParity
	case settings.Cflag&unix.PARODD != 0:
		mode.Parity = OddParity
	default:
		mode.Parity = EvenParity
	}
	if settings.Cflag&unix.CSTOPB != 0 {
		mode.StopBits = TwoStopBits
	}
	return mode
}

// modeToTermios switches settings to raw mode and applies mode on top.
func modeToTermios(mode Mode, settings *unix.Termios) error {
	setRawMode(settings)
	if err := setTermSettingsBaudrate(mode.BaudRate, settings); err != nil {
		return err
	}
	if err := setTermSettingsParity(mode.Parity, settings); err != nil {
		return err
	}
	if err := setTermSettingsDataBits(mode.DataBits, settings); err != nil {
		return err
	}
	return setTermSettingsStopBits(mode.StopBits, settings)
}

func setTermSettingsBaudrate(speed int, settings *unix.Termios) error {
	baudrate, ok := baudrateMap[speed]
	if !ok {
		return &PortError{code: InvalidSpeed}
	}
	settings.Cflag &^= unix.CBAUD
	settings.Cflag |= baudrate
	settings.Ispeed = baudrate
	settings.Ospeed = baudrate
	return nil
}

func setTermSettingsParity(parity Parity, settings *unix.Termios) error {
	switch parity {
	case NoParity:
		settings.Cflag &^= unix.PARENB | unix.PARODD | unix.CMSPAR
		settings.Iflag &^= unix.INPCK
	case OddParity:
		settings.Cflag |= unix.PARENB | unix.PARODD
		settings.Cflag &^= unix.CMSPAR
		settings.Iflag |= unix.INPCK
	case EvenParity:
		settings.Cflag &^= unix.PARODD | unix.CMSPAR
		settings.Cflag |= unix.PARENB
		settings.Iflag |= unix.INPCK
	case MarkParity:
		settings.Cflag |= unix.PARENB | unix.PARODD | unix.CMSPAR
		settings.Iflag |= unix.INPCK
	case SpaceParity:
		settings.Cflag &^= unix.PARODD
		settings.Cflag |= unix.PARENB | unix.CMSPAR
		settings.Iflag |= unix.INPCK
	default:
		return &PortError{code: InvalidParity}
	}
	return nil
}

func setTermSettingsDataBits(bits int, settings *unix.Termios) error {
	databits, ok := databitsMap[bits]
	if !ok {
		return &PortError{code: InvalidDataBits}
	}
	settings.Cflag &^= unix.CSIZE
	settings.Cflag |= databits
	return nil
}

func setTermSettingsStopBits(bits StopBits, settings *unix.Termios) error {
	switch bits {
	case OneStopBit:
		settings.Cflag &^= unix.CSTOPB
	case TwoStopBits:
		settings.Cflag |= unix.CSTOPB
	default:
		return &PortError{code: InvalidStopBits}
	}
	return nil
}

func setRawMode(settings *unix.Termios) {
	// Set local mode
	settings.Cflag |= unix.CREAD | unix.CLOCAL

	// No flow control
	settings.Cflag &^= unix.CRTSCTS

	// Set raw mode
	settings.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHOE | unix.ECHOK |
		unix.ECHONL | unix.ECHOCTL | unix.ECHOPRT | unix.ECHOKE | unix.ISIG | unix.IEXTEN
	settings.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY | unix.INPCK |
		unix.IGNPAR | unix.PARMRK | unix.ISTRIP | unix.IGNBRK | unix.BRKINT | unix.INLCR |
		unix.IGNCR | unix.ICRNL | unix.IUCLC
	settings.Oflag &^= unix.OPOST

	settings.Cc[unix.VMIN] = 1
	settings.Cc[unix.VTIME] = 0
}
