//
// Copyright 2014-2016 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

/*
Package serialsend sends a short text through a serial port.

The canonical import for this library is github.com/abakum/serialsend so the
import line is the following:

	import "github.com/abakum/serialsend"

A Transmitter opens the device, reads its current line state, applies the
configured Mode and Timeouts, writes the payload and closes the device:

	tx := serialsend.NewTransmitter(serialsend.NativeDriver(),
		serialsend.DefaultMode(), serialsend.DefaultTimeouts())
	n, err := tx.Transmit("COM1", []byte("S365"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Sent %v bytes\n", n)

The default mode is 38400_N81. A different frame can be parsed from its
usual short form:

	mode := serialsend.DefaultMode()
	if err := serialsend.ModeFromString("7E1", &mode); err != nil {
		log.Fatal(err)
	}

Every step of a transmission reports its own TransmitError code. Once the
device has been opened it is always closed before Transmit returns, also
when a later step fails. A failed write is reported but still followed by
the close; use IsFatal to tell a lone write failure from the rest.

Only Windows (Win32 communications API) and Linux (termios) devices are
supported. This library doesn't make use of cgo and "C" package.
*/
package serialsend // import "github.com/abakum/serialsend"
