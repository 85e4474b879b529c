//
// Copyright 2014-2018 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// portlist is a tool to list the serial ports serialsend can write to.
// Just run it and it will produce an output like:
//
// $ go run portlist.go
// Port: COM1
// Port: COM4
//    USB ID     2341:8053
//    USB serial FB7B6060504B5952302E314AFF08191A
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"go.bug.st/serial/enumerator"
)

type options struct {
	USBOnly bool `name:"usb" help:"List USB serial ports only."`
}

type lister func() ([]*enumerator.PortDetails, error)

func main() {
	var opts options
	kong.Parse(&opts,
		kong.Name("portlist"),
		kong.Description("List the available serial ports."),
	)
	if err := listPorts(os.Stdout, enumerator.GetDetailedPortsList, opts.USBOnly); err != nil {
		log.Fatal(err)
	}
}

func listPorts(w io.Writer, list lister, usbOnly bool) error {
	ports, err := list()
	if err != nil {
		return err
	}
	for _, port := range ports {
		if usbOnly && !port.IsUSB {
			continue
		}
		fmt.Fprintf(w, "Port: %s\n", port.Name)
		if port.IsUSB {
			fmt.Fprintf(w, "   USB ID     %s:%s\n", port.VID, port.PID)
			fmt.Fprintf(w, "   USB serial %s\n", port.SerialNumber)
		}
	}
	return nil
}
