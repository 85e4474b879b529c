//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// serialsend sends a text through a serial port at 38400 baud, 8N1.
// The text cannot contain any spaces. It may start with a dash unless it
// spells one of the flags below, in which case put "--" in front of it.
//
// $ serialsend COM1 S365
// $ serialsend --baud 9600 COM1 -5
//
// Nothing is printed on success. Failures are reported one per line on
// stderr and, except for a failed write, end with exit status 1.
package main

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/abakum/serialsend"
)

var version = "dev"

const usageLine = "Usage: serialsend [flags] DEVICE_NAME TEXT_TO_SEND"

type options struct {
	Device      string           `arg:"" name:"device-name" help:"Serial device, like COM1 or /dev/ttyUSB0."`
	Text        string           `arg:"" name:"text-to-send" help:"Text to send, it must not contain spaces."`
	Baud        int              `default:"38400" env:"SERIALSEND_BAUD" help:"Line speed in bits per second."`
	Frame       string           `default:"8N1" env:"SERIALSEND_FRAME" help:"Data bits, parity (N, O, E, M, S) and stop bits."`
	Count       int              `default:"-1" help:"Number of bytes of the text to send, all of them when negative."`
	LegacyCount bool             `help:"Send as many bytes as the device name is long, like old SerialSend builds."`
	Version     kong.VersionFlag `short:"v" help:"Show program version."`
}

func main() {
	os.Exit(run(os.Args[1:], serialsend.NativeDriver(), os.Stdout, os.Stderr))
}

func run(args []string, driver serialsend.Driver, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", 0)

	var opts options
	parser, err := kong.New(&opts,
		kong.Name("serialsend"),
		kong.Description("Send a text through a serial port."),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version},
	)
	if err != nil {
		logger.Printf("Error: %v", err)
		return 1
	}
	if _, err := parser.Parse(splitArgs(parser.Model, args)); err != nil {
		logger.Printf("%s (%v)", usageLine, err)
		return 1
	}
	return opts.send(driver, logger)
}

// splitArgs moves the flags the application knows in front of a "--", so
// that any other token, "-5" or "-S365" included, is read as a positional
// argument. Tokens after an explicit "--" are positional too.
func splitArgs(app *kong.Application, args []string) []string {
	// flag token -> whether it takes a separate value
	known := map[string]bool{"-h": false, "--help": false}
	for _, flag := range app.Flags {
		takesValue := !flag.IsBool()
		known["--"+flag.Name] = takesValue
		for _, alias := range flag.Aliases {
			known["--"+alias] = takesValue
		}
		if flag.Short != 0 {
			known["-"+string(flag.Short)] = takesValue
		}
	}

	var flags, positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		name, _, inline := strings.Cut(arg, "=")
		takesValue, ok := known[name]
		if !ok {
			positionals = append(positionals, arg)
			continue
		}
		flags = append(flags, arg)
		if takesValue && !inline && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return append(append(flags, "--"), positionals...)
}

func (opts *options) send(driver serialsend.Driver, logger *log.Logger) int {
	mode := serialsend.DefaultMode()
	mode.BaudRate = opts.Baud
	if err := serialsend.ModeFromString(opts.Frame, &mode); err != nil {
		logger.Printf("Error: %v", serialsend.NewUsageError(err))
		return 1
	}

	tx := serialsend.NewTransmitter(driver, mode, serialsend.DefaultTimeouts())
	tx.Count = opts.Count
	tx.LegacyCount = opts.LegacyCount

	_, err := tx.Transmit(opts.Device, []byte(opts.Text))
	for _, e := range serialsend.Errors(err) {
		logger.Printf("Error: %v", e)
	}
	if serialsend.IsFatal(err) {
		return 1
	}
	return 0
}
