package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"tickcount/core"
	"tickcount/host/mcu"
	"tickcount/host/serial"
)

var (
	device     = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud       = flag.Int("baud", 250000, "Baud rate (ignored for USB CDC)")
	freq       = flag.Int("freq", 1000000, "MCU clock frequency in Hz (1000000 or 12000000)")
	samples    = flag.Int("samples", 5, "Number of samples to take")
	interval   = flag.Duration("interval", 500*time.Millisecond, "Delay between samples")
	counterOID = flag.Int("counter-oid", -1, "Counter oid to sample (-1 disables)")
	timeout    = flag.Duration("timeout", mcu.DefaultTimeout, "Per-query timeout")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
)

// clockReader is satisfied by every mcu.Clock instantiation
type clockReader interface {
	TryNowRaw() (uint32, error)
	Scale(raw uint32) time.Duration
}

func main() {
	flag.Parse()

	if *verbose {
		core.SetDebugWriter(func(s string) { fmt.Fprintln(os.Stderr, s) })
		core.SetDebugEnabled(true)
	}

	if *counterOID > 255 {
		fmt.Fprintf(os.Stderr, "Error: counter oid %d out of range\n", *counterOID)
		os.Exit(1)
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}

	session := mcu.NewSession(port)
	session.SetTimeout(*timeout)

	var clock clockReader
	switch *freq {
	case 1000000:
		clock = mcu.NewClock[mcu.Hz1M](session, mcu.DefaultCommandIDs)
	case 12000000:
		clock = mcu.NewClock[mcu.Hz12M](session, mcu.DefaultCommandIDs)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported clock frequency %d\n", *freq)
		os.Exit(1)
	}

	var counter *mcu.Counter[mcu.Pulses]
	if *counterOID >= 0 {
		counter = mcu.NewCounter[mcu.Pulses](session, mcu.DefaultCommandIDs, uint8(*counterOID))
	}

	fmt.Printf("Sampling %s (%d Hz clock)\n", *device, *freq)

	failures := 0
	for i := 0; i < *samples; i++ {
		if i > 0 {
			time.Sleep(*interval)
		}

		if err := sampleClock(clock); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failures++
		}
		if counter != nil {
			if err := sampleCounter(counter); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				failures++
			}
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func sampleClock(clock clockReader) error {
	raw, err := clock.TryNowRaw()
	if err != nil {
		return fmt.Errorf("clock read failed: %w", err)
	}
	fmt.Printf("clock raw=%d now=%v\n", raw, clock.Scale(raw))
	return nil
}

func sampleCounter(counter *mcu.Counter[mcu.Pulses]) error {
	count, err := counter.TryRead()
	if err != nil {
		return fmt.Errorf("counter read failed: %w", err)
	}
	fmt.Printf("counter pulses=%.0f\n", count)
	return nil
}
