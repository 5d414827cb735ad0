//go:build rp2040

package main

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

var ErrNoStateMachine = errors.New("no free PIO state machine")

// buildEdgeCounterProgram counts rising edges on the JMP pin in X and
// pushes the running value continuously, so the RX FIFO always holds a
// recent count.
//
// X counts down from zero; the count is its two's complement negation.
func buildEdgeCounterProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Set(rp2pio.SetDestX, 0).Encode(), // 0: set x, 0
		// .wrap_target
		// low:
		asm.Mov(rp2pio.MovDestISR, rp2pio.MovSrcX).Encode(), // 1: mov isr, x
		asm.Push(false, false).Encode(),                     // 2: push noblock
		asm.Jmp(5, rp2pio.JmpPinInput).Encode(),             // 3: jmp pin, 5
		asm.Jmp(1, rp2pio.JmpAlways).Encode(),               // 4: jmp 1
		// rise:
		asm.Jmp(6, rp2pio.JmpXNZeroDec).Encode(), // 5: jmp x--, 6
		// high:
		asm.Mov(rp2pio.MovDestISR, rp2pio.MovSrcX).Encode(), // 6: mov isr, x
		asm.Push(false, false).Encode(),                     // 7: push noblock
		asm.Jmp(6, rp2pio.JmpPinInput).Encode(),             // 8: jmp pin, 6
		// .wrap
	}
}

// Relocatable; jumps are patched by AddProgram
const edgeCounterOrigin = -1

// RX FIFO depth with the TX FIFO joined
const rxFIFODepth = 8

// PIOCounter counts rising edges on a pin with a PIO state machine. It is
// a core.Counter reporting raw pulses.
type PIOCounter struct {
	pio  *rp2pio.PIO
	sm   rp2pio.StateMachine
	pin  machine.Pin
	last uint32
}

// NewPIOCounter creates a counter on the given PIO block (0 or 1) and
// state machine (0-3)
func NewPIOCounter(pioNum, smNum uint8) *PIOCounter {
	pioHW := rp2pio.PIO0
	if pioNum != 0 {
		pioHW = rp2pio.PIO1
	}
	return &PIOCounter{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
	}
}

// Init loads the program and starts counting edges on pin.
func (c *PIOCounter) Init(pin machine.Pin) error {
	c.pin = pin

	if !c.sm.TryClaim() {
		return ErrNoStateMachine
	}

	program := buildEdgeCounterProgram()
	offset, err := c.pio.AddProgram(program, edgeCounterOrigin)
	if err != nil {
		return err
	}

	c.pin.Configure(machine.PinConfig{Mode: c.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetJmpPin(c.pin)
	cfg.SetInPins(c.pin)
	cfg.SetFIFOJoin(rp2pio.FifoJoinRx)
	cfg.SetWrap(offset+uint8(len(program))-1, offset+1)

	// 1MHz sampling at 125MHz system clock
	cfg.SetClkDivIntFrac(125, 0)

	c.sm.Init(offset, cfg)
	c.sm.SetPindirsConsecutive(c.pin, 1, false)
	c.sm.SetEnabled(true)
	return nil
}

// TryReadRaw drains the RX FIFO and returns the newest count. With nothing
// pushed since the last read, the previous count is returned.
func (c *PIOCounter) TryReadRaw() (uint32, error) {
	for i := 0; i < rxFIFODepth && !c.sm.IsRxFIFOEmpty(); i++ {
		c.last = -c.sm.RxGet()
	}
	return c.last, nil
}

// RawToMeasure passes the pulse count through.
func (c *PIOCounter) RawToMeasure(raw uint32) uint32 {
	return raw
}
