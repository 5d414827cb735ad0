//go:build rp2040

package main

import (
	"machine"
	"time"

	"tickcount/core"
	"tickcount/devices/as5600"
	"tickcount/protocol"

	"tinygo.org/x/drivers"
)

// Board wiring
const (
	counterPin    = machine.GPIO15
	counterOID    = 0
	i2cSDA        = machine.GPIO4
	i2cSCL        = machine.GPIO5
	i2cFrequency  = 400000
	reportEveryUS = 500000
	usbBufferSize = 256
)

// Command IDs served to the host
const (
	cmdGetClock   = 2
	cmdClock      = 3
	cmdGetCounter = 4
	cmdCounter    = 5
)

var (
	inputBuffer *protocol.FifoBuffer
	responder   *protocol.Responder

	hwTimer     HardwareTimer
	edgeCounter *PIOCounter
	angle       *as5600.Device

	uptime      *core.TimeSensor[Microseconds, uint64, time.Duration, HardwareTimer]
	angleSensor *core.CountSensor[uint16, as5600.Milliradians, *as5600.Device]
	edgeSensor  *core.CountSensor[uint32, uint32, *PIOCounter]

	msgerrors uint32
)

func main() {
	InitDebugUART()

	edgeCounter = NewPIOCounter(0, 0)
	if err := edgeCounter.Init(counterPin); err != nil {
		core.DebugError("counter", err)
		edgeCounter = nil
	}

	machine.I2C0.Configure(machine.I2CConfig{
		Frequency: i2cFrequency,
		SDA:       i2cSDA,
		SCL:       i2cSCL,
	})
	angle = as5600.New(machine.I2C0)

	uptime = core.NewTimeSensor[Microseconds, uint64, time.Duration]("uptime", hwTimer)
	angleSensor = core.NewCountSensor[uint16, as5600.Milliradians]("as5600", drivers.MagneticField, angle)
	if edgeCounter != nil {
		edgeSensor = core.NewCountSensor[uint32, uint32]("edges", drivers.Distance, edgeCounter)
	}

	inputBuffer = protocol.NewFifoBuffer(usbBufferSize)
	responder = protocol.NewResponder(handleCommand, writeUSB)

	go usbReaderLoop()

	reportTicks := core.TimerFromUS(reportEveryUS)
	lastReport := core.GetTime()
	for {
		UpdateSystemTime()

		if inputBuffer.Available() > 0 {
			responder.Receive(inputBuffer)
		}

		now := core.GetTime()
		if core.TicksSince(lastReport, now) >= reportTicks {
			lastReport = now
			report()
		}

		time.Sleep(10 * time.Microsecond)
	}
}

// report updates every sensor and logs its measurement. Failed updates
// are logged by the sensor itself.
func report() {
	if uptime.Update(drivers.AllMeasurements) == nil {
		core.DebugReading(uptime.Name, int64(uptime.Value()))
	}
	if angleSensor.Update(drivers.AllMeasurements) == nil {
		core.DebugReading(angleSensor.Name, int64(angleSensor.Value()))
	}
	if edgeSensor != nil && edgeSensor.Update(drivers.AllMeasurements) == nil {
		core.DebugReading(edgeSensor.Name, int64(edgeSensor.Value()))
	}
}

// handleCommand serves get_clock and get_counter
func handleCommand(cmdID uint16, args *[]byte, out protocol.OutputBuffer) error {
	switch cmdID {
	case cmdGetClock:
		raw, err := hwTimer.TryNowRaw()
		if err != nil {
			return err
		}
		protocol.EncodeVLQUint(out, cmdClock)
		protocol.EncodeVLQUint(out, uint32(raw))
	case cmdGetCounter:
		oid, err := protocol.DecodeVLQUint(args)
		if err != nil {
			return err
		}
		if oid != counterOID || edgeCounter == nil {
			return nil
		}
		count, err := edgeCounter.TryReadRaw()
		if err != nil {
			return err
		}
		protocol.EncodeVLQUint(out, cmdCounter)
		protocol.EncodeVLQUint(out, oid)
		protocol.EncodeVLQUint(out, count)
	default:
		msgerrors++
		core.DebugAsync("unknown command")
	}
	return nil
}

// usbReaderLoop moves bytes from USB CDC into the input FIFO
func usbReaderLoop() {
	for {
		for machine.Serial.Buffered() > 0 {
			data, err := machine.Serial.ReadByte()
			if err != nil {
				msgerrors++
				break
			}
			if inputBuffer.Write([]byte{data}) == 0 {
				msgerrors++
			}
		}
		time.Sleep(100 * time.Microsecond)
	}
}

// writeUSB sends a frame, handling partial writes
func writeUSB(frame []byte) {
	written := 0
	for written < len(frame) {
		n, err := machine.Serial.Write(frame[written:])
		if err != nil || n == 0 {
			msgerrors++
			return
		}
		written += n
	}
}
