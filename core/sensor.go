package core

import (
	"time"

	"tinygo.org/x/drivers"
)

// TimeSensor adapts a TimeCount to drivers.Sensor so a clock can be
// updated together with other TinyGo sensors.
type TimeSensor[S TickScale[R, M], R, M any, T TimeCount[R]] struct {
	Name  string
	Clock Clock[S, R, M, T]
	value M
}

// NewTimeSensor wraps src, scaling its ticks with S.
func NewTimeSensor[S TickScale[R, M], R, M any, T TimeCount[R]](name string, src T) *TimeSensor[S, R, M, T] {
	return &TimeSensor[S, R, M, T]{
		Name:  name,
		Clock: Clock[S, R, M, T]{Source: src},
	}
}

// Update implements drivers.Sensor. Only drivers.Time triggers a read.
func (s *TimeSensor[S, R, M, T]) Update(which drivers.Measurement) error {
	if which&drivers.Time == 0 {
		return nil
	}
	v, err := s.Clock.TryNow()
	if err != nil {
		DebugError(s.Name, err)
		return err
	}
	s.value = v
	return nil
}

// Value returns the measurement from the last successful Update.
func (s *TimeSensor[S, R, M, T]) Value() M {
	return s.value
}

// CountSensor adapts a Counter to drivers.Sensor.
// Kind selects which measurement bit triggers a read, e.g. drivers.Distance
// for a wheel encoder.
type CountSensor[R, M any, C Counter[R, M]] struct {
	Name   string
	Kind   drivers.Measurement
	Source C
	value  M
}

// NewCountSensor wraps src, reading it when kind is requested.
func NewCountSensor[R, M any, C Counter[R, M]](name string, kind drivers.Measurement, src C) *CountSensor[R, M, C] {
	return &CountSensor[R, M, C]{
		Name:   name,
		Kind:   kind,
		Source: src,
	}
}

// Update implements drivers.Sensor.
func (s *CountSensor[R, M, C]) Update(which drivers.Measurement) error {
	if which&s.Kind == 0 {
		return nil
	}
	v, err := TryRead[R, M](s.Source)
	if err != nil {
		DebugError(s.Name, err)
		return err
	}
	s.value = v
	return nil
}

// Value returns the measurement from the last successful Update.
func (s *CountSensor[R, M, C]) Value() M {
	return s.value
}

var _ drivers.Sensor = (*TimeSensor[SystemTickScale, uint32, time.Duration, SystemClock])(nil)
