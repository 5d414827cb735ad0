package core

// TickScale is the length of time one clock tick represents.
// The zero value of a TickScale type is the scale used by TryNow, so a
// peripheral running at a fixed 80MHz declares a struct{} type whose Mul
// multiplies by 12.5ns.
type TickScale[R, M any] interface {
	// Mul scales a raw tick count into the elapsed-time measurement.
	Mul(raw R) M
}

// TimeCount is implemented by clock/timer peripherals.
// R is the register's native representation, typically uint32 or uint64.
type TimeCount[R any] interface {
	// TryNowRaw reads the tick register directly.
	// No interpretation or scaling is applied.
	TryNowRaw() (R, error)
}

// TryNow reads t once and scales the tick count by the zero value of S.
// Errors from TryNowRaw are returned unchanged.
func TryNow[S TickScale[R, M], R, M any, T TimeCount[R]](t T) (M, error) {
	raw, err := t.TryNowRaw()
	if err != nil {
		var zero M
		return zero, err
	}
	var scale S
	return scale.Mul(raw), nil
}

// Clock binds a tick source to its scale type.
//
//	clk := core.Clock[Hz80M, uint32, time.Duration, *Timer0]{Source: t}
//	d, err := clk.TryNow()
type Clock[S TickScale[R, M], R, M any, T TimeCount[R]] struct {
	Source T
}

// TryNowRaw implements TimeCount.
func (c Clock[S, R, M, T]) TryNowRaw() (R, error) {
	return c.Source.TryNowRaw()
}

// TryNow returns the scaled time of the underlying source.
func (c Clock[S, R, M, T]) TryNow() (M, error) {
	return TryNow[S, R, M](c.Source)
}
