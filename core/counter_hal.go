package core

// Counter is implemented by peripherals that track a count, e.g. a pulse
// counter or a rotary encoder.
type Counter[R, M any] interface {
	// TryReadRaw reads the count register directly.
	TryReadRaw() (R, error)

	// RawToMeasure interprets a raw count. It must be a pure function of
	// raw; gear ratios and lookup tables belong here.
	RawToMeasure(raw R) M
}

// TryRead reads c once and converts the count with RawToMeasure.
// Errors from TryReadRaw are returned unchanged.
func TryRead[R, M any, C Counter[R, M]](c C) (M, error) {
	raw, err := c.TryReadRaw()
	if err != nil {
		var zero M
		return zero, err
	}
	return c.RawToMeasure(raw), nil
}
