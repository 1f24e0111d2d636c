// Package measure normalizes unit-tagged dimensions. A caller may supply the
// same dimension in pixels, millimeters or inches; exactly one unit system
// survives, chosen by fixed priority rather than conversion.
package measure

// MaxValue bounds every measurement on the remote API.
const MaxValue = 100000

// Measurement is a numeric quantity tagged with exactly one unit.
// Unset units are omitted when marshalled.
type Measurement struct {
	Pixels     *int     `json:"pixels,omitempty" validate:"omitempty,gte=0,lte=100000"`
	Millimeter *float64 `json:"millimeter,omitempty" validate:"omitempty,gte=0,lte=100000"`
	Inches     *float64 `json:"inches,omitempty" validate:"omitempty,gte=0,lte=100000"`
}

// Px returns a pixel measurement.
func Px(v int) Measurement {
	return Measurement{Pixels: &v}
}

// Mm returns a millimeter measurement.
func Mm(v float64) Measurement {
	return Measurement{Millimeter: &v}
}

// In returns an inch measurement.
func In(v float64) Measurement {
	return Measurement{Inches: &v}
}

// Unit names the populated unit, or "" for an empty measurement.
func (m Measurement) Unit() string {
	switch {
	case m.Pixels != nil:
		return "pixels"
	case m.Millimeter != nil:
		return "millimeter"
	case m.Inches != nil:
		return "inches"
	default:
		return ""
	}
}

// Select wraps each element of the first non-empty list, in priority
// pixels, millimeters, inches. Lower-priority lists are discarded.
// All lists empty yields nil.
func Select(px []int, mm []float64, in []float64) []Measurement {
	switch {
	case len(px) > 0:
		return wrap(px, Px)
	case len(mm) > 0:
		return wrap(mm, Mm)
	case len(in) > 0:
		return wrap(in, In)
	default:
		return nil
	}
}

// SelectOne is the scalar form of Select.
func SelectOne(px *int, mm, in *float64) *Measurement {
	var m Measurement
	switch {
	case px != nil:
		m = Px(*px)
	case mm != nil:
		m = Mm(*mm)
	case in != nil:
		m = In(*in)
	default:
		return nil
	}
	return &m
}

// Conflicting reports whether more than one unit system was supplied.
// Select resolves the conflict; callers use this only to log it.
func Conflicting(px, mm, in int) bool {
	n := 0
	for _, c := range []int{px, mm, in} {
		if c > 0 {
			n++
		}
	}
	return n > 1
}

func wrap[T any](values []T, unit func(T) Measurement) []Measurement {
	out := make([]Measurement, len(values))
	for i, v := range values {
		out[i] = unit(v)
	}
	return out
}
