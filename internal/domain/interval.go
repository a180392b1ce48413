package domain

// Interval is a half-open [Start, End) time range expressed in minutes since
// midnight (0-1439). It is the primitive every availability and conflict
// computation is built on.
type Interval struct {
	Start int
	End   int
}

// NewInterval creates an interval from start and end minutes of day.
func NewInterval(start, end int) Interval {
	return Interval{Start: start, End: end}
}

// Length returns the interval length in minutes.
func (i Interval) Length() int {
	return i.End - i.Start
}

// IsEmpty returns true for zero-length (or inverted) intervals.
// Empty intervals represent "no blocking" and never overlap anything.
func (i Interval) IsEmpty() bool {
	return i.End <= i.Start
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints do not overlap: [10:00,11:00) and [11:00,12:00) are disjoint.
// Empty intervals never overlap anything, including themselves.
func (i Interval) Overlaps(other Interval) bool {
	if i.IsEmpty() || other.IsEmpty() {
		return false
	}
	return i.Start < other.End && other.Start < i.End
}

// Pad extends the interval end by the given number of minutes.
// Used to apply the salon buffer policy to booking intervals.
func (i Interval) Pad(minutes int) Interval {
	return Interval{Start: i.Start, End: i.End + minutes}
}

// Contains reports whether the interval fully contains other.
func (i Interval) Contains(other Interval) bool {
	return i.Start <= other.Start && other.End <= i.End
}
