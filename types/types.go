// Package types holds the small shared value types exchanged between the
// core services and the platform layer.
package types

// DateTime is a calendar timestamp in the external clock's own fields.
// Year is two-digit (0..99) as kept by the clock hardware.
type DateTime struct {
	Year    uint8 // 0..99
	Month   uint8 // 1..12
	Day     uint8 // 1..31
	Weekday uint8 // 1=Monday .. 7=Sunday
	Hour    uint8 // 0..23
	Minute  uint8 // 0..59
	Second  uint8 // 0..59
}

// IsZero reports whether dt still holds the reset value.
func (dt DateTime) IsZero() bool {
	return dt == DateTime{}
}

// AlarmConfig is a write-once daily alarm request consumed by the clock
// service. Recurrence is daily: date and weekday are ignored.
type AlarmConfig struct {
	Hour   uint8
	Minute uint8
	Second uint8
	Daily  bool
}

// TempRecord tracks one monitoring session's extrema. Created and reset when
// monitoring (re)starts; updated every sampling cycle.
type TempRecord struct {
	Current   float32
	CurrentAt DateTime

	Highest   float32
	HighestAt DateTime

	Lowest   float32
	LowestAt DateTime
}

// Reset restores the session-start bounds. The asymmetric 0/100 bounds match
// the device's plausible ambient range: the first sample above 0 claims the
// high slot, the first sample below 100 that is not also a new high claims
// the low slot.
func (r *TempRecord) Reset() {
	*r = TempRecord{Lowest: 100.0}
}

// Observe folds one sample into the record. At most one extremum moves per
// cycle: a sample that beats the high bound is not re-tested against the low
// bound.
func (r *TempRecord) Observe(v float32, at DateTime) {
	r.Current = v
	r.CurrentAt = at
	if v > r.Highest {
		r.Highest = v
		r.HighestAt = at
	} else if v < r.Lowest {
		r.Lowest = v
		r.LowestAt = at
	}
}
