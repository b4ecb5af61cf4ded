package clock

import "time"

// Clock supplies the run's reference time. Validation contracts compare
// timestamps against it, so tests pin it and a run stays reproducible.
type Clock interface {
	Now() time.Time
}
