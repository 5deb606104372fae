package view

// Counter is a displayed count that may run ahead of the store. Confirmed
// is set once the value has been read back after an increment.
type Counter struct {
	Value     int
	Confirmed bool
}

func Confirmed(v int) Counter {
	return Counter{Value: v, Confirmed: true}
}

// Optimistic is base+1, shown while the increment is in flight.
func Optimistic(base int) Counter {
	return Counter{Value: base + 1}
}

// Reconcile replaces the optimistic value with the store's. A nil read
// leaves the counter unconfirmed.
func (c Counter) Reconcile(stored *int) Counter {
	if stored == nil {
		return c
	}
	return Confirmed(*stored)
}
