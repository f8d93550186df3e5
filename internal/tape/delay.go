package tape

import "time"

// Delays holds the simulated latency of each operation category.
type Delays struct {
	Move   time.Duration
	Read   time.Duration
	Write  time.Duration
	Rewind time.Duration
}

// IsZero reports whether no delay is configured.
func (d Delays) IsZero() bool {
	return d == Delays{}
}

// Delayed wraps a tape and blocks for the configured duration before each
// operation. Delays never change results.
type Delayed struct {
	inner  Tape
	delays Delays
	sleep  func(time.Duration)
}

// WithDelays wraps t so every operation first waits for its category's delay.
func WithDelays(t Tape, d Delays) *Delayed {
	return &Delayed{inner: t, delays: d, sleep: time.Sleep}
}

func (d *Delayed) wait(v time.Duration) {
	if v > 0 {
		d.sleep(v)
	}
}

// Read implements Tape.
func (d *Delayed) Read() (int32, bool, error) {
	d.wait(d.delays.Read)
	return d.inner.Read()
}

// Write implements Tape.
func (d *Delayed) Write(v int32) error {
	d.wait(d.delays.Write)
	return d.inner.Write(v)
}

// MoveForward implements Tape. A forward move inspects the current cell
// first, so it costs a read on top of the move.
func (d *Delayed) MoveForward() (bool, error) {
	d.wait(d.delays.Move)
	d.wait(d.delays.Read)
	return d.inner.MoveForward()
}

// MoveBackward implements Tape.
func (d *Delayed) MoveBackward() (bool, error) {
	d.wait(d.delays.Move)
	return d.inner.MoveBackward()
}

// Rewind implements Tape.
func (d *Delayed) Rewind() error {
	d.wait(d.delays.Rewind)
	return d.inner.Rewind()
}

// Release releases the wrapped tape when it is a Temp; otherwise it is a
// no-op.
func (d *Delayed) Release() error {
	if t, ok := d.inner.(Temp); ok {
		return t.Release()
	}
	return nil
}

// Unwrap returns the wrapped tape.
func (d *Delayed) Unwrap() Tape {
	return d.inner
}

// DelayedAllocator wraps every tape from Allocator with Delays.
type DelayedAllocator struct {
	Allocator Allocator
	Delays    Delays
}

// Create implements Allocator.
func (a DelayedAllocator) Create() (Temp, error) {
	t, err := a.Allocator.Create()
	if err != nil {
		return nil, err
	}
	if a.Delays.IsZero() {
		return t, nil
	}
	return WithDelays(t, a.Delays), nil
}
