package metrics

import "github.com/roach88/tapesort/internal/tape"

// instrumented counts every operation of the wrapped tape.
type instrumented struct {
	inner tape.Tape
	role  string
	m     *Metrics
}

// Instrument wraps t so each operation is counted under role. The result
// implements tape.Temp when t does.
func (m *Metrics) Instrument(t tape.Tape, role string) tape.Tape {
	in := instrumented{inner: t, role: role, m: m}
	if tt, ok := t.(tape.Temp); ok {
		return &instrumentedTemp{instrumented: in, temp: tt}
	}
	return &in
}

func (i *instrumented) Read() (int32, bool, error) {
	v, ok, err := i.inner.Read()
	i.m.record(i.role, OpRead, err)
	return v, ok, err
}

func (i *instrumented) Write(v int32) error {
	err := i.inner.Write(v)
	i.m.record(i.role, OpWrite, err)
	return err
}

func (i *instrumented) MoveForward() (bool, error) {
	moved, err := i.inner.MoveForward()
	i.m.record(i.role, OpMoveForward, err)
	return moved, err
}

func (i *instrumented) MoveBackward() (bool, error) {
	moved, err := i.inner.MoveBackward()
	i.m.record(i.role, OpMoveBackward, err)
	return moved, err
}

func (i *instrumented) Rewind() error {
	err := i.inner.Rewind()
	i.m.record(i.role, OpRewind, err)
	return err
}

type instrumentedTemp struct {
	instrumented
	temp tape.Temp
}

func (i *instrumentedTemp) Release() error {
	err := i.temp.Release()
	if err == nil {
		i.m.runsReleased.Inc()
	}
	return err
}

// Allocator counts runs created by the wrapped allocator and instruments
// each of them under RoleRun.
type Allocator struct {
	Allocator tape.Allocator
	Metrics   *Metrics
}

// Create implements tape.Allocator.
func (a Allocator) Create() (tape.Temp, error) {
	t, err := a.Allocator.Create()
	if err != nil {
		return nil, err
	}
	a.Metrics.runsCreated.Inc()
	return a.Metrics.Instrument(t, RoleRun).(tape.Temp), nil
}
