package tape

// Memory is a slice-backed tape.
//
// The zero value is an empty tape with the head on cell 0.
type Memory struct {
	cells []int32
	pos   int
}

// NewMemory creates a tape holding a copy of values, head on the first cell.
func NewMemory(values ...int32) *Memory {
	cells := make([]int32, len(values))
	copy(cells, values)
	return &Memory{cells: cells}
}

// Read implements Tape.
func (m *Memory) Read() (int32, bool, error) {
	if m.pos == beforeBegin || m.pos >= len(m.cells) {
		return 0, false, nil
	}
	return m.cells[m.pos], true, nil
}

// Write implements Tape.
func (m *Memory) Write(v int32) error {
	if m.pos == beforeBegin {
		return NewOutOfRangeError("write", msgWriteBeforeBegin)
	}
	if m.pos == len(m.cells) {
		m.cells = append(m.cells, v)
		return nil
	}
	m.cells[m.pos] = v
	return nil
}

// MoveForward implements Tape.
func (m *Memory) MoveForward() (bool, error) {
	if m.pos == beforeBegin || m.pos >= len(m.cells) {
		return false, nil
	}
	m.pos++
	return true, nil
}

// MoveBackward implements Tape.
func (m *Memory) MoveBackward() (bool, error) {
	if m.pos == beforeBegin {
		return false, nil
	}
	m.pos--
	return true, nil
}

// Rewind implements Tape.
func (m *Memory) Rewind() error {
	m.pos = 0
	return nil
}

// Release implements Temp. It drops the cells.
func (m *Memory) Release() error {
	m.cells = nil
	m.pos = 0
	return nil
}

// Values returns a copy of the tape contents regardless of head position.
func (m *Memory) Values() []int32 {
	out := make([]int32, len(m.cells))
	copy(out, m.cells)
	return out
}

// Len returns the number of cells written.
func (m *Memory) Len() int {
	return len(m.cells)
}
