package sheet

// Motion tracks an asynchronous State operation such as Show or PerformFling.
// It completes once the sheet has settled, including when the motion was
// interrupted and recovered.
type Motion struct {
	done        chan struct{}
	value       Value
	interrupted bool
}

func newMotion() *Motion {
	return &Motion{done: make(chan struct{})}
}

// Done is closed when the motion completes.
func (m *Motion) Done() <-chan struct{} {
	return m.done
}

// Settled reports whether the motion has completed.
func (m *Motion) Settled() bool {
	select {
	case <-m.done:
		return true
	default:
		return false
	}
}

// Value returns the sheet's current value at completion. It is only
// meaningful once Settled reports true.
func (m *Motion) Value() Value {
	return m.value
}

// Interrupted reports whether the motion was cut short by another motion, a
// user drag or an anchor change.
func (m *Motion) Interrupted() bool {
	return m.interrupted
}

func (m *Motion) complete(v Value, interrupted bool) {
	if m.Settled() {
		return
	}
	m.value = v
	m.interrupted = interrupted
	close(m.done)
}
