package animation

// Tween maps a 0 to 1 progress, such as a [Controller] value, onto a range.
type Tween[T any] struct {
	Begin T
	End   T
	// Lerp interpolates between Begin and End at t. Nil yields End.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the value at t.
func (tw Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform evaluates the tween at c's current value.
func (tw Tween[T]) Transform(c *Controller) T {
	return tw.Evaluate(c.Value())
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// TweenFloat64 returns a float64 tween from begin to end.
func TweenFloat64(begin, end float64) Tween[float64] {
	return Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}
