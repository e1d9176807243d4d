package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/modalsheet/pkg/animation"
)

// This example drives a tween to completion by stepping the frame loop.
func ExampleAnimatable() {
	anim := animation.NewAnimatable(0)
	spec := animation.TweenSpec{Duration: 0}

	anim.AnimateTo(120, spec, nil, func(reason animation.EndReason) {
		fmt.Println("ended:", reason)
	})
	for animation.HasActiveTickers() {
		animation.StepTickers()
	}
	fmt.Println("value:", anim.Value())
	// Output:
	// ended: finished
	// value: 120
}

// This example shows how spring parameters map onto a SpringSpec.
func ExampleSpringSpec() {
	in := animation.SpringSpec{Stiffness: 1000, DampingRatio: animation.DampingRatioNoBouncy}

	sim := in.Simulate(500, 0, 0)
	for {
		if _, done := sim.Step(16 * time.Millisecond); done {
			break
		}
	}
	fmt.Println("settled")
	// Output: settled
}
