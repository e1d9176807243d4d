package animation

import (
	"fmt"
	"time"
)

// Status is where a [Controller] is in its run.
//
//	             Forward()
//	Dismissed ──────────────► Completed
//	    ▲                         │
//	    └─────── Reverse() ───────┘
type Status int

const (
	// StatusDismissed means the controller rests at 0.
	StatusDismissed Status = iota
	// StatusForward means the controller is running toward 1.
	StatusForward
	// StatusReverse means the controller is running toward 0.
	StatusReverse
	// StatusCompleted means the controller rests at 1.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusDismissed:
		return "dismissed"
	case StatusForward:
		return "forward"
	case StatusReverse:
		return "reverse"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Controller runs a progress value between 0 and 1 over a fixed Duration.
// It suits fades that follow the sheet, such as a scrim, where only the
// direction matters. Map its value to a range with a [Tween].
type Controller struct {
	// Duration is the time a full 0 to 1 run takes. Partial runs take the
	// proportional share.
	Duration time.Duration
	// Curve eases progress. Nil means linear.
	Curve Easing

	value     float64
	from      float64
	target    float64
	status    Status
	ticker    *Ticker
	listeners map[int]func(Status)
	nextID    int
}

// NewController creates a dismissed controller.
func NewController(duration time.Duration, curve Easing) *Controller {
	return &Controller{Duration: duration, Curve: curve, listeners: make(map[int]func(Status))}
}

// Value returns the eased progress.
func (c *Controller) Value() float64 {
	return c.value
}

// Status returns the current status.
func (c *Controller) Status() Status {
	return c.status
}

// IsAnimating reports whether a run is in progress.
func (c *Controller) IsAnimating() bool {
	return c.status == StatusForward || c.status == StatusReverse
}

// Forward runs toward 1. It is a no-op while already running or resting
// there.
func (c *Controller) Forward() {
	if c.status == StatusForward || c.status == StatusCompleted {
		return
	}
	c.run(1, StatusForward)
}

// Reverse runs toward 0. It is a no-op while already running or resting
// there.
func (c *Controller) Reverse() {
	if c.status == StatusReverse || c.status == StatusDismissed {
		return
	}
	c.run(0, StatusReverse)
}

func (c *Controller) run(target float64, status Status) {
	c.stopTicker()
	c.from = c.value
	c.target = target
	c.setStatus(status)

	distance := target - c.from
	if distance < 0 {
		distance = -distance
	}
	duration := time.Duration(float64(c.Duration) * distance)
	c.ticker = NewTicker(func(f Frame) {
		progress := 1.0
		if duration > 0 {
			progress = min(float64(f.Elapsed)/float64(duration), 1)
		}
		eased := progress
		if c.Curve != nil {
			eased = c.Curve(progress)
		}
		c.value = c.from + (c.target-c.from)*eased
		if progress >= 1 {
			c.value = c.target
			c.stopTicker()
			if c.target >= 1 {
				c.setStatus(StatusCompleted)
			} else {
				c.setStatus(StatusDismissed)
			}
		}
	})
	c.ticker.Start()
}

// Reset stops any run and rests at 0.
func (c *Controller) Reset() {
	c.stopTicker()
	c.value = 0
	c.setStatus(StatusDismissed)
}

func (c *Controller) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// AddStatusListener registers fn for status changes. Returns an unsubscribe
// function.
func (c *Controller) AddStatusListener(fn func(Status)) func() {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

func (c *Controller) setStatus(status Status) {
	if c.status == status {
		return
	}
	c.status = status
	for _, fn := range c.listeners {
		fn(status)
	}
}
