// Package effects models the page's visual effects. The browser script reads
// these parameters from the document instead of hard-coding its own.
package effects

import (
	"fmt"
	"html/template"
	"strconv"
	"time"
)

const (
	// RevealThreshold is the visible fraction at which a block counts as in view.
	RevealThreshold = 0.3
	// RevealDuration is how long the hidden -> visible transition runs.
	RevealDuration = 600 * time.Millisecond
	// RevealOffset is the hidden state's downward offset in pixels.
	RevealOffset = 50
	// RevealStep separates the delays of consecutive cards in a grid.
	RevealStep = 100 * time.Millisecond
)

// Reveal is the fade-in state of one content block. Observation is continuous:
// leaving the viewport hides the block again.
type Reveal struct {
	delay   time.Duration
	visible bool
}

// NewReveal returns a hidden block that starts its transition after delay.
func NewReveal(delay time.Duration) *Reveal {
	if delay < 0 {
		delay = 0
	}
	return &Reveal{delay: delay}
}

// Staggered returns the reveal for the i-th card (zero based) of a grid.
func Staggered(i int) *Reveal {
	return NewReveal(time.Duration(i+1) * RevealStep)
}

// Observe records an intersection ratio and reports whether visibility changed.
func (r *Reveal) Observe(ratio float64) bool {
	visible := ratio >= RevealThreshold
	changed := visible != r.visible
	r.visible = visible
	return changed
}

func (r *Reveal) Visible() bool { return r.visible }

func (r *Reveal) Delay() time.Duration { return r.delay }

// Style is the inline CSS for the block's current state.
func (r *Reveal) Style() template.CSS {
	opacity, offset := 0, RevealOffset
	if r.visible {
		opacity, offset = 1, 0
	}
	dur, delay := seconds(RevealDuration), seconds(r.delay)
	return template.CSS(fmt.Sprintf(
		"opacity:%d;transform:translateY(%dpx);transition:opacity %s ease %s,transform %s ease %s",
		opacity, offset, dur, delay, dur, delay,
	))
}

// Attrs marks the element for the browser observer.
func (r *Reveal) Attrs() template.HTMLAttr {
	return template.HTMLAttr(fmt.Sprintf(`data-reveal data-reveal-delay="%s"`, strconv.FormatFloat(r.delay.Seconds(), 'f', -1, 64)))
}

// DocumentAttrs carries the shared effect parameters on <body>.
func DocumentAttrs() template.HTMLAttr {
	return template.HTMLAttr(fmt.Sprintf(
		`data-reveal-threshold="%s" data-reveal-duration="%s" data-reveal-offset="%d" data-hero-fade-end="%s"`,
		strconv.FormatFloat(RevealThreshold, 'f', -1, 64),
		strconv.FormatFloat(RevealDuration.Seconds(), 'f', -1, 64),
		RevealOffset,
		strconv.FormatFloat(HeroFadeEnd, 'f', -1, 64),
	))
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}
