package effects

// HeroFadeEnd is the scroll progress at which the hero blobs are fully transparent.
const HeroFadeEnd = 0.2

// ScrollProgress is how far down the document the viewport is, in [0, 1].
func ScrollProgress(scrollY, scrollHeight, viewportHeight float64) float64 {
	scrollable := scrollHeight - viewportHeight
	if scrollable <= 0 {
		return 0
	}
	return clamp(scrollY / scrollable)
}

// HeroOpacity maps scroll progress [0, HeroFadeEnd] linearly onto [1, 0].
func HeroOpacity(progress float64) float64 {
	return clamp(1 - progress/HeroFadeEnd)
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
