package render

import (
	"github.com/escbadge/minibadge/internal/pattern"
)

// EffectKind tags the closed set of pattern effects.
type EffectKind uint8

const (
	EffectSimple EffectKind = iota
	EffectText
	EffectAnimation
	EffectAnimationReverse
	EffectAnimationRandom
)

// Effect selects which cells are active for a layer at a given time.
type Effect struct {
	Kind       EffectKind
	Mask       pattern.Mask       // EffectSimple
	Anim       *pattern.Animation // animation variants
	Text       string             // EffectText
	Speed      float64
	Decimation uint32 // EffectAnimationRandom
}

// Simple always yields the same mask.
func Simple(m pattern.Mask) Effect { return Effect{Kind: EffectSimple, Mask: m} }

// Text steps through the glyphs of s at speed characters per second.
func Text(s string, speed float64) Effect {
	return Effect{Kind: EffectText, Text: s, Speed: speed}
}

// Animation plays the sequence forward at speed frames per second.
func Animation(a *pattern.Animation, speed float64) Effect {
	return Effect{Kind: EffectAnimation, Anim: a, Speed: speed}
}

// AnimationReverse plays the sequence backward.
func AnimationReverse(a *pattern.Animation, speed float64) Effect {
	return Effect{Kind: EffectAnimationReverse, Anim: a, Speed: speed}
}

// AnimationRandom yields a uniformly random frame once every decimation
// evaluations and the zero mask in between. Picking a fresh frame every
// call would just look like noise.
func AnimationRandom(a *pattern.Animation, decimation uint32) Effect {
	return Effect{Kind: EffectAnimationRandom, Anim: a, Decimation: decimation}
}

// ActiveMask evaluates the effect at time t. The random variant advances
// the shared frame counter and RNG in st.
func (e Effect) ActiveMask(t float64, st *State) pattern.Mask {
	switch e.Kind {
	case EffectSimple:
		return e.Mask

	case EffectText:
		if len(e.Text) == 0 {
			return 0
		}
		idx := int(t*e.Speed) % len(e.Text)
		return pattern.Glyph(e.Text[idx])

	case EffectAnimation:
		idx := int(t*e.Speed) % e.Anim.Len()
		return e.Anim.Frame(idx)

	case EffectAnimationReverse:
		idx := int(t*e.Speed) % e.Anim.Len()
		return e.Anim.Frame(e.Anim.Len() - idx - 1)

	case EffectAnimationRandom:
		st.FrameCounter++
		if st.FrameCounter%e.Decimation == 0 {
			return e.Anim.Frame(st.rng.Intn(e.Anim.Len()))
		}
		return 0
	}
	return 0
}
