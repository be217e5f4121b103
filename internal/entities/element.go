package entities

import "strings"

// Element is the elemental affinity of a combatant
type Element string

// Element constants
const (
	ElementFire  Element = "FIRE"
	ElementWater Element = "WATER"
	ElementEarth Element = "EARTH"
	ElementLight Element = "LIGHT"
	ElementDark  Element = "DARK"
	ElementNone  Element = "NONE"
)

// Elemental multipliers
const (
	MultiplierStrong  = 1.5
	MultiplierWeak    = 0.5
	MultiplierNeutral = 1.0
)

// AllElements returns every element in table order
func AllElements() []Element {
	return []Element{
		ElementFire,
		ElementWater,
		ElementEarth,
		ElementLight,
		ElementDark,
		ElementNone,
	}
}

// ParseElement converts a string to an Element, case-insensitively.
// Anything unrecognized is ElementNone.
func ParseElement(s string) Element {
	e := Element(strings.ToUpper(strings.TrimSpace(s)))
	switch e {
	case ElementFire, ElementWater, ElementEarth, ElementLight, ElementDark:
		return e
	default:
		return ElementNone
	}
}

// String returns the string representation of the element
func (e Element) String() string {
	return string(e)
}

// UnmarshalText lets JSON and YAML decoders accept "fire", "Fire" or "FIRE"
func (e *Element) UnmarshalText(text []byte) error {
	*e = ParseElement(string(text))
	return nil
}

// EffectivenessAgainst returns the damage multiplier e deals to other
func (e Element) EffectivenessAgainst(other Element) float64 {
	switch e {
	case ElementFire:
		return pick(other, ElementEarth, ElementWater)
	case ElementWater:
		return pick(other, ElementFire, ElementEarth)
	case ElementEarth:
		return pick(other, ElementWater, ElementFire)
	case ElementLight:
		return pick(other, ElementDark, ElementLight)
	case ElementDark:
		return pick(other, ElementLight, ElementDark)
	default:
		return MultiplierNeutral
	}
}

// Effectiveness returns the multiplier an attacker element deals to a defender element
func Effectiveness(attacker, defender Element) float64 {
	return attacker.EffectivenessAgainst(defender)
}

func pick(other, strong, weak Element) float64 {
	switch other {
	case strong:
		return MultiplierStrong
	case weak:
		return MultiplierWeak
	default:
		return MultiplierNeutral
	}
}
