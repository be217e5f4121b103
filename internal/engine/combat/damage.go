package combat

import (
	"math"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
)

// Stats are the attributes the damage calculator reads. Callers pass
// effective values, with status modifiers already folded in.
type Stats struct {
	Attack         int
	Defense        int
	Level          int
	Element        entities.Element
	CriticalDamage float64
}

// Damage formula constants
const (
	levelStep       = 0.02
	defenseStep     = 0.01
	minimumDamage   = 1
	neutralModifier = 1.0
)

// ComputeDamage returns the damage attacker deals to target. A nil skill is
// a basic attack using the attacker's attack stat. Any hit deals at least 1.
func ComputeDamage(attacker, target Stats, skill *entities.Skill, isCritical bool) int {
	base := float64(attacker.Attack)
	if skill != nil {
		base = float64(skill.Magnitude)
	}

	elementMultiplier := entities.Effectiveness(attacker.Element, target.Element)

	criticalMultiplier := neutralModifier
	if isCritical {
		criticalMultiplier = attacker.CriticalDamage
	}

	// the float64 conversions round each product so it is never fused into
	// a multiply-add; replays must match across platforms
	levelMultiplier := neutralModifier + float64(float64(attacker.Level-target.Level)*levelStep)

	raw := base * elementMultiplier * criticalMultiplier * levelMultiplier
	defenseReduction := float64(float64(target.Defense) * defenseStep)

	result := int(math.Floor(raw * (neutralModifier - defenseReduction)))
	if result < minimumDamage {
		return minimumDamage
	}
	return result
}
