package combat

import "github.com/KirkDiggler/nyanko-battle/internal/entities"

// DefaultMaxStacks refreshes an effect on re-application instead of stacking
const DefaultMaxStacks = 1

// StatusProcessor applies and ticks status effects. MaxStacks caps how many
// times one kind of effect can stack on a combatant.
type StatusProcessor struct {
	MaxStacks int
}

// NewStatusProcessor creates a processor; maxStacks below 1 means refresh
func NewStatusProcessor(maxStacks int) *StatusProcessor {
	if maxStacks < 1 {
		maxStacks = DefaultMaxStacks
	}
	return &StatusProcessor{MaxStacks: maxStacks}
}

// TickResult is what one pre-action tick did to a combatant
type TickResult struct {
	// Damage is the health lost to damage-over-time, per source
	Damage []TickDamage
	// Stunned is set when a stun stops the combatant this round
	Stunned bool
	// Killed is set when damage-over-time brought health to zero
	Killed bool
}

// TickDamage is damage-over-time applied by one effect
type TickDamage struct {
	SourceID string
	SkillID  string
	Amount   int
	Killed   bool
}

// Apply adds an effect to a living combatant. An effect of a kind already
// present refreshes it: duration becomes the longer of the two, magnitude is
// replaced and, when MaxStacks allows, one stack is added.
func (p *StatusProcessor) Apply(c *Combatant, effect StatusEffect) {
	if !c.Alive() || !effect.Kind.IsValid() || effect.Remaining <= 0 {
		return
	}

	if existing := c.effect(effect.Kind); existing != nil {
		if effect.Remaining > existing.Remaining {
			existing.Remaining = effect.Remaining
		}
		existing.Magnitude = effect.Magnitude
		existing.SourceID = effect.SourceID
		existing.SkillID = effect.SkillID
		if existing.Stacks < p.maxStacks() {
			existing.Stacks++
		}
		return
	}

	effect.Stacks = 1
	c.effects = append(c.effects, &effect)
}

// Tick applies every active effect once, then counts durations down and
// drops expired effects
func (p *StatusProcessor) Tick(c *Combatant) TickResult {
	var result TickResult
	c.stunned = false
	if !c.Alive() {
		return result
	}

	for _, e := range c.effects {
		switch e.Kind {
		case entities.StatusDOT:
			applied := c.takeDamage(e.Total())
			killed := !c.Alive()
			result.Damage = append(result.Damage, TickDamage{
				SourceID: e.SourceID,
				SkillID:  e.SkillID,
				Amount:   applied,
				Killed:   killed,
			})
			if killed {
				result.Killed = true
				return result
			}
		case entities.StatusStun:
			c.stunned = true
			result.Stunned = true
		case entities.StatusAttackUp, entities.StatusAttackDown,
			entities.StatusDefenseUp, entities.StatusDefenseDown,
			entities.StatusSpeedUp, entities.StatusSpeedDown:
			// read through EffectiveStats and EffectiveSpeed
		case entities.StatusCounter:
			// resolved when the combatant is hit
		case entities.StatusNone:
		}
	}

	kept := c.effects[:0]
	for _, e := range c.effects {
		e.Remaining--
		if e.Remaining > 0 {
			kept = append(kept, e)
		}
	}
	c.effects = kept

	return result
}

func (p *StatusProcessor) maxStacks() int {
	if p.MaxStacks < 1 {
		return DefaultMaxStacks
	}
	return p.MaxStacks
}
