package combat

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
)

// EntityType is the core.Entity type of every combatant
const EntityType = "combatant"

// Combatant is the mutable per-battle state of one unit. It is created by
// Controller.Start from a copy of a definition and only mutated by the
// engine; the exported API is read-only.
type Combatant struct {
	def       entities.CombatantDefinition
	side      Side
	index     int
	health    int
	cooldowns *CooldownTracker
	effects   []*StatusEffect
	stunned   bool
}

func newCombatant(def entities.CombatantDefinition, side Side, index int) *Combatant {
	def = def.Clone()
	return &Combatant{
		def:       def,
		side:      side,
		index:     index,
		health:    def.MaxHealth,
		cooldowns: NewCooldownTracker(def.Skills),
	}
}

// GetID returns the combatant id
func (c *Combatant) GetID() string {
	return c.def.ID
}

// GetType returns the entity type
func (c *Combatant) GetType() string {
	return EntityType
}

// ID returns the combatant id
func (c *Combatant) ID() string { return c.def.ID }

// Name returns the display name
func (c *Combatant) Name() string { return c.def.Name }

// Side returns the roster the combatant fights for
func (c *Combatant) Side() Side { return c.side }

// Index returns the position in its roster
func (c *Combatant) Index() int { return c.index }

// Health returns current health
func (c *Combatant) Health() int { return c.health }

// MaxHealth returns maximum health
func (c *Combatant) MaxHealth() int { return c.def.MaxHealth }

// Alive reports whether health is above zero
func (c *Combatant) Alive() bool { return c.health > 0 }

// Stunned reports whether a stun stopped the combatant this round
func (c *Combatant) Stunned() bool { return c.stunned }

// Definition returns a copy of the definition the combatant was built from
func (c *Combatant) Definition() entities.CombatantDefinition {
	return c.def.Clone()
}

// Skill returns the combatant's skill with the given id
func (c *Combatant) Skill(id string) (*entities.Skill, bool) {
	return c.def.Skill(id)
}

// Skills returns the combatant's skills in declaration order
func (c *Combatant) Skills() []entities.Skill {
	return append([]entities.Skill(nil), c.def.Skills...)
}

// Cooldowns returns the cooldown tracker
func (c *Combatant) Cooldowns() *CooldownTracker { return c.cooldowns }

// HealthRatio returns current health as a fraction of max health
func (c *Combatant) HealthRatio() float64 {
	if c.def.MaxHealth <= 0 {
		return 0
	}
	return float64(c.health) / float64(c.def.MaxHealth)
}

// Effects returns copies of the active status effects
func (c *Combatant) Effects() []StatusEffect {
	out := make([]StatusEffect, len(c.effects))
	for i, e := range c.effects {
		out[i] = *e
	}
	return out
}

// HasEffect reports whether a status of the given kind is active
func (c *Combatant) HasEffect(kind entities.StatusKind) bool {
	return c.effect(kind) != nil
}

func (c *Combatant) effect(kind entities.StatusKind) *StatusEffect {
	for _, e := range c.effects {
		if e.Kind == kind {
			return e
		}
	}
	return nil
}

// modifier returns the summed percentage of up minus down effects
func (c *Combatant) modifier(up, down entities.StatusKind) int {
	pct := 0
	for _, e := range c.effects {
		switch e.Kind {
		case up:
			pct += e.Total()
		case down:
			pct -= e.Total()
		}
	}
	return pct
}

func scaleInt(base, pct int) int {
	v := base * (100 + pct) / 100
	if v < 0 {
		return 0
	}
	return v
}

// EffectiveStats returns the combatant's stats with buffs and debuffs applied
func (c *Combatant) EffectiveStats() Stats {
	return Stats{
		Attack:         scaleInt(c.def.Attack, c.modifier(entities.StatusAttackUp, entities.StatusAttackDown)),
		Defense:        scaleInt(c.def.Defense, c.modifier(entities.StatusDefenseUp, entities.StatusDefenseDown)),
		Level:          c.def.Level,
		Element:        c.def.Element,
		CriticalDamage: c.def.CriticalDamage,
	}
}

// EffectiveSpeed returns speed with speed buffs and debuffs applied
func (c *Combatant) EffectiveSpeed() float64 {
	pct := c.modifier(entities.StatusSpeedUp, entities.StatusSpeedDown)
	v := c.def.Speed * float64(100+pct) / 100
	if v < 0 {
		return 0
	}
	return v
}

// takeDamage lowers health, clamped at zero, and returns the amount applied
func (c *Combatant) takeDamage(amount int) int {
	if amount <= 0 || c.health == 0 {
		return 0
	}
	if amount > c.health {
		amount = c.health
	}
	c.health -= amount
	if c.health == 0 {
		c.die()
	}
	return amount
}

// heal raises health of a living combatant, clamped at max health, and
// returns the amount applied
func (c *Combatant) heal(amount int) int {
	if amount <= 0 || c.health == 0 {
		return 0
	}
	if missing := c.def.MaxHealth - c.health; amount > missing {
		amount = missing
	}
	c.health += amount
	return amount
}

// revive brings a fallen combatant back with the given health
func (c *Combatant) revive(health int) int {
	if c.health > 0 {
		return 0
	}
	if health < 1 {
		health = 1
	}
	if health > c.def.MaxHealth {
		health = c.def.MaxHealth
	}
	c.health = health
	return health
}

func (c *Combatant) die() {
	c.effects = nil
	c.stunned = false
}

// CombatantSnapshot is a read-only view of a combatant for callers outside
// the engine
type CombatantSnapshot struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Side      Side           `json:"side"`
	Index     int            `json:"index"`
	Health    int            `json:"health"`
	MaxHealth int            `json:"max_health"`
	Alive     bool           `json:"alive"`
	Speed     float64        `json:"speed"`
	Effects   []StatusEffect `json:"effects,omitempty"`
	Cooldowns map[string]int `json:"cooldowns,omitempty"`
}

// Snapshot returns the current view of the combatant
func (c *Combatant) Snapshot() CombatantSnapshot {
	return CombatantSnapshot{
		ID:        c.def.ID,
		Name:      c.def.Name,
		Side:      c.side,
		Index:     c.index,
		Health:    c.health,
		MaxHealth: c.def.MaxHealth,
		Alive:     c.Alive(),
		Speed:     c.EffectiveSpeed(),
		Effects:   c.Effects(),
		Cooldowns: c.cooldowns.Snapshot(),
	}
}

var _ core.Entity = (*Combatant)(nil)
