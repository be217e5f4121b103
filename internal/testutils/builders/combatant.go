// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/nyanko-battle/internal/entities"
)

// CombatantBuilder provides a fluent interface for building test
// CombatantDefinition instances
type CombatantBuilder struct {
	def entities.CombatantDefinition
}

// NewCombatantBuilder creates a new builder with minimal defaults. Critical
// rate defaults to zero so damage in tests is predictable.
func NewCombatantBuilder(id string) *CombatantBuilder {
	return &CombatantBuilder{
		def: entities.CombatantDefinition{
			ID:             id,
			Name:           id,
			Rarity:         entities.RarityNormal,
			Type:           entities.CatTypeBasic,
			Element:        entities.ElementNone,
			Attack:         10,
			MaxHealth:      100,
			Speed:          1,
			CriticalDamage: entities.DefaultCriticalDamage,
			Level:          1,
		},
	}
}

// WithName sets the display name
func (b *CombatantBuilder) WithName(name string) *CombatantBuilder {
	b.def.Name = name
	return b
}

// WithElement sets the elemental affinity
func (b *CombatantBuilder) WithElement(element entities.Element) *CombatantBuilder {
	b.def.Element = element
	return b
}

// WithAttack sets base attack
func (b *CombatantBuilder) WithAttack(attack int) *CombatantBuilder {
	b.def.Attack = attack
	return b
}

// WithDefense sets base defense
func (b *CombatantBuilder) WithDefense(defense int) *CombatantBuilder {
	b.def.Defense = defense
	return b
}

// WithHealth sets max health
func (b *CombatantBuilder) WithHealth(health int) *CombatantBuilder {
	b.def.MaxHealth = health
	return b
}

// WithSpeed sets base speed
func (b *CombatantBuilder) WithSpeed(speed float64) *CombatantBuilder {
	b.def.Speed = speed
	return b
}

// WithCritical sets critical rate and damage multiplier
func (b *CombatantBuilder) WithCritical(rate, damage float64) *CombatantBuilder {
	b.def.CriticalRate = rate
	b.def.CriticalDamage = damage
	return b
}

// WithLevel sets the level
func (b *CombatantBuilder) WithLevel(level int) *CombatantBuilder {
	b.def.Level = level
	return b
}

// WithRarity sets the rarity tier
func (b *CombatantBuilder) WithRarity(rarity entities.Rarity) *CombatantBuilder {
	b.def.Rarity = rarity
	return b
}

// WithSkill appends a skill
func (b *CombatantBuilder) WithSkill(skill entities.Skill) *CombatantBuilder {
	b.def.Skills = append(b.def.Skills, skill)
	return b
}

// Build returns the constructed definition
func (b *CombatantBuilder) Build() entities.CombatantDefinition {
	return b.def.Clone()
}

// SkillBuilder provides a fluent interface for building test Skill instances
type SkillBuilder struct {
	skill entities.Skill
}

// NewSkillBuilder creates a skill that always activates, targets a single
// enemy and has no cooldown
func NewSkillBuilder(id string, category entities.SkillCategory) *SkillBuilder {
	return &SkillBuilder{
		skill: entities.Skill{
			ID:             id,
			Name:           id,
			Category:       category,
			ActivationRate: entities.DefaultActivationRate,
			Target:         entities.TargetSingleEnemy,
			Duration:       entities.DefaultEffectDuration,
		},
	}
}

// WithMagnitude sets the effect magnitude
func (b *SkillBuilder) WithMagnitude(magnitude int) *SkillBuilder {
	b.skill.Magnitude = magnitude
	return b
}

// WithTarget sets the target selector
func (b *SkillBuilder) WithTarget(target entities.TargetSelector) *SkillBuilder {
	b.skill.Target = target
	return b
}

// WithCooldown sets the base cooldown
func (b *SkillBuilder) WithCooldown(cooldown int) *SkillBuilder {
	b.skill.Cooldown = cooldown
	return b
}

// WithActivationRate sets the activation probability
func (b *SkillBuilder) WithActivationRate(rate int) *SkillBuilder {
	b.skill.ActivationRate = rate
	return b
}

// WithEffect sets the applied status and its duration
func (b *SkillBuilder) WithEffect(kind entities.StatusKind, duration int) *SkillBuilder {
	b.skill.Effect = kind
	b.skill.Duration = duration
	return b
}

// Build returns the constructed skill
func (b *SkillBuilder) Build() entities.Skill {
	return b.skill
}
