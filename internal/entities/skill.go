package entities

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillCategory classifies what a skill does when it resolves
type SkillCategory string

// Skill category constants
const (
	SkillCategoryAttack  SkillCategory = "ATTACK"
	SkillCategoryBuff    SkillCategory = "BUFF"
	SkillCategoryHeal    SkillCategory = "HEAL"
	SkillCategoryDebuff  SkillCategory = "DEBUFF"
	SkillCategoryDOT     SkillCategory = "DOT"
	SkillCategoryCounter SkillCategory = "COUNTER"
	SkillCategoryRevive  SkillCategory = "REVIVE"
	SkillCategorySpecial SkillCategory = "SPECIAL"
)

// IsValid checks if the category is one of the known categories
func (c SkillCategory) IsValid() bool {
	switch c {
	case SkillCategoryAttack, SkillCategoryBuff, SkillCategoryHeal, SkillCategoryDebuff,
		SkillCategoryDOT, SkillCategoryCounter, SkillCategoryRevive, SkillCategorySpecial:
		return true
	default:
		return false
	}
}

// UnmarshalText normalizes the category to upper case
func (c *SkillCategory) UnmarshalText(text []byte) error {
	*c = SkillCategory(strings.ToUpper(strings.TrimSpace(string(text))))
	return nil
}

// TargetSelector describes which combatants a skill may be aimed at
type TargetSelector string

// Target selector constants
const (
	TargetSelf        TargetSelector = "SELF"
	TargetSingleAlly  TargetSelector = "SINGLE_ALLY"
	TargetSingleEnemy TargetSelector = "SINGLE_ENEMY"
	TargetAllAllies   TargetSelector = "ALL_ALLIES"
	TargetAllEnemies  TargetSelector = "ALL_ENEMIES"
	TargetRandomEnemy TargetSelector = "RANDOM_ENEMY"
)

// IsValid checks if the selector is one of the known selectors
func (t TargetSelector) IsValid() bool {
	switch t {
	case TargetSelf, TargetSingleAlly, TargetSingleEnemy,
		TargetAllAllies, TargetAllEnemies, TargetRandomEnemy:
		return true
	default:
		return false
	}
}

// NeedsTarget reports whether the caller must name a target id
func (t TargetSelector) NeedsTarget() bool {
	return t == TargetSingleAlly || t == TargetSingleEnemy
}

// HitsEnemies reports whether the selector aims at the opposing roster
func (t TargetSelector) HitsEnemies() bool {
	return t == TargetSingleEnemy || t == TargetAllEnemies || t == TargetRandomEnemy
}

// UnmarshalText normalizes the selector to upper case
func (t *TargetSelector) UnmarshalText(text []byte) error {
	*t = TargetSelector(strings.ToUpper(strings.TrimSpace(string(text))))
	return nil
}

// StatusKind is the kind of a timed status effect
type StatusKind string

// Status kind constants
const (
	StatusNone        StatusKind = ""
	StatusDOT         StatusKind = "DOT"
	StatusAttackUp    StatusKind = "ATTACK_UP"
	StatusAttackDown  StatusKind = "ATTACK_DOWN"
	StatusDefenseUp   StatusKind = "DEFENSE_UP"
	StatusDefenseDown StatusKind = "DEFENSE_DOWN"
	StatusSpeedUp     StatusKind = "SPEED_UP"
	StatusSpeedDown   StatusKind = "SPEED_DOWN"
	StatusStun        StatusKind = "STUN"
	StatusCounter     StatusKind = "COUNTER"
)

// IsValid checks if the kind is a known, non-empty status kind
func (k StatusKind) IsValid() bool {
	switch k {
	case StatusDOT, StatusAttackUp, StatusAttackDown, StatusDefenseUp, StatusDefenseDown,
		StatusSpeedUp, StatusSpeedDown, StatusStun, StatusCounter:
		return true
	default:
		return false
	}
}

// UnmarshalText normalizes the kind to upper case
func (k *StatusKind) UnmarshalText(text []byte) error {
	*k = StatusKind(strings.ToUpper(strings.TrimSpace(string(text))))
	return nil
}

// Skill defaults applied when decoding from YAML or JSON
const (
	DefaultActivationRate = 100
	DefaultEffectDuration = 3
)

// Skill is an ability a combatant may use instead of a basic attack
type Skill struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category       SkillCategory  `json:"category" yaml:"category"`
	Magnitude      int            `json:"magnitude" yaml:"magnitude"`
	ActivationRate int            `json:"activation_rate" yaml:"activation_rate"`
	Target         TargetSelector `json:"target" yaml:"target"`
	Cooldown       int            `json:"cooldown" yaml:"cooldown"`
	Cost           int            `json:"cost,omitempty" yaml:"cost,omitempty"`

	// Effect overrides the status applied on resolution; see EffectKind
	Effect   StatusKind `json:"effect,omitempty" yaml:"effect,omitempty"`
	Duration int        `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// EffectKind returns the status this skill applies, falling back to the
// category default when Effect is empty
func (s *Skill) EffectKind() StatusKind {
	if s.Effect != StatusNone {
		return s.Effect
	}

	switch s.Category {
	case SkillCategoryBuff:
		return StatusAttackUp
	case SkillCategoryDebuff:
		return StatusDefenseDown
	case SkillCategoryDOT:
		return StatusDOT
	case SkillCategoryCounter:
		return StatusCounter
	case SkillCategoryAttack, SkillCategoryHeal, SkillCategoryRevive, SkillCategorySpecial:
		return StatusNone
	default:
		return StatusNone
	}
}

// EffectDuration returns Duration or the default when unset
func (s *Skill) EffectDuration() int {
	if s.Duration > 0 {
		return s.Duration
	}
	return DefaultEffectDuration
}

type plainSkill Skill

func defaultSkill() plainSkill {
	return plainSkill{
		ActivationRate: DefaultActivationRate,
		Duration:       DefaultEffectDuration,
	}
}

// UnmarshalYAML decodes a skill, keeping defaults for omitted fields
func (s *Skill) UnmarshalYAML(value *yaml.Node) error {
	raw := defaultSkill()
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = Skill(raw)
	return nil
}

// UnmarshalJSON decodes a skill, keeping defaults for omitted fields
func (s *Skill) UnmarshalJSON(data []byte) error {
	raw := defaultSkill()
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Skill(raw)
	return nil
}
