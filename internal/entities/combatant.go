package entities

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rarity is the collection tier of a combatant
type Rarity string

// Rarity constants
const (
	RarityNormal    Rarity = "NORMAL"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
	RarityMythical  Rarity = "MYTHICAL"
)

// UnmarshalText normalizes the rarity to upper case
func (r *Rarity) UnmarshalText(text []byte) error {
	*r = Rarity(strings.ToUpper(strings.TrimSpace(string(text))))
	return nil
}

// CatType is the attack-type classification of a combatant
type CatType string

// Cat type constants
const (
	CatTypeBasic    CatType = "BASIC"
	CatTypeWarrior  CatType = "WARRIOR"
	CatTypeMage     CatType = "MAGE"
	CatTypeTank     CatType = "TANK"
	CatTypeAssassin CatType = "ASSASSIN"
	CatTypeHealer   CatType = "HEALER"
	CatTypeDragon   CatType = "DRAGON"
	CatTypeAngel    CatType = "ANGEL"
	CatTypePirate   CatType = "PIRATE"
	CatTypeRobot    CatType = "ROBOT"
	CatTypeUndead   CatType = "UNDEAD"
	CatTypeCyborg   CatType = "CYBORG"
	CatTypeRoyal    CatType = "ROYAL"
	CatTypeVampire  CatType = "VAMPIRE"
	CatTypePriest   CatType = "PRIEST"
	CatTypeGiant    CatType = "GIANT"
	CatTypePhoenix  CatType = "PHOENIX"
	CatTypeCyclops  CatType = "CYCLOPS"
	CatTypeBeast    CatType = "BEAST"
	CatTypeGolem    CatType = "GOLEM"
)

// UnmarshalText normalizes the type to upper case
func (t *CatType) UnmarshalText(text []byte) error {
	*t = CatType(strings.ToUpper(strings.TrimSpace(string(text))))
	return nil
}

// Combatant defaults applied when decoding from YAML or JSON
const (
	DefaultCriticalRate   = 0.05
	DefaultCriticalDamage = 1.5
)

// CombatantDefinition is the static description of a unit. The engine copies
// it at battle start and never mutates it.
type CombatantDefinition struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Rarity         Rarity  `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Type           CatType `json:"type,omitempty" yaml:"type,omitempty"`
	Element        Element `json:"element" yaml:"element"`
	Attack         int     `json:"attack" yaml:"attack"`
	Defense        int     `json:"defense" yaml:"defense"`
	MaxHealth      int     `json:"max_health" yaml:"max_health"`
	Speed          float64 `json:"speed" yaml:"speed"`
	CriticalRate   float64 `json:"critical_rate" yaml:"critical_rate"`
	CriticalDamage float64 `json:"critical_damage" yaml:"critical_damage"`
	Level          int     `json:"level" yaml:"level"`
	Skills         []Skill `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// Power is the overall strength rating shown on rosters
func (d *CombatantDefinition) Power() int {
	return int(float64(d.Attack)*2 + float64(d.Defense)*1.5 + float64(d.MaxHealth)*0.5 +
		d.Speed*50 + float64(d.Level)*10)
}

// Skill returns the skill with the given id
func (d *CombatantDefinition) Skill(id string) (*Skill, bool) {
	for i := range d.Skills {
		if d.Skills[i].ID == id {
			return &d.Skills[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy so callers can keep editing their definition
func (d CombatantDefinition) Clone() CombatantDefinition {
	if d.Skills != nil {
		d.Skills = append([]Skill(nil), d.Skills...)
	}
	return d
}

// WithLevel returns a copy of the definition at the given level
func (d CombatantDefinition) WithLevel(level int) CombatantDefinition {
	out := d.Clone()
	out.Level = level
	return out
}

type plainDefinition CombatantDefinition

func defaultDefinition() plainDefinition {
	return plainDefinition{
		Element:        ElementNone,
		CriticalRate:   DefaultCriticalRate,
		CriticalDamage: DefaultCriticalDamage,
		Level:          1,
	}
}

// UnmarshalYAML decodes a definition, keeping defaults for omitted fields
func (d *CombatantDefinition) UnmarshalYAML(value *yaml.Node) error {
	raw := defaultDefinition()
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*d = CombatantDefinition(raw)
	return nil
}

// UnmarshalJSON decodes a definition, keeping defaults for omitted fields
func (d *CombatantDefinition) UnmarshalJSON(data []byte) error {
	raw := defaultDefinition()
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = CombatantDefinition(raw)
	return nil
}
