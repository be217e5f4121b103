package entities

// Stage is a map entry from the stage catalog: a fixed enemy roster plus
// the turn limit and rewards for clearing it
type Stage struct {
	ID          string                `json:"id" yaml:"id"`
	Name        string                `json:"name" yaml:"name"`
	Chapter     int                   `json:"chapter" yaml:"chapter"`
	Number      int                   `json:"number" yaml:"number"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Enemies     []CombatantDefinition `json:"enemies" yaml:"enemies"`
	EnemyLevel  int                   `json:"enemy_level,omitempty" yaml:"enemy_level,omitempty"`
	TurnLimit   int                   `json:"turn_limit" yaml:"turn_limit"`
	ExpReward   int                   `json:"exp_reward" yaml:"exp_reward"`
	PointReward int                   `json:"point_reward" yaml:"point_reward"`
}

// EnemyRoster returns copies of the stage enemies, levelled to EnemyLevel
// when it is set
func (s *Stage) EnemyRoster() []CombatantDefinition {
	out := make([]CombatantDefinition, len(s.Enemies))
	for i, enemy := range s.Enemies {
		if s.EnemyLevel > 0 {
			out[i] = enemy.WithLevel(s.EnemyLevel)
			continue
		}
		out[i] = enemy.Clone()
	}
	return out
}
