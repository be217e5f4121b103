package combat

import (
	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

// CooldownTracker holds the remaining cooldown of every skill of one combatant
type CooldownTracker struct {
	remaining map[string]int
}

// NewCooldownTracker creates a tracker with every skill available
func NewCooldownTracker(skills []entities.Skill) *CooldownTracker {
	t := &CooldownTracker{remaining: make(map[string]int, len(skills))}
	for _, skill := range skills {
		t.remaining[skill.ID] = 0
	}
	return t
}

// Use puts the skill on cooldown. Using a skill that is still cooling down
// is an ActionNotAllowed error and leaves the tracker unchanged.
func (t *CooldownTracker) Use(skill *entities.Skill) error {
	if skill == nil {
		return errors.InvalidArgument("skill is required")
	}

	if remaining := t.remaining[skill.ID]; remaining > 0 {
		return errors.ActionNotAllowedf("skill %s is on cooldown for %d more rounds", skill.ID, remaining).
			WithMeta("skill_id", skill.ID).
			WithMeta("remaining", remaining)
	}

	cooldown := skill.Cooldown
	if cooldown < 0 {
		cooldown = 0
	}
	t.remaining[skill.ID] = cooldown
	return nil
}

// Tick counts every cooldown down by one round
func (t *CooldownTracker) Tick() {
	for id, remaining := range t.remaining {
		if remaining > 0 {
			t.remaining[id] = remaining - 1
		}
	}
}

// Remaining returns the rounds left before the skill can be used again
func (t *CooldownTracker) Remaining(skillID string) int {
	return t.remaining[skillID]
}

// Available reports whether the skill can be used now
func (t *CooldownTracker) Available(skillID string) bool {
	return t.remaining[skillID] == 0
}

// Snapshot returns a copy of the remaining cooldowns keyed by skill id
func (t *CooldownTracker) Snapshot() map[string]int {
	out := make(map[string]int, len(t.remaining))
	for id, remaining := range t.remaining {
		out[id] = remaining
	}
	return out
}
