package combat

import (
	"fmt"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

// ValidateRosters checks both rosters before a battle starts. Problems are
// reported together as one MalformedRoster error with a field per problem.
func ValidateRosters(player, enemy []entities.CombatantDefinition, teamSize int) error {
	vb := errors.NewValidationBuilder()
	seen := make(map[string]string)

	validateRoster(vb, "player", player, teamSize, seen)
	validateRoster(vb, "enemy", enemy, teamSize, seen)

	return vb.BuildWithCode(errors.CodeMalformedRoster)
}

func validateRoster(
	vb *errors.ValidationBuilder,
	name string,
	roster []entities.CombatantDefinition,
	teamSize int,
	seen map[string]string,
) {
	if len(roster) == 0 {
		vb.Field(name, "must not be empty")
	}
	if teamSize > 0 && len(roster) > teamSize {
		vb.Fieldf(name, "must not exceed %d combatants", teamSize)
	}

	for i := range roster {
		def := &roster[i]
		field := fmt.Sprintf("%s[%d]", name, i)

		errors.ValidateRequired(field+".id", def.ID, vb)
		if def.ID != "" {
			if prev, dup := seen[def.ID]; dup {
				vb.Fieldf(field+".id", "duplicates %s", prev)
			} else {
				seen[def.ID] = field
			}
		}

		if def.MaxHealth <= 0 {
			vb.Field(field+".max_health", "must be positive")
		}
		if def.Attack < 0 {
			vb.Field(field+".attack", "must not be negative")
		}
		if def.Defense < 0 {
			vb.Field(field+".defense", "must not be negative")
		}

		validateSkills(vb, field, def.Skills)
	}
}

func validateSkills(vb *errors.ValidationBuilder, owner string, skills []entities.Skill) {
	ids := make(map[string]bool, len(skills))
	for j := range skills {
		skill := &skills[j]
		field := fmt.Sprintf("%s.skills[%d]", owner, j)

		errors.ValidateRequired(field+".id", skill.ID, vb)
		if ids[skill.ID] {
			vb.Fieldf(field+".id", "duplicate skill %s", skill.ID)
		}
		ids[skill.ID] = true

		if !skill.Category.IsValid() {
			vb.Fieldf(field+".category", "unknown category %q", skill.Category)
		}
		if !skill.Target.IsValid() {
			vb.Fieldf(field+".target", "unknown target selector %q", skill.Target)
		} else if skill.Category == entities.SkillCategoryRevive &&
			(skill.Target == entities.TargetSelf || skill.Target.HitsEnemies()) {
			vb.Fieldf(field+".target", "revive cannot use target selector %s", skill.Target)
		}
		if skill.Effect != entities.StatusNone && !skill.Effect.IsValid() {
			vb.Fieldf(field+".effect", "unknown status %q", skill.Effect)
		}
		errors.ValidateRange(field+".activation_rate", skill.ActivationRate, 0, 100, vb)
		if skill.Cooldown < 0 {
			vb.Field(field+".cooldown", "must not be negative")
		}
	}
}
