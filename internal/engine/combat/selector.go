package combat

//go:generate mockgen -destination=mock/mock_selector.go -package=combatmock github.com/KirkDiggler/nyanko-battle/internal/engine/combat ActionSelector

import (
	"sync"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

// ActionSelector decides what an actor does on its turn. The returned choice
// is validated by the resolver; an illegal choice is rejected with
// ActionNotAllowed, never coerced.
type ActionSelector interface {
	SelectAction(field *Battlefield, actor *Combatant) (ActionChoice, error)
}

// SelectorFunc adapts a function to ActionSelector
type SelectorFunc func(field *Battlefield, actor *Combatant) (ActionChoice, error)

// SelectAction calls f
func (f SelectorFunc) SelectAction(field *Battlefield, actor *Combatant) (ActionChoice, error) {
	return f(field, actor)
}

// lowHealthRatio is the ally health fraction under which the AI heals
const lowHealthRatio = 0.5

// AISelector is the deterministic built-in policy: revive a fallen ally,
// heal a hurt one, use the strongest ready damage skill, use a ready status
// skill, otherwise attack. Enemies are targeted weakest first.
type AISelector struct{}

// NewAISelector creates the built-in policy
func NewAISelector() *AISelector {
	return &AISelector{}
}

// SelectAction picks an action for actor
func (a *AISelector) SelectAction(field *Battlefield, actor *Combatant) (ActionChoice, error) {
	ready := readySkills(actor)

	if choice, ok := a.revive(field, actor, ready); ok {
		return choice, nil
	}
	if choice, ok := a.heal(field, actor, ready); ok {
		return choice, nil
	}
	if choice, ok := a.strike(field, actor, ready); ok {
		return choice, nil
	}
	if choice, ok := a.support(field, actor, ready); ok {
		return choice, nil
	}

	target := weakest(field.Living(actor.Side().Opponent()))
	if target == nil {
		return ActionChoice{}, errors.ActionNotAllowedf("no living opponent for %s", actor.ID())
	}
	return ActionChoice{TargetID: target.ID()}, nil
}

func (a *AISelector) revive(field *Battlefield, actor *Combatant, ready []entities.Skill) (ActionChoice, bool) {
	fallen := field.Fallen(actor.Side())
	if len(fallen) == 0 {
		return ActionChoice{}, false
	}
	for _, skill := range ready {
		if skill.Category != entities.SkillCategoryRevive {
			continue
		}
		switch skill.Target {
		case entities.TargetSingleAlly:
			return ActionChoice{SkillID: skill.ID, TargetID: fallen[0].ID()}, true
		case entities.TargetAllAllies:
			return ActionChoice{SkillID: skill.ID}, true
		case entities.TargetSelf, entities.TargetSingleEnemy, entities.TargetAllEnemies, entities.TargetRandomEnemy:
		}
	}
	return ActionChoice{}, false
}

func (a *AISelector) heal(field *Battlefield, actor *Combatant, ready []entities.Skill) (ActionChoice, bool) {
	hurt := mostHurt(field.Living(actor.Side()))
	if hurt == nil || hurt.HealthRatio() >= lowHealthRatio {
		return ActionChoice{}, false
	}
	for _, skill := range ready {
		if skill.Category != entities.SkillCategoryHeal {
			continue
		}
		switch skill.Target {
		case entities.TargetSingleAlly:
			return ActionChoice{SkillID: skill.ID, TargetID: hurt.ID()}, true
		case entities.TargetAllAllies:
			return ActionChoice{SkillID: skill.ID}, true
		case entities.TargetSelf:
			if actor.HealthRatio() < lowHealthRatio {
				return ActionChoice{SkillID: skill.ID}, true
			}
		case entities.TargetSingleEnemy, entities.TargetAllEnemies, entities.TargetRandomEnemy:
		}
	}
	return ActionChoice{}, false
}

func (a *AISelector) strike(field *Battlefield, actor *Combatant, ready []entities.Skill) (ActionChoice, bool) {
	var best *entities.Skill
	for i := range ready {
		skill := &ready[i]
		if skill.Category != entities.SkillCategoryAttack && skill.Category != entities.SkillCategorySpecial {
			continue
		}
		if !skill.Target.HitsEnemies() {
			continue
		}
		if best == nil || skill.Magnitude > best.Magnitude {
			best = skill
		}
	}
	if best == nil {
		return ActionChoice{}, false
	}
	return offensiveChoice(field, actor, best)
}

func (a *AISelector) support(field *Battlefield, actor *Combatant, ready []entities.Skill) (ActionChoice, bool) {
	for i := range ready {
		skill := &ready[i]
		switch skill.Category {
		case entities.SkillCategoryDOT, entities.SkillCategoryDebuff:
			if !skill.Target.HitsEnemies() {
				continue
			}
			target := weakestWithout(field.Living(actor.Side().Opponent()), skill.EffectKind())
			if target == nil {
				continue
			}
			if skill.Target == entities.TargetSingleEnemy {
				return ActionChoice{SkillID: skill.ID, TargetID: target.ID()}, true
			}
			return ActionChoice{SkillID: skill.ID}, true
		case entities.SkillCategoryBuff, entities.SkillCategoryCounter:
			if actor.HasEffect(skill.EffectKind()) {
				continue
			}
			switch skill.Target {
			case entities.TargetSelf, entities.TargetAllAllies:
				return ActionChoice{SkillID: skill.ID}, true
			case entities.TargetSingleAlly:
				return ActionChoice{SkillID: skill.ID, TargetID: actor.ID()}, true
			case entities.TargetSingleEnemy, entities.TargetAllEnemies, entities.TargetRandomEnemy:
			}
		case entities.SkillCategoryAttack, entities.SkillCategoryHeal,
			entities.SkillCategoryRevive, entities.SkillCategorySpecial:
		}
	}
	return ActionChoice{}, false
}

func offensiveChoice(field *Battlefield, actor *Combatant, skill *entities.Skill) (ActionChoice, bool) {
	if skill.Target != entities.TargetSingleEnemy {
		return ActionChoice{SkillID: skill.ID}, true
	}
	target := weakest(field.Living(actor.Side().Opponent()))
	if target == nil {
		return ActionChoice{}, false
	}
	return ActionChoice{SkillID: skill.ID, TargetID: target.ID()}, true
}

func readySkills(actor *Combatant) []entities.Skill {
	var out []entities.Skill
	for _, skill := range actor.Skills() {
		if actor.Cooldowns().Available(skill.ID) {
			out = append(out, skill)
		}
	}
	return out
}

// weakest returns the combatant with the least health, earliest index on ties
func weakest(candidates []*Combatant) *Combatant {
	var best *Combatant
	for _, c := range candidates {
		if best == nil || c.Health() < best.Health() {
			best = c
		}
	}
	return best
}

func weakestWithout(candidates []*Combatant, kind entities.StatusKind) *Combatant {
	var filtered []*Combatant
	for _, c := range candidates {
		if !c.HasEffect(kind) {
			filtered = append(filtered, c)
		}
	}
	return weakest(filtered)
}

func mostHurt(candidates []*Combatant) *Combatant {
	var best *Combatant
	for _, c := range candidates {
		if best == nil || c.HealthRatio() < best.HealthRatio() {
			best = c
		}
	}
	return best
}

type choiceKey struct {
	round   int
	actorID string
}

// ScriptedSelector replays choices submitted per round and actor. It serves
// both manual play, where the caller submits the player's choices before
// each round, and replay of a recorded battle.
type ScriptedSelector struct {
	mu      sync.Mutex
	choices map[choiceKey]ActionChoice
}

// NewScriptedSelector creates a selector preloaded with recorded choices
func NewScriptedSelector(recorded []RecordedChoice) *ScriptedSelector {
	s := &ScriptedSelector{choices: make(map[choiceKey]ActionChoice, len(recorded))}
	for _, r := range recorded {
		s.choices[choiceKey{round: r.Round, actorID: r.ActorID}] = r.Choice()
	}
	return s
}

// Submit sets the choices for a round keyed by actor id, replacing any
// earlier submission for the same actor
func (s *ScriptedSelector) Submit(round int, choices map[string]ActionChoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for actorID, choice := range choices {
		s.choices[choiceKey{round: round, actorID: actorID}] = choice
	}
}

// SelectAction returns the submitted choice for actor in the current round
func (s *ScriptedSelector) SelectAction(field *Battlefield, actor *Combatant) (ActionChoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	choice, ok := s.choices[choiceKey{round: field.Round(), actorID: actor.ID()}]
	if !ok {
		return ActionChoice{}, errors.ActionNotAllowedf("no action supplied for %s in round %d", actor.ID(), field.Round()).
			WithMeta("actor_id", actor.ID()).
			WithMeta("round", field.Round())
	}
	return choice, nil
}
