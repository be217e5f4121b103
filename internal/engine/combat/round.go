package combat

import (
	"cmp"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
	"github.com/KirkDiggler/nyanko-battle/internal/pkg/rng"
)

// actionLog is the append-only replay log of one battle
type actionLog struct {
	actions []BattleAction
}

func (l *actionLog) add(a BattleAction) {
	a.Sequence = len(l.actions) + 1
	l.actions = append(l.actions, a)
}

func (l *actionLog) since(start int) []BattleAction {
	return append([]BattleAction(nil), l.actions[start:]...)
}

// RoundResolver resolves one round at a time. Resolution is resumable: when
// a selector or a choice fails, the error is returned with the cursor still
// on the failing actor, and the next Resolve call asks that actor again
// without repeating the status ticks.
type RoundResolver struct {
	field     *Battlefield
	statuses  *StatusProcessor
	roller    dice.Roller
	selectors map[Side]ActionSelector
	log       *actionLog
	choices   []RecordedChoice

	inRound    bool
	order      []*Combatant
	cursor     int
	roundStart int
}

func newRoundResolver(
	field *Battlefield,
	statuses *StatusProcessor,
	roller dice.Roller,
	player, enemy ActionSelector,
	log *actionLog,
) *RoundResolver {
	return &RoundResolver{
		field:    field,
		statuses: statuses,
		roller:   roller,
		selectors: map[Side]ActionSelector{
			SidePlayer: player,
			SideEnemy:  enemy,
		},
		log: log,
	}
}

// InRound reports whether a round was started but not finished
func (r *RoundResolver) InRound() bool {
	return r.inRound
}

// Resolve runs the current round to completion
func (r *RoundResolver) Resolve() (*RoundReport, error) {
	if !r.inRound {
		r.begin()
	}

	for r.cursor < len(r.order) {
		if r.field.Wiped(SidePlayer) || r.field.Wiped(SideEnemy) {
			break
		}

		actor := r.order[r.cursor]
		if actor.Alive() && !actor.Stunned() {
			if err := r.act(actor); err != nil {
				return nil, err
			}
		}
		r.cursor++
	}

	return r.finish(), nil
}

// begin builds the turn order and applies the pre-action status ticks
func (r *RoundResolver) begin() {
	r.field.round++
	r.roundStart = len(r.log.actions)
	r.order = r.turnOrder()
	r.cursor = 0
	r.inRound = true

	for _, c := range r.order {
		tick := r.statuses.Tick(c)
		for _, d := range tick.Damage {
			source := d.SourceID
			if source == "" {
				source = c.ID()
			}
			r.log.add(BattleAction{
				Round:    r.field.round,
				Kind:     ActionTick,
				ActorID:  source,
				TargetID: c.ID(),
				SkillID:  d.SkillID,
				Damage:   d.Amount,
				Killed:   d.Killed,
			})
		}
		if tick.Stunned && c.Alive() {
			r.log.add(BattleAction{
				Round:   r.field.round,
				Kind:    ActionStunned,
				ActorID: c.ID(),
			})
		}
	}
}

// turnOrder sorts living combatants by effective speed, fastest first.
// The stable sort keeps players before enemies and roster order on ties.
func (r *RoundResolver) turnOrder() []*Combatant {
	var order []*Combatant
	for _, c := range r.field.All() {
		if c.Alive() {
			order = append(order, c)
		}
	}
	slices.SortStableFunc(order, func(a, b *Combatant) int {
		return cmp.Compare(b.EffectiveSpeed(), a.EffectiveSpeed())
	})
	return order
}

func (r *RoundResolver) finish() *RoundReport {
	for _, c := range r.field.All() {
		c.Cooldowns().Tick()
	}
	r.inRound = false
	r.order = nil

	return &RoundReport{
		Round:        r.field.round,
		Actions:      r.log.since(r.roundStart),
		PlayersAlive: len(r.field.Living(SidePlayer)),
		EnemiesAlive: len(r.field.Living(SideEnemy)),
	}
}

// plan is a validated choice
type plan struct {
	actor    *Combatant
	skill    *entities.Skill
	selector entities.TargetSelector
	target   *Combatant
	targetID string
}

func (p *plan) category() entities.SkillCategory {
	if p.skill == nil {
		return entities.SkillCategoryAttack
	}
	return p.skill.Category
}

func (p *plan) kind() ActionKind {
	if p.skill == nil {
		return ActionAttack
	}
	return ActionSkill
}

func (p *plan) skillID() string {
	if p.skill == nil {
		return ""
	}
	return p.skill.ID
}

func (r *RoundResolver) act(actor *Combatant) error {
	selector := r.selectors[actor.Side()]
	choice, err := selector.SelectAction(r.field, actor)
	if err != nil {
		return err
	}

	p, err := r.validate(actor, choice)
	if err != nil {
		return err
	}

	r.choices = append(r.choices, RecordedChoice{
		Round:    r.field.round,
		ActorID:  actor.ID(),
		SkillID:  choice.SkillID,
		TargetID: choice.TargetID,
	})

	return r.execute(p)
}

func reject(actor *Combatant, choice ActionChoice, format string, args ...interface{}) error {
	return errors.ActionNotAllowedf(format, args...).
		WithMeta("actor_id", actor.ID()).
		WithMeta("skill_id", choice.SkillID).
		WithMeta("target_id", choice.TargetID)
}

// validate checks a choice without touching any state
func (r *RoundResolver) validate(actor *Combatant, choice ActionChoice) (*plan, error) {
	if !actor.Alive() {
		return nil, reject(actor, choice, "%s is defeated and cannot act", actor.ID())
	}
	if actor.Stunned() {
		return nil, reject(actor, choice, "%s is stunned and cannot act", actor.ID())
	}

	p := &plan{actor: actor, selector: entities.TargetSingleEnemy, targetID: choice.TargetID}
	if choice.SkillID != "" {
		skill, ok := actor.Skill(choice.SkillID)
		if !ok {
			return nil, reject(actor, choice, "%s has no skill %s", actor.ID(), choice.SkillID)
		}
		if !actor.Cooldowns().Available(skill.ID) {
			return nil, reject(actor, choice, "skill %s is on cooldown for %d more rounds",
				skill.ID, actor.Cooldowns().Remaining(skill.ID))
		}
		p.skill = skill
		p.selector = skill.Target
	}

	reviving := p.category() == entities.SkillCategoryRevive

	switch p.selector {
	case entities.TargetSingleEnemy, entities.TargetSingleAlly:
		if choice.TargetID == "" {
			return nil, reject(actor, choice, "%s requires a target", describe(p))
		}
		target, ok := r.field.Find(choice.TargetID)
		if !ok {
			return nil, reject(actor, choice, "unknown target %s", choice.TargetID)
		}
		want := actor.Side()
		if p.selector == entities.TargetSingleEnemy {
			want = want.Opponent()
		}
		if target.Side() != want {
			return nil, reject(actor, choice, "%s cannot target %s", describe(p), target.ID())
		}
		if reviving && target.Alive() {
			return nil, reject(actor, choice, "target %s is not defeated", target.ID())
		}
		if !reviving && !target.Alive() {
			return nil, reject(actor, choice, "target %s is already defeated", target.ID())
		}
		p.target = target
	case entities.TargetSelf:
		if choice.TargetID != "" && choice.TargetID != actor.ID() {
			return nil, reject(actor, choice, "%s can only target its user", describe(p))
		}
		if reviving {
			return nil, reject(actor, choice, "%s cannot revive its living user", describe(p))
		}
	case entities.TargetAllAllies, entities.TargetAllEnemies, entities.TargetRandomEnemy:
		if choice.TargetID != "" {
			return nil, reject(actor, choice, "%s does not take a target", describe(p))
		}
		if reviving && len(r.field.Fallen(sideOf(actor, p.selector))) == 0 {
			return nil, reject(actor, choice, "no defeated combatant for %s", describe(p))
		}
	default:
		return nil, reject(actor, choice, "%s has unknown target selector %q", describe(p), p.selector)
	}

	return p, nil
}

func describe(p *plan) string {
	if p.skill == nil {
		return "basic attack"
	}
	return "skill " + p.skill.ID
}

// sideOf returns the roster a non-single selector draws from
func sideOf(actor *Combatant, selector entities.TargetSelector) Side {
	if selector.HitsEnemies() {
		return actor.Side().Opponent()
	}
	return actor.Side()
}

func (r *RoundResolver) execute(p *plan) error {
	actor := p.actor

	if p.skill != nil {
		if err := actor.Cooldowns().Use(p.skill); err != nil {
			return err
		}

		activated, err := rng.Percent(r.roller, p.skill.ActivationRate)
		if err != nil {
			return err
		}
		if !activated {
			r.log.add(BattleAction{
				Round:    r.field.round,
				Kind:     ActionFizzled,
				ActorID:  actor.ID(),
				TargetID: p.targetID,
				SkillID:  p.skill.ID,
			})
			return nil
		}
	}

	targets, err := r.targets(p)
	if err != nil {
		return err
	}

	for _, target := range targets {
		if !actor.Alive() {
			break
		}
		if err := r.hit(p, target); err != nil {
			return err
		}
	}
	return nil
}

// targets takes the snapshot an action resolves against
func (r *RoundResolver) targets(p *plan) ([]*Combatant, error) {
	reviving := p.category() == entities.SkillCategoryRevive

	switch p.selector {
	case entities.TargetSingleEnemy, entities.TargetSingleAlly:
		return []*Combatant{p.target}, nil
	case entities.TargetSelf:
		return []*Combatant{p.actor}, nil
	case entities.TargetAllAllies, entities.TargetAllEnemies:
		side := sideOf(p.actor, p.selector)
		if reviving {
			return r.field.Fallen(side), nil
		}
		return r.field.Living(side), nil
	case entities.TargetRandomEnemy:
		living := r.field.Living(p.actor.Side().Opponent())
		idx, err := rng.Pick(r.roller, len(living))
		if err != nil {
			return nil, err
		}
		return []*Combatant{living[idx]}, nil
	default:
		return nil, errors.Internalf("unknown target selector %q", p.selector)
	}
}

// hit resolves the action against one snapshot member
func (r *RoundResolver) hit(p *plan, target *Combatant) error {
	actor := p.actor
	action := BattleAction{
		Round:    r.field.round,
		Kind:     p.kind(),
		ActorID:  actor.ID(),
		TargetID: target.ID(),
		SkillID:  p.skillID(),
	}

	switch category := p.category(); category {
	case entities.SkillCategoryAttack, entities.SkillCategorySpecial:
		if !target.Alive() {
			return nil
		}
		critical, err := rng.Chance(r.roller, actor.def.CriticalRate)
		if err != nil {
			return err
		}
		defender := target.EffectiveStats()
		if category == entities.SkillCategorySpecial {
			defender.Defense = 0
		}
		damage := ComputeDamage(actor.EffectiveStats(), defender, p.skill, critical)

		action.Damage = target.takeDamage(damage)
		action.Critical = critical
		action.Killed = !target.Alive()
		r.log.add(action)

		if p.skill != nil {
			r.applyEffect(p, target)
		}
		r.counter(actor, target, action.Damage)
	case entities.SkillCategoryHeal:
		if !target.Alive() {
			return nil
		}
		action.Heal = target.heal(p.skill.Magnitude)
		r.log.add(action)
	case entities.SkillCategoryRevive:
		if target.Alive() {
			return nil
		}
		action.Heal = target.revive(target.MaxHealth() * p.skill.Magnitude / 100)
		r.log.add(action)
	case entities.SkillCategoryBuff, entities.SkillCategoryDebuff,
		entities.SkillCategoryDOT, entities.SkillCategoryCounter:
		if !target.Alive() {
			return nil
		}
		r.log.add(action)
		r.applyEffect(p, target)
	default:
		return errors.Internalf("unknown skill category %q", category)
	}
	return nil
}

func (r *RoundResolver) applyEffect(p *plan, target *Combatant) {
	kind := p.skill.EffectKind()
	if !kind.IsValid() {
		return
	}
	r.statuses.Apply(target, StatusEffect{
		Kind:      kind,
		Remaining: p.skill.EffectDuration(),
		Magnitude: p.skill.Magnitude,
		SourceID:  p.actor.ID(),
		SkillID:   p.skill.ID,
	})
}

// counter reflects part of a direct hit back at an opposing attacker
func (r *RoundResolver) counter(attacker, defender *Combatant, damage int) {
	if damage <= 0 || !attacker.Alive() || !defender.Alive() || attacker.Side() == defender.Side() {
		return
	}
	effect := defender.effect(entities.StatusCounter)
	if effect == nil {
		return
	}

	reflected := damage * effect.Total() / 100
	if reflected <= 0 {
		return
	}

	applied := attacker.takeDamage(reflected)
	r.log.add(BattleAction{
		Round:    r.field.round,
		Kind:     ActionCounter,
		ActorID:  defender.ID(),
		TargetID: attacker.ID(),
		SkillID:  effect.SkillID,
		Damage:   applied,
		Killed:   !attacker.Alive(),
	})
}
