package combat

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/looplab/fsm"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

// DefaultTeamSize is the roster cap used when Config.TeamSize is zero
const DefaultTeamSize = 5

// Controller lifecycle events
const (
	eventStart   = "start"
	eventWin     = "win"
	eventLose    = "lose"
	eventStalled = "stall"
)

// Config holds the dependencies and rules of one battle
type Config struct {
	// TurnLimit ends the battle in a draw after that many rounds; 0 is no limit
	TurnLimit int
	// TeamSize caps each roster; 0 means DefaultTeamSize
	TeamSize int
	// MaxStacks is the status stacking cap; 0 means refresh-on-reapply
	MaxStacks int

	Roller         dice.Roller
	PlayerSelector ActionSelector
	EnemySelector  ActionSelector
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.PlayerSelector == nil {
		vb.RequiredField("PlayerSelector")
	}
	if c.EnemySelector == nil {
		vb.RequiredField("EnemySelector")
	}
	if c.TurnLimit < 0 {
		vb.Field("TurnLimit", "must not be negative")
	}
	if c.TeamSize < 0 {
		vb.Field("TeamSize", "must not be negative")
	}
	if c.MaxStacks < 0 {
		vb.Field("MaxStacks", "must not be negative")
	}

	return vb.Build()
}

// Controller drives one battle from start to a terminal state. It owns every
// Combatant of both rosters. A Controller is not safe for concurrent use.
type Controller struct {
	cfg      Config
	machine  *fsm.FSM
	statuses *StatusProcessor

	field    *Battlefield
	log      *actionLog
	resolver *RoundResolver
	result   *BattleResult
}

// NewController creates a controller in the not started state
func NewController(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := &Controller{cfg: *cfg}
	if c.cfg.TeamSize == 0 {
		c.cfg.TeamSize = DefaultTeamSize
	}
	c.statuses = NewStatusProcessor(c.cfg.MaxStacks)

	c.machine = fsm.NewFSM(
		string(StateNotStarted),
		fsm.Events{
			{
				Name: eventStart,
				Src:  []string{string(StateNotStarted), string(StateVictory), string(StateDefeat), string(StateDraw)},
				Dst:  string(StateInProgress),
			},
			{Name: eventWin, Src: []string{string(StateInProgress)}, Dst: string(StateVictory)},
			{Name: eventLose, Src: []string{string(StateInProgress)}, Dst: string(StateDefeat)},
			{Name: eventStalled, Src: []string{string(StateInProgress)}, Dst: string(StateDraw)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				if State(e.Dst).IsTerminal() {
					c.result = c.buildResult(State(e.Dst))
				}
			},
		},
	)

	return c, nil
}

// State returns the current controller state
func (c *Controller) State() State {
	return State(c.machine.Current())
}

// TurnLimit returns the configured turn limit
func (c *Controller) TurnLimit() int {
	return c.cfg.TurnLimit
}

// Round returns the number of the last started round
func (c *Controller) Round() int {
	if c.field == nil {
		return 0
	}
	return c.field.Round()
}

// PendingRound returns the number of the round the next AdvanceRound call
// resolves
func (c *Controller) PendingRound() int {
	if c.resolver != nil && c.resolver.InRound() {
		return c.field.Round()
	}
	return c.Round() + 1
}

// Field returns the battlefield, nil before the first Start
func (c *Controller) Field() *Battlefield {
	return c.field
}

// Start copies both rosters into fresh combatants and begins the battle.
// It may be called again once the previous battle is over; the action log
// starts empty each time.
func (c *Controller) Start(player, enemy []entities.CombatantDefinition) error {
	if c.State() == StateInProgress {
		return errors.InvalidBattleState("battle is already in progress")
	}
	if err := ValidateRosters(player, enemy, c.cfg.TeamSize); err != nil {
		return err
	}

	players := make([]*Combatant, len(player))
	for i, def := range player {
		players[i] = newCombatant(def, SidePlayer, i)
	}
	enemies := make([]*Combatant, len(enemy))
	for i, def := range enemy {
		enemies[i] = newCombatant(def, SideEnemy, i)
	}

	c.field = newBattlefield(players, enemies)
	c.log = &actionLog{}
	c.result = nil
	c.resolver = newRoundResolver(c.field, c.statuses, c.cfg.Roller,
		c.cfg.PlayerSelector, c.cfg.EnemySelector, c.log)

	if err := c.machine.Event(context.Background(), eventStart); err != nil {
		return errors.Wrap(err, "failed to start battle")
	}
	return nil
}

// AdvanceRound resolves one round. When a choice is rejected the round is
// left open and the next call re-prompts the same actor.
func (c *Controller) AdvanceRound(ctx context.Context) (*RoundReport, error) {
	if state := c.State(); state != StateInProgress {
		return nil, errors.InvalidBattleStatef("cannot advance a round in state %s", state)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "round not started")
	}

	report, err := c.resolver.Resolve()
	if err != nil {
		return nil, err
	}

	if event := c.terminalEvent(report); event != "" {
		// the round is already resolved, so the transition must not be canceled
		if err := c.machine.Event(context.WithoutCancel(ctx), event); err != nil {
			return nil, errors.Wrap(err, "failed to end battle")
		}
	}

	report.State = c.State()
	return report, nil
}

func (c *Controller) terminalEvent(report *RoundReport) string {
	switch {
	case report.PlayersAlive == 0 && report.EnemiesAlive == 0:
		return eventStalled
	case report.EnemiesAlive == 0:
		return eventWin
	case report.PlayersAlive == 0:
		return eventLose
	case c.cfg.TurnLimit > 0 && report.Round >= c.cfg.TurnLimit:
		return eventStalled
	default:
		return ""
	}
}

// Result returns a copy of the terminal battle record
func (c *Controller) Result() (*BattleResult, error) {
	if state := c.State(); !state.IsTerminal() {
		return nil, errors.InvalidBattleStatef("no result in state %s", state)
	}
	return c.result.Clone(), nil
}

// Actions returns a copy of the action log so far
func (c *Controller) Actions() []BattleAction {
	if c.log == nil {
		return nil
	}
	return c.log.since(0)
}

// Choices returns the accepted choices of both sides in resolution order
func (c *Controller) Choices() []RecordedChoice {
	if c.resolver == nil {
		return nil
	}
	return append([]RecordedChoice(nil), c.resolver.choices...)
}

// Snapshot returns read-only views of every combatant
func (c *Controller) Snapshot() []CombatantSnapshot {
	if c.field == nil {
		return nil
	}
	return c.field.Snapshot()
}

func (c *Controller) buildResult(state State) *BattleResult {
	result := &BattleResult{
		Rounds:  c.field.Round(),
		Actions: c.log.since(0),
	}

	switch state {
	case StateVictory:
		result.Outcome = OutcomeVictory
		result.Victory = true
	case StateDefeat:
		result.Outcome = OutcomeDefeat
	case StateDraw, StateNotStarted, StateInProgress:
		result.Outcome = OutcomeDraw
	}

	for _, action := range result.Actions {
		if action.Damage == 0 {
			continue
		}
		target, ok := c.field.Find(action.TargetID)
		if !ok {
			continue
		}
		if target.Side() == SideEnemy {
			result.DamageDealt += action.Damage
		} else {
			result.DamageTaken += action.Damage
		}
	}

	return result
}
