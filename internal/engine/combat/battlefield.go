package combat

// Battlefield holds both rosters of a battle and the current round number
type Battlefield struct {
	round   int
	players []*Combatant
	enemies []*Combatant
}

func newBattlefield(players, enemies []*Combatant) *Battlefield {
	return &Battlefield{players: players, enemies: enemies}
}

// Round returns the round being resolved, or the last resolved round
// between rounds
func (b *Battlefield) Round() int {
	return b.round
}

// Roster returns the combatants of one side in roster order
func (b *Battlefield) Roster(side Side) []*Combatant {
	if side == SidePlayer {
		return b.players
	}
	return b.enemies
}

// Allies returns the roster c belongs to, c included
func (b *Battlefield) Allies(c *Combatant) []*Combatant {
	return b.Roster(c.side)
}

// Opponents returns the roster c fights against
func (b *Battlefield) Opponents(c *Combatant) []*Combatant {
	return b.Roster(c.side.Opponent())
}

// Living returns the living combatants of one side in roster order
func (b *Battlefield) Living(side Side) []*Combatant {
	var out []*Combatant
	for _, c := range b.Roster(side) {
		if c.Alive() {
			out = append(out, c)
		}
	}
	return out
}

// Fallen returns the defeated combatants of one side in roster order
func (b *Battlefield) Fallen(side Side) []*Combatant {
	var out []*Combatant
	for _, c := range b.Roster(side) {
		if !c.Alive() {
			out = append(out, c)
		}
	}
	return out
}

// Wiped reports whether a side has no living combatants
func (b *Battlefield) Wiped(side Side) bool {
	for _, c := range b.Roster(side) {
		if c.Alive() {
			return false
		}
	}
	return true
}

// Find returns the combatant with the given id
func (b *Battlefield) Find(id string) (*Combatant, bool) {
	for _, c := range b.players {
		if c.ID() == id {
			return c, true
		}
	}
	for _, c := range b.enemies {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// All returns players then enemies
func (b *Battlefield) All() []*Combatant {
	out := make([]*Combatant, 0, len(b.players)+len(b.enemies))
	out = append(out, b.players...)
	return append(out, b.enemies...)
}

// Snapshot returns read-only views of every combatant, players first
func (b *Battlefield) Snapshot() []CombatantSnapshot {
	all := b.All()
	out := make([]CombatantSnapshot, len(all))
	for i, c := range all {
		out[i] = c.Snapshot()
	}
	return out
}
