package replay

import (
	"github.com/vovakirdan/tui-maze/internal/maze/core"
)

// Player steps through a recording one move or one turn at a time.
type Player struct {
	gs    *core.GameState
	steps []core.Step
	pos   int
}

// NewPlayer prepares playback of steps on a freshly built game.
func NewPlayer(gs *core.GameState, steps []core.Step) *Player {
	return &Player{gs: gs, steps: steps}
}

// State returns the game being replayed.
func (p *Player) State() *core.GameState {
	return p.gs
}

// Pos returns how many steps have been applied.
func (p *Player) Pos() int {
	return p.pos
}

// Len returns the number of steps in the recording.
func (p *Player) Len() int {
	return len(p.steps)
}

// Done reports whether every step has been applied.
func (p *Player) Done() bool {
	return p.pos >= len(p.steps)
}

// Step applies the next recorded move.
func (p *Player) Step() (core.Step, error) {
	if p.Done() {
		return core.Step{}, nil
	}
	st := p.steps[p.pos]
	if err := applyStep(p.gs, p.pos, st); err != nil {
		return st, err
	}
	p.pos++
	return st, nil
}

// StepTurn applies the next avatar move and the autonomous moves that
// followed it. Returns the number of steps applied.
func (p *Player) StepTurn() (int, error) {
	n := 0
	for !p.Done() {
		if n > 0 && p.steps[p.pos].Entity == core.AvatarID {
			break
		}
		if _, err := p.Step(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
