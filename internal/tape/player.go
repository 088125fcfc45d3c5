package tape

// Player steps through a parsed tape.
type Player struct {
	commands []Command
	index    int
}

// NewPlayer returns a player positioned at the first command.
func NewPlayer(commands []Command) *Player {
	return &Player{commands: commands}
}

// NextCommand returns the current command without advancing, or nil when
// the tape is finished.
func (p *Player) NextCommand() *Command {
	if p.IsFinished() {
		return nil
	}
	return &p.commands[p.index]
}

// Advance moves to the next command.
func (p *Player) Advance() {
	if p.index < len(p.commands) {
		p.index++
	}
}

// IsFinished reports whether every command has been consumed.
func (p *Player) IsFinished() bool {
	return p.index >= len(p.commands)
}

// Progress returns the number of consumed commands and the total.
func (p *Player) Progress() (done, total int) {
	return p.index, len(p.commands)
}

// Reset rewinds to the first command.
func (p *Player) Reset() {
	p.index = 0
}
