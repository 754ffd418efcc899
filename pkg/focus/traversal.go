package focus

import "log/slog"

// Direction is a traversal direction across a focus group.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Mover is the single traversal primitive: move focus one step in the
// given direction and report whether focus actually moved. A false return
// means a boundary was reached.
//
// Movers come from the host's traversal policy and are not trusted to be
// acyclic; the engine bounds every repetition.
type Mover interface {
	Step(dir Direction) bool
}

// TraversalCap is the fixed bound on traversal repetition. Reaching it
// means the traversal order almost certainly forms a cycle (a custom
// policy or nested scopes); the engine stops there and treats the last
// reached position as the answer, trading boundary accuracy for a
// guarantee that the interaction loop never freezes.
const TraversalCap = 100

// Debug enables the non-fatal diagnostic logged when TraversalCap is
// reached. Production builds leave it off; the cap alone guarantees
// termination.
var Debug = false

// Traverser performs bounded first/last/next/previous focus movement
// over a Mover.
type Traverser struct {
	mover  Mover
	logger *slog.Logger
}

// NewTraverser creates a traverser over mover. A nil logger defaults to
// slog.Default.
func NewTraverser(mover Mover, logger *slog.Logger) *Traverser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Traverser{mover: mover, logger: logger}
}

// First moves focus to the group's first position: step backward until a
// boundary, bounded by TraversalCap.
func (t *Traverser) First() {
	t.run(Backward, TraversalCap)
}

// Last moves focus to the group's last position: step forward until a
// boundary, bounded by TraversalCap.
func (t *Traverser) Last() {
	t.run(Forward, TraversalCap)
}

// Next moves focus one step forward. Returns false at a boundary.
func (t *Traverser) Next() bool {
	return t.mover.Step(Forward)
}

// Previous moves focus one step backward. Returns false at a boundary.
func (t *Traverser) Previous() bool {
	return t.mover.Step(Backward)
}

func (t *Traverser) run(dir Direction, limit int) {
	for i := 0; i < limit; i++ {
		if !t.mover.Step(dir) {
			return
		}
	}
	if Debug {
		t.logger.Warn("focus traversal cap reached; traversal order is likely circular",
			"cap", limit,
			"direction", dirName(dir))
	}
}

func dirName(d Direction) string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}
