// Package progress implements the bounded daily-progress counter: every
// transition keeps the done value inside [0, target].
package progress

type Op string

const (
	OpDone    Op = "done"
	OpDoneAll Op = "done-all"
	OpUndo    Op = "undo"
	OpUndoAll Op = "undo-all"
)

// ParseOp maps any unrecognized value to OpDone, the default increment
// behavior of the progress endpoint.
func ParseOp(s string) Op {
	switch Op(s) {
	case OpDoneAll, OpUndo, OpUndoAll:
		return Op(s)
	default:
		return OpDone
	}
}

// Next returns the done counter after applying op. A fresh record is the
// same transition started from done = 0.
func Next(done, increment, target int, op Op) int {
	switch op {
	case OpDoneAll:
		return target
	case OpUndoAll:
		return 0
	case OpUndo:
		next := done - increment
		if next < 0 {
			next = 0
		}
		return next
	default:
		next := done + increment
		if next > target {
			next = target
		}
		return next
	}
}
