package igisoro

import (
	"fmt"

	"github.com/rocketscienceinc/igisoro-backend/internal/entity"
)

// maxDrops bounds the seeds dropped in one move. Each lap of the ring leaves
// Cols*2 seeds in the opponent rows for good, so a real move stays far below it.
const maxDrops = entity.TotalSeeds * entity.Rows * entity.Cols

type sowResult struct {
	last     entity.Pit
	captured int
	capture  *entity.Capture
}

// sow - runs the whole move from origin on board, reporting every intermediate state to emit.
// The caller guarantees that origin is a non-empty pit of mover.
func sow(board *entity.Board, mover entity.Player, origin entity.Pit, emit func(entity.Step)) sowResult {
	inHand := board.Seeds(origin)
	board[origin.Row][origin.Col] = 0
	emit(snapshot(entity.StepPickUp, origin, inHand, board))

	pos := origin
	drops := 0

	for {
		for inHand > 0 {
			pos = entity.AdjacentPit(pos)
			board[pos.Row][pos.Col]++
			inHand--

			drops++
			if drops > maxDrops {
				panic(fmt.Sprintf("sowing from %s did not terminate after %d drops", origin, drops))
			}

			emit(snapshot(entity.StepSow, pos, inHand, board))
		}

		// the last seed fell into an empty pit
		landed := board.Seeds(pos)
		if landed <= 1 {
			return sowResult{last: pos}
		}

		board[pos.Row][pos.Col] = 0

		if entity.Owner(pos.Row) != mover {
			emit(snapshot(entity.StepCapture, pos, 0, board))

			return sowResult{
				last:     pos,
				captured: landed,
				capture:  &entity.Capture{Pit: pos, Amount: landed},
			}
		}

		// relay: keep sowing from here with everything picked up
		inHand = landed
		emit(snapshot(entity.StepPickUp, pos, inHand, board))
	}
}

func snapshot(action entity.StepAction, pit entity.Pit, inHand int, board *entity.Board) entity.Step {
	return entity.Step{
		Action: action,
		Pit:    pit,
		InHand: inHand,
		Board:  *board,
	}
}
