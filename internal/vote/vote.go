// Package vote implements the toggle semantics of directed per-user votes.
//
// Every user contributes net -1, 0 or +1 to an item's score. Casting the
// same direction twice toggles the vote off; casting the opposite direction
// overwrites the previous vote in the same operation. The aggregate counter
// is always adjusted by the returned delta, never recomputed by scanning
// all voters.
package vote

import (
	"fmt"

	"github.com/retroboard-dev/retroboard/internal/domain"
)

const (
	Up   domain.VoteValue = 1
	Down domain.VoteValue = -1
)

func ValidValue(v domain.VoteValue) bool {
	return v == Up || v == Down
}

// Toggle computes the user's next vote value and the delta to apply to the
// aggregate counter, given the user's current value (0 if none).
func Toggle(current, requested domain.VoteValue) (next domain.VoteValue, delta int, err error) {
	if !ValidValue(requested) {
		return 0, 0, fmt.Errorf("invalid vote value: %d", requested)
	}
	if current == requested {
		// toggle off
		return 0, -current, nil
	}
	return requested, requested - current, nil
}

// Apply mutates voters in place with the outcome of Toggle and returns the
// counter delta. Entries with value 0 are removed rather than stored.
func Apply(voters domain.Voters, userId domain.UserId, requested domain.VoteValue) (int, error) {
	next, delta, err := Toggle(voters[userId], requested)
	if err != nil {
		return 0, err
	}
	if next == 0 {
		delete(voters, userId)
	} else {
		voters[userId] = next
	}
	return delta, nil
}

// Tally recomputes the score from scratch. Production code adjusts the
// stored counter by delta instead; this exists for invariant checks.
func Tally(voters domain.Voters) int {
	total := 0
	for _, v := range voters {
		total += v
	}
	return total
}
