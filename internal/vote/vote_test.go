package vote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroboard-dev/retroboard/internal/domain"
)

func TestToggle(t *testing.T) {
	testCases := []struct {
		name      string
		current   domain.VoteValue
		requested domain.VoteValue
		wantNext  domain.VoteValue
		wantDelta int
	}{
		{name: "first upvote", current: 0, requested: Up, wantNext: Up, wantDelta: 1},
		{name: "first downvote", current: 0, requested: Down, wantNext: Down, wantDelta: -1},
		{name: "repeat upvote toggles off", current: Up, requested: Up, wantNext: 0, wantDelta: -1},
		{name: "repeat downvote toggles off", current: Down, requested: Down, wantNext: 0, wantDelta: 1},
		{name: "flip up to down", current: Up, requested: Down, wantNext: Down, wantDelta: -2},
		{name: "flip down to up", current: Down, requested: Up, wantNext: Up, wantDelta: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, delta, err := Toggle(tc.current, tc.requested)
			require.NoError(t, err)
			assert.Equal(t, tc.wantNext, next)
			assert.Equal(t, tc.wantDelta, delta)
		})
	}
}

func TestToggleInvalidValue(t *testing.T) {
	for _, v := range []domain.VoteValue{0, 2, -2, 100} {
		_, _, err := Toggle(0, v)
		assert.Error(t, err, "value %d", v)
	}
}

// Casting the same directional vote twice must return the item to its
// pre-vote state.
func TestApplyIdempotentToggle(t *testing.T) {
	voters := domain.Voters{}
	votes := 0

	delta, err := Apply(voters, 1, Up)
	require.NoError(t, err)
	votes += delta
	assert.Equal(t, 1, votes)
	assert.Equal(t, Up, voters[1])

	delta, err = Apply(voters, 1, Up)
	require.NoError(t, err)
	votes += delta
	assert.Equal(t, 0, votes)
	assert.NotContains(t, voters, domain.UserId(1))
}

// A user can never hold both directions at once; the opposite vote
// overwrites without double counting.
func TestApplyFlipNeverDoubleCounts(t *testing.T) {
	voters := domain.Voters{}
	votes := 0

	for _, v := range []domain.VoteValue{Up, Down, Up, Down} {
		delta, err := Apply(voters, 7, v)
		require.NoError(t, err)
		votes += delta
		assert.Equal(t, v, voters[7])
		assert.Equal(t, Tally(voters), votes)
	}
}

// votes == sum(voters.values()) must hold after every operation.
func TestScoreAccounting(t *testing.T) {
	voters := domain.Voters{}
	votes := 0

	ops := []struct {
		user  domain.UserId
		value domain.VoteValue
	}{
		{1, Up}, {2, Down}, {3, Up}, {1, Up}, {2, Up}, {3, Down}, {2, Down},
	}
	for _, op := range ops {
		delta, err := Apply(voters, op.user, op.value)
		require.NoError(t, err)
		votes += delta
		require.Equal(t, Tally(voters), votes)
	}
}

func TestTally(t *testing.T) {
	assert.Equal(t, 0, Tally(nil))
	assert.Equal(t, 1, Tally(domain.Voters{1: 1, 2: -1, 3: 1}))
}
