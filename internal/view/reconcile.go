package view

import "github.com/retroboard-dev/retroboard/internal/domain"

type OpKind string

const (
	OpAdd    OpKind = "add"
	OpUpdate OpKind = "update"
	OpMove   OpKind = "move"
	OpRemove OpKind = "remove"
)

// Op is a single reconciliation step a client applies to go from its
// previously rendered view to the new one. Existing entries are reused by
// id: an unchanged item produces no op at all, an item whose vote state
// changed produces an update carrying only the new state, and order changes
// become moves. Only adds carry the full item.
type Op struct {
	Kind  OpKind            `json:"kind"`
	Id    domain.ItemId     `json:"id"`
	Index int               `json:"index,omitempty"`
	Item  *domain.Item      `json:"item,omitempty"`
	Vote  *domain.VoteState `json:"vote,omitempty"`
}

// Reconcile diffs two ordered views of the same board. Ops come out in a
// safe application order: removes first, then adds/updates/moves in the
// order of the new view. Relative order of surviving items is compared with
// adds and removes factored out, so an insertion or deletion alone does not
// flag every item after it as moved.
func Reconcile(prev, next []domain.Item, viewer domain.UserId) []Op {
	prevById := make(map[domain.ItemId]domain.Item, len(prev))
	for _, it := range prev {
		prevById[it.Id] = it
	}
	nextIds := make(map[domain.ItemId]struct{}, len(next))
	for _, it := range next {
		nextIds[it.Id] = struct{}{}
	}

	var ops []Op
	for _, it := range prev {
		if _, ok := nextIds[it.Id]; !ok {
			ops = append(ops, Op{Kind: OpRemove, Id: it.Id})
		}
	}

	// Positions of survivors in the old view, with removed ids skipped.
	prevPos := make(map[domain.ItemId]int, len(prev))
	pos := 0
	for _, it := range prev {
		if _, ok := nextIds[it.Id]; ok {
			prevPos[it.Id] = pos
			pos++
		}
	}
	// Positions of survivors in the new view, with added ids skipped.
	nextPos := make(map[domain.ItemId]int, len(next))
	pos = 0
	for _, it := range next {
		if _, ok := prevById[it.Id]; ok {
			nextPos[it.Id] = pos
			pos++
		}
	}

	for i, it := range next {
		old, existed := prevById[it.Id]
		if !existed {
			item := it
			ops = append(ops, Op{Kind: OpAdd, Id: it.Id, Index: i, Item: &item})
			continue
		}
		if voteStateChanged(old, it, viewer) {
			ops = append(ops, Op{
				Kind: OpUpdate,
				Id:   it.Id,
				Vote: &domain.VoteState{Votes: it.Votes, UserVote: it.Voters[viewer]},
			})
		}
		if prevPos[it.Id] != nextPos[it.Id] {
			ops = append(ops, Op{Kind: OpMove, Id: it.Id, Index: i})
		}
	}
	return ops
}

func voteStateChanged(old, cur domain.Item, viewer domain.UserId) bool {
	return old.Votes != cur.Votes || old.Voters[viewer] != cur.Voters[viewer]
}

// Moves is the position-delta calculator behind slide animations: for every
// id present in both orders it reports oldIndex-newIndex. Ids that did not
// move are omitted. Purely presentational; callers may ignore it entirely.
func Moves(prev, next []domain.ItemId) map[domain.ItemId]int {
	prevPos := make(map[domain.ItemId]int, len(prev))
	for i, id := range prev {
		prevPos[id] = i
	}
	deltas := make(map[domain.ItemId]int)
	for i, id := range next {
		if old, ok := prevPos[id]; ok && old != i {
			deltas[id] = old - i
		}
	}
	return deltas
}
