package domain

import "time"

// Column is one of the three fixed board columns.
type Column = string

const (
	ColumnWentWell    Column = "went-well"
	ColumnToImprove   Column = "to-improve"
	ColumnActionItems Column = "action-items"
)

// Columns lists the fixed columns in display order.
var Columns = []Column{ColumnWentWell, ColumnToImprove, ColumnActionItems}

func ValidColumn(c Column) bool {
	switch c {
	case ColumnWentWell, ColumnToImprove, ColumnActionItems:
		return true
	}
	return false
}

type ItemCreationData struct {
	BoardId     BoardId
	Content     ItemContent
	Column      Column
	AuthorId    UserId
	AuthorEmail Email
	IsAnonymous bool
}

type Item struct {
	Id          ItemId
	BoardId     BoardId
	Content     ItemContent
	Column      Column
	AuthorId    UserId
	AuthorEmail Email
	IsAnonymous bool
	Votes       int
	Voters      Voters
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VoteState is what a single vote operation returns: the new aggregate
// score and the acting user's resulting vote value.
type VoteState struct {
	Votes    int
	UserVote VoteValue
}
