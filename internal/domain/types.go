package domain

type (
	Email    = string
	Password = string
	UserId   = int64

	BoardId    = string
	BoardTitle = string

	ItemId      = string
	ItemContent = string

	// VoteValue is -1 or +1; a missing voter entry means 0.
	VoteValue = int
	Voters    = map[UserId]VoteValue
)
