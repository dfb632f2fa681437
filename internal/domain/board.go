package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Title       BoardTitle
	Description string
	OwnerId     UserId
}

type BoardUpdateData struct {
	Title       BoardTitle
	Description string
}

type Board struct {
	Id          BoardId
	Title       BoardTitle
	Description string
	OwnerId     UserId
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
