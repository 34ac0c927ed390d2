package domain

import "time"

// ActivityLog is the synthetic record written by the store benchmark.
type ActivityLog struct {
	ProjectID      int
	UserID         int
	ActionType     string
	DetailsPayload string
	Timestamp      time.Time
}

var ActivityActions = []string{"TaskCreated", "StatusUpdate", "FileUploaded", "CommentAdded"}
