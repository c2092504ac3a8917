package domain

import "time"

// Comment is one entry in a stream's engagement feed, synthetic or
// user-submitted. Append-only for the lifetime of a stream mount.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"user"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Avatar    string    `json:"avatar"`
}
