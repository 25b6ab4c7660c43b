package model

import "time"

// Summary is the display ready form of a resolved issue. It is created per message
// and has no identity of its own.
type Summary struct {
	AuthorName string
	AuthorIcon string
	Title      string
	URL        string
	Color      string
	Body       string
	Timestamp  time.Time
	Footer     string
}
