package domain

// Message is an inbound chat message as seen by the scoring pipeline.
// AuthorID is the numeric chat-platform identity of the sender.
type Message struct {
	Text         string
	AuthorID     int64
	MentionCount int
}
