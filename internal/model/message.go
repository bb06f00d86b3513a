package model

import "time"

// DeleteWindow is how long after creation either party may delete a message.
const DeleteWindow = 10 * time.Minute

// Message is a direct message between two users, optionally carrying an
// uploaded attachment referenced by URL.
type Message struct {
	ID         int       `json:"id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	FileURL    *string   `json:"file_url,omitempty"`
}

// MessageRow decorates a message with the sender's display name.
type MessageRow struct {
	ID         int       `json:"id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	SenderName string    `json:"sender_name"`
	FileURL    *string   `json:"file_url,omitempty"`
}
