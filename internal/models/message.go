// server/internal/models/message.go
package models

import "time"

// Message is one chat message between a farmer and a factory.
type Message struct {
	MessageID  string    `bson:"messageID" json:"id"`
	FactoryID  string    `bson:"factoryID" json:"factoryId"`
	Content    string    `bson:"content" json:"content"`
	IsFromUser bool      `bson:"isFromUser" json:"isFromUser"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// Conversation is one factory's chat thread summary for the inbox page.
type Conversation struct {
	Factory     Factory  `json:"factory"`
	LastMessage *Message `json:"lastMessage,omitempty"`
	UnreadCount int      `json:"unreadCount"`
}
