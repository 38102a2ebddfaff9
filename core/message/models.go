package message

import "github.com/trezcool/edulearn/core"

const (
	SenderSelf      = "user"
	SenderRecipient = "recipient"
)

type Conversation struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Avatar          string `json:"avatar,omitempty"`
	Status          string `json:"status,omitempty"`
	Unread          int    `json:"unread"`
	LastMessageTime string `json:"lastMessageTime"` // relative, e.g. "5m ago"
	LastMessage     string `json:"lastMessage"`
	ParticipantID   string `json:"participantId"`
	ParticipantRole string `json:"participantRole"`
}

type Message struct {
	ID       string `json:"id"`
	Sender   string `json:"sender"` // SenderSelf | SenderRecipient
	SenderID string `json:"senderId"`
	Text     string `json:"text"`
	Time     string `json:"time"`
	Date     string `json:"date"`
	IsRead   bool   `json:"isRead"`
}

func (m Message) Mine() bool {
	return m.Sender == SenderSelf
}

type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Status string `json:"status,omitempty"`
	Role   string `json:"role"`
	Email  string `json:"email,omitempty"`
}

// Thread is the content of one conversation.
type Thread struct {
	Messages    []Message   `json:"messages"`
	Participant Participant `json:"participant"`
}

type NewMessage struct {
	ConversationID string `json:"conversationId" validate:"required"`
	Text           string `json:"text" validate:"required,notblank"`
}

func (nm *NewMessage) Clean() {
	nm.Text = core.CleanString(nm.Text)
}

type NewConversation struct {
	RecipientID string `json:"recipientId" validate:"required"`
}

// Created is the response to a conversation creation.
type Created struct {
	ConversationID string      `json:"conversationId"`
	Participant    Participant `json:"participant"`
}
