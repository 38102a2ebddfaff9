package apisvc

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/message"
)

var errEmptySearch = errors.New("search query is required")

type Messages struct {
	c *Client
}

func (r *Messages) Conversations(ctx context.Context) ([]message.Conversation, error) {
	var res struct {
		Conversations []message.Conversation `json:"conversations"`
	}
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("messages", "conversations"), result: &res})
	return res.Conversations, err
}

// Conversation returns the messages of a conversation, marking them read.
func (r *Messages) Conversation(ctx context.Context, id string) (message.Thread, error) {
	var res message.Thread
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("messages", "conversation", id), result: &res})
	return res, err
}

func (r *Messages) Send(ctx context.Context, nm message.NewMessage) (message.Message, error) {
	nm.Clean()
	var res struct {
		Data message.Message `json:"data"`
	}
	err := r.c.do(ctx, request{method: http.MethodPost, path: endpoint("messages", "send"), body: nm, result: &res})
	return res.Data, err
}

// CreateConversation opens, or reuses, the conversation with the recipient.
func (r *Messages) CreateConversation(ctx context.Context, recipientID string) (message.Created, error) {
	var res message.Created
	err := r.c.do(ctx, request{
		method: http.MethodPost,
		path:   endpoint("messages", "conversation", "create"),
		body:   message.NewConversation{RecipientID: recipientID},
		result: &res,
	})
	return res, err
}

func (r *Messages) UnreadCount(ctx context.Context) (int, error) {
	var res struct {
		UnreadCount int `json:"unreadCount"`
	}
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("messages", "unread-count"), result: &res})
	return res.UnreadCount, err
}

func (r *Messages) SearchUsers(ctx context.Context, query string) ([]message.Participant, error) {
	query = core.CleanString(query)
	if query == "" {
		return nil, core.NewValidationError(errEmptySearch, core.FieldError{Field: "q", Error: errEmptySearch.Error()})
	}
	var res struct {
		Users []message.Participant `json:"users"`
	}
	err := r.c.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("messages", "users", "search"),
		query:  url.Values{"q": {query}},
		result: &res,
	})
	return res.Users, err
}
