package apisvc

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/edulearn/core/user"
)

var errNothingToUpdate = errors.New("no valid fields to update")

type Admin struct {
	c *Client
}

func (r *Admin) ListUsers(ctx context.Context, qf user.QueryFilter) (user.Page, error) {
	qf.Clean()
	if err := r.c.validator.Struct(qf); err != nil {
		return user.Page{}, err
	}
	q := url.Values{}
	if qf.Page > 0 {
		q.Set("page", strconv.Itoa(qf.Page))
	}
	if qf.Limit > 0 {
		q.Set("limit", strconv.Itoa(qf.Limit))
	}
	if qf.Role != "" {
		q.Set("role", qf.Role)
	}
	if qf.Search != "" {
		q.Set("search", qf.Search)
	}

	var res user.Page
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("admin", "users"), query: q, result: &res})
	return res, err
}

func (r *Admin) GetUser(ctx context.Context, id string) (user.User, error) {
	var res user.User
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("admin", "users", id), result: &res})
	return res, err
}

func (r *Admin) UpdateUser(ctx context.Context, id string, uu user.UpdateUser) (Message, error) {
	uu.Clean()
	if uu.IsEmpty() {
		return Message{}, errNothingToUpdate
	}
	var res Message
	err := r.c.do(ctx, request{method: http.MethodPut, path: endpoint("admin", "users", id), body: uu, result: &res})
	return res, err
}

// DeleteUser deactivates the user.
func (r *Admin) DeleteUser(ctx context.Context, id string) (Message, error) {
	var res Message
	err := r.c.do(ctx, request{method: http.MethodDelete, path: endpoint("admin", "users", id), result: &res})
	return res, err
}

func (r *Admin) Stats(ctx context.Context) (user.Stats, error) {
	var res user.Stats
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("admin", "stats"), result: &res})
	return res, err
}
