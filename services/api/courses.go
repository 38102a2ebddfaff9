package apisvc

import (
	"context"
	"net/http"

	"github.com/trezcool/edulearn/core/course"
	"github.com/trezcool/edulearn/core/user"
)

type Courses struct {
	c *Client
}

func (r *Courses) List(ctx context.Context) ([]course.Course, error) {
	var res []course.Course
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("courses"), public: true, result: &res})
	return res, err
}

func (r *Courses) Get(ctx context.Context, id string) (course.Course, error) {
	var res course.Course
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("courses", id), public: true, result: &res})
	return res, err
}

// Create creates a course owned by the current instructor and returns its id.
func (r *Courses) Create(ctx context.Context, nc course.NewCourse) (string, error) {
	var res course.Course
	err := r.c.do(ctx, request{method: http.MethodPost, path: endpoint("courses"), body: nc, result: &res})
	return res.ID, err
}

// Mine lists the courses of the current user.
func (r *Courses) Mine(ctx context.Context) ([]course.Course, error) {
	var res []course.Course
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("courses", "user"), result: &res})
	return res, err
}

type Users struct {
	c *Client
}

func (r *Users) Me(ctx context.Context) (user.User, error) {
	var res user.User
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("users", "me"), result: &res})
	return res, err
}

func (r *Users) Notifications(ctx context.Context) ([]user.Notification, error) {
	var res []user.Notification
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("users", "notifications"), result: &res})
	return res, err
}
