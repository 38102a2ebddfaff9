package apisvc

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/trezcool/edulearn/core/user"
)

var errUnknownRole = errors.New("unknown role")

type Auth struct {
	c *Client
}

// Signup creates an account for nu.Role and returns the session token and user.
func (a *Auth) Signup(ctx context.Context, nu user.NewUser) (user.AuthResponse, error) {
	nu.Clean()
	if !user.ValidRole(nu.Role) {
		if err := a.c.validator.Struct(nu); err != nil {
			return user.AuthResponse{}, err
		}
		return user.AuthResponse{}, errUnknownRole
	}
	var res user.AuthResponse
	err := a.c.do(ctx, request{
		method: http.MethodPost,
		path:   endpoint("auth", nu.Role, "signup"),
		public: true,
		body:   nu,
		result: &res,
	})
	return res, err
}

func (a *Auth) StudentSignup(ctx context.Context, nu user.NewUser) (user.AuthResponse, error) {
	nu.Role = user.RoleStudent
	return a.Signup(ctx, nu)
}

func (a *Auth) TeacherSignup(ctx context.Context, nu user.NewUser) (user.AuthResponse, error) {
	nu.Role = user.RoleTeacher
	return a.Signup(ctx, nu)
}

func (a *Auth) AdminSignup(ctx context.Context, nu user.NewUser) (user.AuthResponse, error) {
	nu.Role = user.RoleAdmin
	return a.Signup(ctx, nu)
}

func (a *Auth) Login(ctx context.Context, creds user.Credentials) (user.AuthResponse, error) {
	creds.Clean()
	var res user.AuthResponse
	err := a.c.do(ctx, request{
		method: http.MethodPost,
		path:   endpoint("auth", "login"),
		public: true,
		body:   creds,
		result: &res,
	})
	return res, err
}
