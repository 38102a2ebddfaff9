// Package apisvc is the EduLearn REST API client.
package apisvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/user"
)

const headerRequestID = "X-Request-ID"

// TokenSource provides the bearer token of the current session.
type TokenSource interface {
	Token() string
}

// Client groups the API resources. Each resource maps its calls to HTTP requests.
type Client struct {
	http      *resty.Client
	tokens    TokenSource
	validator *core.Validator

	Auth         *Auth
	Courses      *Courses
	Users        *Users
	Assessments  *Assessments
	TestResults  *TestResults
	Certificates *Certificates
	Admin        *Admin
	Messages     *Messages
}

func New(conf *core.Config, tokens TokenSource) *Client {
	httpc := resty.New().
		SetBaseURL(conf.API.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", conf.AppName+"/"+conf.Build).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			r.SetHeader(headerRequestID, uuid.NewString())
			return nil
		})
	if conf.API.Timeout > 0 {
		httpc.SetTimeout(conf.API.Timeout)
	}

	v := core.NewValidator()
	user.RegisterValidators(v)

	c := &Client{http: httpc, tokens: tokens, validator: v}
	c.Auth = &Auth{c}
	c.Courses = &Courses{c}
	c.Users = &Users{c}
	c.Assessments = &Assessments{c}
	c.TestResults = &TestResults{c}
	c.Certificates = &Certificates{c}
	c.Admin = &Admin{c}
	c.Messages = &Messages{c}
	return c
}

// request describes one API call.
type request struct {
	method string
	path   string
	public bool // no bearer token
	query  url.Values
	body   interface{}
	result interface{}
}

func (c *Client) newRequest(ctx context.Context, rq request) (*resty.Request, error) {
	r := c.http.R().SetContext(ctx)
	if !rq.public {
		token := ""
		if c.tokens != nil {
			token = c.tokens.Token()
		}
		if token == "" {
			return nil, core.ErrAuthMissing
		}
		r.SetAuthToken(token)
	}
	if len(rq.query) > 0 {
		r.SetQueryParamsFromValues(rq.query)
	}
	if rq.body != nil {
		if err := c.validator.Struct(rq.body); err != nil {
			return nil, err
		}
		r.SetBody(rq.body)
	}
	return r, nil
}

// do sends a JSON request and decodes a successful JSON response into rq.result.
func (c *Client) do(ctx context.Context, rq request) error {
	r, err := c.newRequest(ctx, rq)
	if err != nil {
		return err
	}
	if rq.result != nil {
		r.SetResult(rq.result).ForceContentType("application/json")
	}
	resp, err := r.Execute(rq.method, rq.path)
	if err != nil {
		return errors.Wrapf(err, "%s %s", rq.method, rq.path)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

// raw sends a request and returns the undecoded response body.
func (c *Client) raw(ctx context.Context, rq request) ([]byte, error) {
	r, err := c.newRequest(ctx, rq)
	if err != nil {
		return nil, err
	}
	resp, err := r.Execute(rq.method, rq.path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", rq.method, rq.path)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return resp.Body(), nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Msg     string `json:"msg"` // jwt errors
}

func newAPIError(resp *resty.Response) error {
	var body errorBody
	_ = json.Unmarshal(resp.Body(), &body)
	msg := body.Message
	if msg == "" {
		msg = core.DefaultString(body.Msg, body.Error)
	}
	if msg == "" && resp.StatusCode() == http.StatusUnauthorized {
		msg = core.ErrAuthMissing.Error()
	}
	return core.NewAPIError(resp.StatusCode(), msg)
}

// endpoint joins escaped path segments.
func endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return "/" + strings.Join(escaped, "/")
}

// Message is the generic `{message}` acknowledgement of the backend.
type Message struct {
	ID      string `json:"_id,omitempty"`
	Message string `json:"message"`
}
