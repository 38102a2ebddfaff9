package apisvc

import (
	"context"
	"net/http"

	"github.com/trezcool/edulearn/core/certificate"
	"github.com/trezcool/edulearn/core/course"
)

type Certificates struct {
	c *Client
}

var _ certificate.API = (*Certificates)(nil)

func (r *Certificates) Generate(ctx context.Context, courseID string) (certificate.Generated, error) {
	var res certificate.Generated
	err := r.c.do(ctx, request{
		method: http.MethodPost,
		path:   endpoint("certificates", "generate"),
		body:   certificate.GenerateRequest{CourseID: courseID},
		result: &res,
	})
	return res, err
}

func (r *Certificates) ListForUser(ctx context.Context, userID string) ([]certificate.Certificate, error) {
	var res []certificate.Certificate
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("certificates", "user", userID), result: &res})
	return res, err
}

func (r *Certificates) Get(ctx context.Context, id string) (certificate.Certificate, error) {
	var res certificate.Certificate
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("certificates", id), public: true, result: &res})
	return res, err
}

// DownloadPDF returns the PDF document of the certificate record `id`.
func (r *Certificates) DownloadPDF(ctx context.Context, id string) ([]byte, error) {
	return r.c.raw(ctx, request{method: http.MethodGet, path: endpoint("certificates", id, "pdf")})
}

func (r *Certificates) Verify(ctx context.Context, req certificate.VerifyRequest) (certificate.VerifyResult, error) {
	var res certificate.VerifyResult
	err := r.c.do(ctx, request{
		method: http.MethodPost,
		path:   endpoint("certificates", "verify"),
		public: true,
		body:   req,
		result: &res,
	})
	return res, err
}

func (r *Certificates) CheckEligibility(ctx context.Context, courseID string) (course.Eligibility, error) {
	var res course.Eligibility
	err := r.c.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("certificates", "check-eligibility", courseID),
		result: &res,
	})
	return res, err
}
