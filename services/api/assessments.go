package apisvc

import (
	"context"
	"net/http"

	"github.com/trezcool/edulearn/core/course"
)

type Assessments struct {
	c *Client
}

func (r *Assessments) ListForCourse(ctx context.Context, courseID string) ([]course.Assessment, error) {
	var res []course.Assessment
	err := r.c.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("assessments", "course", courseID),
		public: true,
		result: &res,
	})
	return res, err
}

func (r *Assessments) ListForModule(ctx context.Context, courseID, moduleID string) ([]course.Assessment, error) {
	var res []course.Assessment
	err := r.c.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("assessments", "module", courseID, moduleID),
		public: true,
		result: &res,
	})
	return res, err
}

func (r *Assessments) Get(ctx context.Context, id string) (course.Assessment, error) {
	var res course.Assessment
	err := r.c.do(ctx, request{method: http.MethodGet, path: endpoint("assessments", id), public: true, result: &res})
	return res, err
}

// Create creates an assessment and returns its id.
func (r *Assessments) Create(ctx context.Context, na course.NewAssessment) (string, error) {
	var res Message
	err := r.c.do(ctx, request{method: http.MethodPost, path: endpoint("assessments") + "/", body: na, result: &res})
	return res.ID, err
}

func (r *Assessments) Update(ctx context.Context, id string, na course.NewAssessment) (Message, error) {
	var res Message
	err := r.c.do(ctx, request{method: http.MethodPut, path: endpoint("assessments", id), body: na, result: &res})
	return res, err
}

func (r *Assessments) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, request{method: http.MethodDelete, path: endpoint("assessments", id)})
}

type TestResults struct {
	c *Client
}

func (r *TestResults) Submit(ctx context.Context, sub course.Submission) (course.TestResult, error) {
	var res course.TestResult
	err := r.c.do(ctx, request{method: http.MethodPost, path: endpoint("test-results", "submit"), body: sub, result: &res})
	if err == nil && res.AssessmentID == "" {
		res.AssessmentID = sub.AssessmentID
	}
	return res, err
}

func (r *TestResults) ForUserCourse(ctx context.Context, userID, courseID string) ([]course.TestResult, error) {
	var res []course.TestResult
	err := r.c.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("test-results", "user", userID, "course", courseID),
		result: &res,
	})
	return res, err
}

func (r *TestResults) ForAssessment(ctx context.Context, assessmentID string) ([]course.TestResult, error) {
	var res []course.TestResult
	err := r.c.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("test-results", "assessment", assessmentID),
		result: &res,
	})
	return res, err
}

func (r *TestResults) BestScore(ctx context.Context, assessmentID string) (course.TestResult, error) {
	var res course.TestResult
	err := r.c.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("test-results", "best-score", assessmentID),
		result: &res,
	})
	return res, err
}

func (r *TestResults) CourseSummary(ctx context.Context, courseID string) (course.CourseSummary, error) {
	var res course.CourseSummary
	err := r.c.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("test-results", "course-summary", courseID),
		result: &res,
	})
	return res, err
}

func (r *TestResults) CheckEligibility(ctx context.Context, courseID string) (course.Eligibility, error) {
	var res course.Eligibility
	err := r.c.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("test-results", "check-eligibility", courseID),
		result: &res,
	})
	return res, err
}

// GradeAssignment grades an assignment submission; the backend answers with the new score and pass state.
func (r *TestResults) GradeAssignment(ctx context.Context, resultID string, g course.Grade) (course.TestResult, error) {
	var res course.TestResult
	err := r.c.do(ctx, request{
		method: http.MethodPut,
		path:   endpoint("test-results", "grade-assignment", resultID),
		body:   g,
		result: &res,
	})
	if err == nil && res.ID == "" {
		res.ID = resultID
	}
	return res, err
}
