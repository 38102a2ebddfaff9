package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/attempt"
	"github.com/trezcool/edulearn/core/certificate"
	"github.com/trezcool/edulearn/core/course"
	"github.com/trezcool/edulearn/core/user"
)

var (
	ErrNoCourse          = errors.New("no course ID provided")
	ErrUnknownAssessment = errors.New("assessment not found in this course")
	ErrLocked            = errors.New("complete all lessons to unlock")
)

type (
	CourseFetcher interface {
		Get(ctx context.Context, id string) (course.Course, error)
	}

	AssessmentSource interface {
		ListForCourse(ctx context.Context, courseID string) ([]course.Assessment, error)
		Get(ctx context.Context, id string) (course.Assessment, error)
	}

	ResultSource interface {
		ForUserCourse(ctx context.Context, userID, courseID string) ([]course.TestResult, error)
		Submit(ctx context.Context, sub course.Submission) (course.TestResult, error)
	}

	Session interface {
		Token() string
		UserID() string
		User() (user.User, bool)
	}
)

// Deps are the collaborators of a Controller.
type Deps struct {
	Courses      CourseFetcher
	Assessments  AssessmentSource
	Results      ResultSource
	Session      Session
	Certificates *certificate.Flow
	Confirmer    attempt.Confirmer
	Notifier     core.Notifier
	Logger       core.Logger
}

// page is the state of the loaded course.
type page struct {
	course      course.Course
	assessments []course.Assessment
	results     []course.TestResult
	summary     course.Summary
	eligible    bool
}

// Controller owns the course page state and the assessment runtime.
type Controller struct {
	deps    Deps
	view    View
	runtime *attempt.Runtime

	mu   sync.Mutex
	page *page
}

var _ attempt.Listener = (*Controller)(nil)

func New(deps Deps, view View) *Controller {
	c := &Controller{deps: deps, view: view}
	c.runtime = attempt.NewRuntime(deps.Assessments, deps.Results, deps.Confirmer, c)
	return c
}

// Runtime exposes the attempt state machine.
func (c *Controller) Runtime() *attempt.Runtime {
	return c.runtime
}

// Summary returns the progress of the loaded course.
func (c *Controller) Summary() (course.Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page == nil {
		return course.Summary{}, false
	}
	return c.page.summary, true
}

// LoadCourse fetches the course, its assessments and the user results, then renders the page.
func (c *Controller) LoadCourse(ctx context.Context, courseID string) error {
	if courseID == "" {
		c.toastError("No course ID provided")
		return ErrNoCourse
	}
	userID := c.deps.Session.UserID()
	if c.deps.Session.Token() == "" || userID == "" {
		c.toastError("Please login to continue")
		return core.ErrAuthMissing
	}

	c.deps.Notifier.Loading(true)
	defer c.deps.Notifier.Loading(false)

	p, err := c.fetch(ctx, courseID, userID)
	if err != nil {
		c.fail("Failed to load course", err)
		return err
	}

	c.mu.Lock()
	c.page = p
	c.mu.Unlock()

	c.view.Header(newHeader(p.course))
	c.render()

	el := c.deps.Certificates.CheckEligibility(ctx, courseID)
	if el.Eligible {
		c.mu.Lock()
		if c.page == p {
			p.eligible = true
		}
		c.mu.Unlock()
		c.renderCertificate(false)
	}
	return nil
}

func (c *Controller) fetch(ctx context.Context, courseID, userID string) (*page, error) {
	crs, err := c.deps.Courses.Get(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "loading course")
	}
	assessments, err := c.deps.Assessments.ListForCourse(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "loading assessments")
	}
	results, err := c.deps.Results.ForUserCourse(ctx, userID, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "loading results")
	}
	return &page{course: crs, assessments: assessments, results: results}, nil
}

// render recomputes the summary and replaces the curriculum.
func (c *Controller) render() {
	c.mu.Lock()
	p := c.page
	if p == nil {
		c.mu.Unlock()
		return
	}
	p.summary = course.Summarize(p.course, p.assessments, p.results)
	summary := p.summary
	c.mu.Unlock()

	c.view.Curriculum(summary)
	c.renderCertificate(false)
}

func (c *Controller) renderCertificate(busy bool) {
	c.mu.Lock()
	p := c.page
	if p == nil {
		c.mu.Unlock()
		return
	}
	done := p.summary.AllCompleted()
	n := CertificateNotice{
		CourseID:   p.course.ID,
		Available:  done,
		ShowButton: done || p.eligible,
		Busy:       busy,
	}
	c.mu.Unlock()
	c.view.Certificate(n)
}

// PlayLesson makes the lesson active and marks it completed. Unknown ids are ignored.
func (c *Controller) PlayLesson(moduleID, lessonID string) (course.Lesson, bool) {
	c.mu.Lock()
	if c.page == nil {
		c.mu.Unlock()
		return course.Lesson{}, false
	}
	lesson, _, found := course.MarkLessonPlayed(&c.page.course, moduleID, lessonID)
	c.mu.Unlock()
	if !found {
		return course.Lesson{}, false
	}

	c.view.Lesson(lesson)
	c.render()
	return lesson, true
}

// StartAssessment opens an unlocked assessment of the loaded course.
func (c *Controller) StartAssessment(ctx context.Context, assessmentID string) error {
	c.mu.Lock()
	if c.page == nil {
		c.mu.Unlock()
		return ErrNoCourse
	}
	ap, ok := c.page.summary.Assessment(assessmentID)
	c.mu.Unlock()
	if !ok {
		return ErrUnknownAssessment
	}
	if ap.Locked {
		return ErrLocked
	}

	a, err := c.runtime.Start(ctx, assessmentID, ap.Assessment.Type)
	if err != nil {
		c.fail("Failed to load assessment", err)
		return err
	}

	kind := ap.Assessment.Type
	if kind == "" {
		kind = a.Type
	}
	if kind == course.TypeAssignment {
		c.view.Assignment(a)
		return nil
	}
	_, timed := c.runtime.Remaining()
	c.view.Quiz(a, timed)
	if timed {
		remaining, _ := c.runtime.Remaining()
		c.view.Timer(remaining)
	}
	return c.showQuestion(c.runtime.Question())
}

func (c *Controller) showQuestion(qv attempt.QuestionView, err error) error {
	if err != nil {
		return err
	}
	c.view.Question(qv)
	return nil
}

// SelectOption records option `opt` for question `i`.
func (c *Controller) SelectOption(i, opt int) error {
	return c.showQuestion(c.runtime.Select(i, opt))
}

func (c *Controller) GoToQuestion(i int) error {
	return c.showQuestion(c.runtime.GoTo(i))
}

func (c *Controller) PreviousQuestion() error {
	qv, err := c.runtime.Question()
	if err != nil || qv.IsFirst {
		return err
	}
	return c.showQuestion(c.runtime.Previous())
}

// NextQuestion moves forward, or submits the quiz from the last question.
func (c *Controller) NextQuestion(ctx context.Context) error {
	qv, err := c.runtime.Question()
	if err != nil {
		return err
	}
	if qv.IsLast {
		_, err = c.SubmitQuiz(ctx)
		return err
	}
	return c.showQuestion(c.runtime.Next())
}

func (c *Controller) SubmitQuiz(ctx context.Context) (attempt.ResultView, error) {
	res, err := c.runtime.SubmitQuiz(ctx)
	if err != nil {
		if errors.Cause(err) != attempt.ErrSubmitCancelled {
			c.fail("Failed to submit test", err)
		}
		return res, err
	}
	c.view.Result(res)
	return res, nil
}

// SubmitAssignment submits the assignment answer, then closes it and reloads the course.
func (c *Controller) SubmitAssignment(ctx context.Context, text string) error {
	if _, err := c.runtime.SubmitAssignment(ctx, text); err != nil {
		if core.IsValidation(err) {
			c.toastError("Please write your answer before submitting")
		} else {
			c.fail("Failed to submit assignment", err)
		}
		return err
	}
	c.runtime.Close()
	c.view.CloseAssessment()
	c.deps.Notifier.Toast(core.ToastSuccess, "Assignment submitted successfully! Waiting for instructor to grade.")
	return c.reload(ctx)
}

// CloseAssessment ends the attempt. The course is reloaded when it was passed.
func (c *Controller) CloseAssessment(ctx context.Context) error {
	passed := c.runtime.Close()
	c.view.CloseAssessment()
	if !passed {
		return nil
	}
	err := c.reload(ctx)
	c.deps.Notifier.Toast(core.ToastSuccess, "Assessment passed! Next module unlocked.")
	return err
}

func (c *Controller) reload(ctx context.Context) error {
	c.mu.Lock()
	var courseID string
	if c.page != nil {
		courseID = c.page.course.ID
	}
	c.mu.Unlock()
	return c.LoadCourse(ctx, courseID)
}

// GenerateCertificate generates the certificate of the loaded course and saves its PDF.
// It returns the path of the saved file.
func (c *Controller) GenerateCertificate(ctx context.Context) (string, error) {
	c.mu.Lock()
	var courseID string
	if c.page != nil {
		courseID = c.page.course.ID
	}
	c.mu.Unlock()
	if courseID == "" {
		return "", ErrNoCourse
	}

	c.renderCertificate(true)
	defer c.renderCertificate(false)

	_, path, err := c.deps.Certificates.Generate(ctx, courseID)
	if err != nil {
		if err != certificate.ErrBusy {
			c.fail("Failed to generate certificate", err)
		}
		return "", err
	}
	c.deps.Notifier.Toast(core.ToastSuccess, "Certificate generated successfully!")
	return path, nil
}

// TimerTick implements attempt.Listener.
func (c *Controller) TimerTick(remaining int) {
	c.view.Timer(remaining)
}

func (c *Controller) TimeUp() {
	c.view.Alert("Time is up! Submitting your test...")
}

func (c *Controller) AutoSubmitted(res attempt.ResultView) {
	c.view.Result(res)
}

func (c *Controller) AutoSubmitFailed(err error) {
	c.fail("Failed to submit test", err)
}

func (c *Controller) toastError(msg string) {
	c.deps.Notifier.Toast(core.ToastError, msg)
}

// fail reports err to the user with `prefix` and logs it.
func (c *Controller) fail(prefix string, err error) {
	c.toastError(prefix + ": " + errors.Cause(err).Error())
	args := []interface{}{err}
	if usr, ok := c.deps.Session.User(); ok {
		args = append(args, usr)
	}
	c.deps.Logger.Error(fmt.Sprintf("%s: %v", prefix, err), args...)
}
