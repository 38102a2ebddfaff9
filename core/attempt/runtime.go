package attempt

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/course"
)

type State int

const (
	Idle State = iota
	Loading
	InProgress
	Submitting
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case InProgress:
		return "in progress"
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrNoAttempt       = errors.New("no assessment in progress")
	ErrNotInProgress   = errors.New("assessment is not in progress")
	ErrWrongType       = errors.New("operation not available for this assessment type")
	ErrOutOfRange      = errors.New("question index out of range")
	ErrSubmitCancelled = errors.New("submission cancelled")
	errEmptyAssignment = errors.New("please write your answer before submitting")
	errNoQuestions     = errors.New("assessment has no questions")
	nowFunc            = time.Now // mockable
)

type (
	AssessmentFetcher interface {
		Get(ctx context.Context, id string) (course.Assessment, error)
	}

	TestSubmitter interface {
		Submit(ctx context.Context, sub course.Submission) (course.TestResult, error)
	}

	// Confirmer asks the user a yes/no question.
	Confirmer interface {
		Confirm(msg string) bool
	}

	// Listener is notified of countdown driven changes.
	// Its methods run on the countdown goroutine and must not block on the Runtime.
	Listener interface {
		TimerTick(remaining int)
		TimeUp()
		AutoSubmitted(res ResultView)
		AutoSubmitFailed(err error)
	}
)

// attempt is the transient state of one pass through an assessment.
type attempt struct {
	id         string
	assessment course.Assessment
	kind       course.AssessmentType
	index      int
	answers    []null.Int // index-aligned with questions
	startedAt  time.Time
	timer      *countdown
	result     *ResultView
}

// Runtime drives a single assessment attempt at a time.
type Runtime struct {
	fetcher   AssessmentFetcher
	submitter TestSubmitter
	confirmer Confirmer
	listener  Listener

	mu      sync.Mutex
	state   State
	current *attempt
}

func NewRuntime(fetcher AssessmentFetcher, submitter TestSubmitter, confirmer Confirmer, listener Listener) *Runtime {
	return &Runtime{
		fetcher:   fetcher,
		submitter: submitter,
		confirmer: confirmer,
		listener:  listener,
	}
}

func (rt *Runtime) State() State {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.state
}

// Start fetches the assessment and begins a new attempt, replacing any previous one.
// An empty kind falls back to the fetched assessment type.
func (rt *Runtime) Start(ctx context.Context, assessmentID string, kind course.AssessmentType) (course.Assessment, error) {
	rt.mu.Lock()
	rt.teardown()
	rt.state = Loading
	rt.mu.Unlock()

	a, err := rt.fetcher.Get(ctx, assessmentID)

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.state != Loading { // closed while loading
		return course.Assessment{}, ErrNoAttempt
	}
	if err != nil {
		rt.state = Idle
		return course.Assessment{}, errors.Wrap(err, "loading assessment")
	}
	if kind == "" {
		kind = a.Type
	}
	if kind == course.TypeQuiz && len(a.Questions) == 0 {
		rt.state = Idle
		return course.Assessment{}, errNoQuestions
	}

	at := &attempt{
		id:         uuid.NewString(),
		assessment: a,
		kind:       kind,
		startedAt:  nowFunc(),
	}
	if kind == course.TypeQuiz {
		at.answers = make([]null.Int, len(a.Questions))
		if a.TimeLimit.Valid && a.TimeLimit.Int > 0 {
			at.timer = rt.startTimer(at, a.TimeLimit.Int*60)
		}
	}
	rt.current = at
	rt.state = InProgress
	return a, nil
}

func (rt *Runtime) startTimer(at *attempt, seconds int) *countdown {
	onTick := func(remaining int) {
		if rt.listener != nil {
			rt.listener.TimerTick(remaining)
		}
	}
	onExpire := func() {
		rt.mu.Lock()
		live := rt.current == at && rt.state == InProgress
		rt.mu.Unlock()
		if !live { // closed or replaced before expiry
			return
		}
		if rt.listener != nil {
			rt.listener.TimeUp()
		}
		res, err := rt.submitQuiz(context.Background(), at.id, true /* forced */)
		if cause := errors.Cause(err); rt.listener == nil || cause == ErrNotInProgress || cause == ErrNoAttempt {
			return
		}
		if err != nil {
			rt.listener.AutoSubmitFailed(err)
			return
		}
		rt.listener.AutoSubmitted(res)
	}
	return startCountdown(seconds, onTick, onExpire)
}

// teardown cancels the countdown and drops the attempt. Callers hold rt.mu.
func (rt *Runtime) teardown() {
	if rt.current != nil && rt.current.timer != nil {
		rt.current.timer.Stop()
	}
	rt.current = nil
	rt.state = Idle
}

func (rt *Runtime) quiz() (*attempt, error) {
	if rt.current == nil {
		return nil, ErrNoAttempt
	}
	if rt.state != InProgress {
		return nil, ErrNotInProgress
	}
	if rt.current.kind != course.TypeQuiz {
		return nil, ErrWrongType
	}
	return rt.current, nil
}

// Question returns the view of the current question.
func (rt *Runtime) Question() (QuestionView, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	at, err := rt.quiz()
	if err != nil {
		return QuestionView{}, err
	}
	return at.questionView(), nil
}

// GoTo moves to question i, 0 <= i < question count.
func (rt *Runtime) GoTo(i int) (QuestionView, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	at, err := rt.quiz()
	if err != nil {
		return QuestionView{}, err
	}
	if i < 0 || i >= len(at.assessment.Questions) {
		return at.questionView(), ErrOutOfRange
	}
	at.index = i
	return at.questionView(), nil
}

func (rt *Runtime) Next() (QuestionView, error) {
	rt.mu.Lock()
	i := -1
	if rt.current != nil {
		i = rt.current.index + 1
	}
	rt.mu.Unlock()
	return rt.GoTo(i)
}

func (rt *Runtime) Previous() (QuestionView, error) {
	rt.mu.Lock()
	i := -1
	if rt.current != nil {
		i = rt.current.index - 1
	}
	rt.mu.Unlock()
	return rt.GoTo(i)
}

// Select records option `opt` for question `i` without advancing.
func (rt *Runtime) Select(i, opt int) (QuestionView, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	at, err := rt.quiz()
	if err != nil {
		return QuestionView{}, err
	}
	if i < 0 || i >= len(at.assessment.Questions) {
		return at.questionView(), ErrOutOfRange
	}
	if opt < 0 || opt >= len(at.assessment.Questions[i].Options) {
		return at.questionView(), ErrOutOfRange
	}
	at.answers[i] = null.IntFrom(opt)
	at.index = i
	return at.questionView(), nil
}

// Remaining returns the countdown seconds left, and false when the attempt is not timed.
func (rt *Runtime) Remaining() (int, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.current == nil || rt.current.timer == nil {
		return 0, false
	}
	return rt.current.timer.Remaining(), true
}

// SubmitQuiz submits the current answers, asking for confirmation when some are unset.
func (rt *Runtime) SubmitQuiz(ctx context.Context) (ResultView, error) {
	rt.mu.Lock()
	at, err := rt.quiz()
	if err != nil {
		rt.mu.Unlock()
		return ResultView{}, err
	}
	id := at.id
	unanswered := at.unanswered()
	rt.mu.Unlock()

	if unanswered > 0 && rt.confirmer != nil {
		msg := fmt.Sprintf("You have %d unanswered question(s). Submit anyway?", unanswered)
		if !rt.confirmer.Confirm(msg) {
			return ResultView{}, ErrSubmitCancelled
		}
	}
	return rt.submitQuiz(ctx, id, false)
}

func (rt *Runtime) submitQuiz(ctx context.Context, attemptID string, forced bool) (ResultView, error) {
	rt.mu.Lock()
	at, err := rt.quiz()
	if err == nil && at.id != attemptID { // replaced meanwhile
		err = ErrNotInProgress
	}
	if err != nil {
		rt.mu.Unlock()
		return ResultView{}, err
	}
	if at.timer != nil && !forced {
		at.timer.Stop()
	}
	rt.state = Submitting

	answers := make([]course.SubmittedAnswer, 0, len(at.assessment.Questions))
	for i, q := range at.assessment.Questions {
		answers = append(answers, course.SubmittedAnswer{QuestionID: q.ID, Answer: at.answers[i]})
	}
	sub := course.Submission{
		AssessmentID: at.assessment.ID,
		Answers:      answers,
		TimeSpent:    elapsedMinutes(at.startedAt),
	}
	rt.mu.Unlock()

	res, err := rt.submitter.Submit(ctx, sub)

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.current != at || rt.state != Submitting { // closed while submitting
		return ResultView{}, ErrNoAttempt
	}
	if err != nil {
		rt.state = InProgress
		return ResultView{}, errors.Wrap(err, "submitting test")
	}
	view := newResultView(at.assessment, res, sub.TimeSpent)
	at.result = &view
	rt.state = Completed
	return view, nil
}

// SubmitAssignment submits the free text answer of an assignment.
func (rt *Runtime) SubmitAssignment(ctx context.Context, text string) (course.TestResult, error) {
	text = strings.TrimSpace(text)

	rt.mu.Lock()
	at := rt.current
	switch {
	case at == nil:
		rt.mu.Unlock()
		return course.TestResult{}, ErrNoAttempt
	case rt.state != InProgress:
		rt.mu.Unlock()
		return course.TestResult{}, ErrNotInProgress
	case at.kind != course.TypeAssignment:
		rt.mu.Unlock()
		return course.TestResult{}, ErrWrongType
	case text == "":
		rt.mu.Unlock()
		return course.TestResult{}, core.NewValidationError(errEmptyAssignment, core.FieldError{Field: "answer", Error: errEmptyAssignment.Error()})
	}
	rt.state = Submitting
	sub := course.Submission{
		AssessmentID: at.assessment.ID,
		Answers:      []course.SubmittedAnswer{{QuestionID: course.AssignmentQuestionID, Answer: text}},
		TimeSpent:    elapsedMinutes(at.startedAt),
	}
	rt.mu.Unlock()

	res, err := rt.submitter.Submit(ctx, sub)

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.current != at || rt.state != Submitting {
		return course.TestResult{}, ErrNoAttempt
	}
	if err != nil {
		rt.state = InProgress
		return course.TestResult{}, errors.Wrap(err, "submitting assignment")
	}
	view := newResultView(at.assessment, res, sub.TimeSpent)
	at.result = &view
	rt.state = Completed
	return res, nil
}

// Close ends the attempt through any path and reports whether it was passed.
func (rt *Runtime) Close() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	passed := rt.current != nil && rt.current.result != nil && rt.current.result.Passed
	rt.teardown()
	return passed
}

func (at *attempt) unanswered() int {
	var n int
	for _, a := range at.answers {
		if !a.Valid {
			n++
		}
	}
	return n
}

func (at *attempt) questionView() QuestionView {
	q := at.assessment.Questions[at.index]
	return QuestionView{
		Index:    at.index,
		Total:    len(at.assessment.Questions),
		Question: q,
		Selected: at.answers[at.index],
		IsFirst:  at.index == 0,
		IsLast:   at.index == len(at.assessment.Questions)-1,
	}
}

func elapsedMinutes(start time.Time) int {
	return int(math.Round(float64(nowFunc().Sub(start).Milliseconds()) / 60000))
}
