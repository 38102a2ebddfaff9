package attempt

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/course"
)

type fakeBackend struct {
	assessment course.Assessment
	fetchErr   error
	result     course.TestResult
	submitErr  error

	mu          sync.Mutex
	submissions []course.Submission
}

func (b *fakeBackend) Get(_ context.Context, id string) (course.Assessment, error) {
	if b.fetchErr != nil {
		return course.Assessment{}, b.fetchErr
	}
	a := b.assessment
	a.ID = id
	return a, nil
}

func (b *fakeBackend) Submit(_ context.Context, sub course.Submission) (course.TestResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submissions = append(b.submissions, sub)
	if b.submitErr != nil {
		return course.TestResult{}, b.submitErr
	}
	res := b.result
	res.AssessmentID = sub.AssessmentID
	return res, nil
}

func (b *fakeBackend) submitted() []course.Submission {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]course.Submission(nil), b.submissions...)
}

type fakeConfirmer struct {
	answer   bool
	messages []string
}

func (c *fakeConfirmer) Confirm(msg string) bool {
	c.messages = append(c.messages, msg)
	return c.answer
}

type fakeListener struct {
	mu        sync.Mutex
	ticks     []int
	timeUp    int
	submitted chan ResultView
	failed    chan error
}

func newFakeListener() *fakeListener {
	return &fakeListener{submitted: make(chan ResultView, 2), failed: make(chan error, 2)}
}

func (l *fakeListener) TimerTick(r int) {
	l.mu.Lock()
	l.ticks = append(l.ticks, r)
	l.mu.Unlock()
}

func (l *fakeListener) TimeUp() {
	l.mu.Lock()
	l.timeUp++
	l.mu.Unlock()
}

func (l *fakeListener) AutoSubmitted(res ResultView) { l.submitted <- res }
func (l *fakeListener) AutoSubmitFailed(err error)  { l.failed <- err }

func quiz(timeLimit null.Int) course.Assessment {
	return course.Assessment{
		ModuleID:     "m1",
		Title:        "Basics",
		Type:         course.TypeQuiz,
		PassingScore: 70,
		TimeLimit:    timeLimit,
		Questions: []course.Question{
			{ID: "q1", Text: "One?", Options: []string{"a", "b"}},
			{ID: "q2", Text: "Two?", Options: []string{"a", "b", "c"}},
			{ID: "q3", Text: "Three?", Options: []string{"a", "b"}},
		},
	}
}

func mockNow(t *testing.T, times ...time.Time) {
	orig := nowFunc
	var mu sync.Mutex
	nowFunc = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := times[0]
		if len(times) > 1 {
			times = times[1:]
		}
		return now
	}
	t.Cleanup(func() { nowFunc = orig })
}

func TestRuntime_navigation(t *testing.T) {
	b := &fakeBackend{assessment: quiz(null.Int{})}
	rt := NewRuntime(b, b, nil, nil)

	_, err := rt.Start(context.Background(), "a1", "")
	assert.NoError(t, err)
	assert.Equal(t, InProgress, rt.State())

	qv, err := rt.Question()
	assert.NoError(t, err)
	assert.True(t, qv.IsFirst)
	assert.Equal(t, "Question 1 of 3", qv.Progress())

	_, err = rt.Previous()
	assert.Equal(t, ErrOutOfRange, err)

	qv, err = rt.Select(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, 1, qv.Index)
	assert.Equal(t, null.IntFrom(2), qv.Selected)

	qv, err = rt.Next()
	assert.NoError(t, err)
	assert.True(t, qv.IsLast)
	assert.False(t, qv.Selected.Valid)

	_, err = rt.Next()
	assert.Equal(t, ErrOutOfRange, err)
	_, err = rt.Select(0, 5)
	assert.Equal(t, ErrOutOfRange, err)

	qv, err = rt.GoTo(1)
	assert.NoError(t, err)
	assert.Equal(t, null.IntFrom(2), qv.Selected)

	_, ok := rt.Remaining()
	assert.False(t, ok, "untimed quiz has no countdown")
}

func TestRuntime_SubmitQuiz(t *testing.T) {
	start := time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		confirm     bool
		wantPrompt  bool
		wantSubmit  bool
		wantErr     error
		selections  map[int]int
		wantAnswers []null.Int
	}{
		{
			name:       "unanswered declined",
			selections: map[int]int{0: 1, 2: 0},
			wantPrompt: true,
			wantErr:    ErrSubmitCancelled,
		},
		{
			name:        "unanswered confirmed",
			confirm:     true,
			selections:  map[int]int{0: 1, 2: 0},
			wantPrompt:  true,
			wantSubmit:  true,
			wantAnswers: []null.Int{null.IntFrom(1), {}, null.IntFrom(0)},
		},
		{
			name:        "all answered",
			selections:  map[int]int{0: 0, 1: 1, 2: 1},
			wantSubmit:  true,
			wantAnswers: []null.Int{null.IntFrom(0), null.IntFrom(1), null.IntFrom(1)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNow(t, start, start.Add(150*time.Second))
			b := &fakeBackend{assessment: quiz(null.Int{}), result: course.TestResult{Passed: true, Score: 80}}
			c := &fakeConfirmer{answer: tt.confirm}
			rt := NewRuntime(b, b, c, nil)

			_, err := rt.Start(context.Background(), "a1", course.TypeQuiz)
			assert.NoError(t, err)
			for q, opt := range tt.selections {
				_, err := rt.Select(q, opt)
				assert.NoError(t, err)
			}

			res, err := rt.SubmitQuiz(context.Background())
			assert.Equal(t, tt.wantErr, err)

			if tt.wantPrompt {
				assert.Equal(t, []string{"You have 1 unanswered question(s). Submit anyway?"}, c.messages)
			} else {
				assert.Empty(t, c.messages)
			}

			subs := b.submitted()
			if !tt.wantSubmit {
				assert.Empty(t, subs)
				assert.Equal(t, InProgress, rt.State())
				return
			}
			if assert.Len(t, subs, 1) {
				assert.Equal(t, "a1", subs[0].AssessmentID)
				assert.Equal(t, 3, subs[0].TimeSpent) // 2.5 minutes rounds up
				for i, a := range subs[0].Answers {
					assert.Equal(t, tt.wantAnswers[i], a.Answer)
				}
			}
			assert.Equal(t, Completed, rt.State())
			assert.True(t, res.Passed)
			assert.True(t, rt.Close())
			assert.Equal(t, Idle, rt.State())
		})
	}
}

func TestRuntime_SubmitQuiz_failureKeepsAnswers(t *testing.T) {
	b := &fakeBackend{assessment: quiz(null.Int{}), submitErr: core.NewAPIError(500, "boom")}
	rt := NewRuntime(b, b, &fakeConfirmer{answer: true}, nil)

	_, err := rt.Start(context.Background(), "a1", "")
	assert.NoError(t, err)
	_, _ = rt.Select(0, 1)

	_, err = rt.SubmitQuiz(context.Background())
	assert.True(t, core.IsAPIError(err))
	assert.Equal(t, InProgress, rt.State())

	qv, err := rt.GoTo(0)
	assert.NoError(t, err)
	assert.Equal(t, null.IntFrom(1), qv.Selected)
	assert.False(t, rt.Close())
}

func TestRuntime_timerExpiryForcesSingleSubmit(t *testing.T) {
	ft := mockTicker(t)
	l := newFakeListener()
	c := &fakeConfirmer{answer: false}
	b := &fakeBackend{assessment: quiz(null.IntFrom(1)), result: course.TestResult{Passed: false, Score: 60}}
	rt := NewRuntime(b, b, c, l)

	_, err := rt.Start(context.Background(), "a1", course.TypeQuiz)
	assert.NoError(t, err)
	remaining, ok := rt.Remaining()
	assert.True(t, ok)
	assert.Equal(t, 60, remaining)

	_, _ = rt.Select(0, 1)
	ft.tick(t, 60)

	select {
	case res := <-l.submitted:
		assert.False(t, res.Passed)
		assert.Equal(t, "Keep Trying!", res.Title)
	case err := <-l.failed:
		t.Fatalf("auto submit failed: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timer expiry did not submit")
	}

	assert.Empty(t, c.messages, "expiry must not ask for confirmation")
	assert.Len(t, b.submitted(), 1)
	assert.Equal(t, Completed, rt.State())

	_, err = rt.Select(1, 1)
	assert.Equal(t, ErrNotInProgress, err)
	_, err = rt.SubmitQuiz(context.Background())
	assert.Equal(t, ErrNotInProgress, err)
	assert.Len(t, b.submitted(), 1)

	l.mu.Lock()
	assert.Len(t, l.ticks, 60)
	assert.Equal(t, 0, l.ticks[59])
	assert.Equal(t, 1, l.timeUp)
	l.mu.Unlock()

	assert.False(t, rt.Close())
}

func TestRuntime_closeCancelsCountdown(t *testing.T) {
	ft := mockTicker(t)
	l := newFakeListener()
	b := &fakeBackend{assessment: quiz(null.IntFrom(1))}
	rt := NewRuntime(b, b, nil, l)

	_, err := rt.Start(context.Background(), "a1", "")
	assert.NoError(t, err)
	ft.tick(t, 5)
	rt.Close()

	select {
	case <-ft.stopped:
	default:
		t.Error("countdown still running after close")
	}
	assert.Empty(t, b.submitted())
	_, ok := rt.Remaining()
	assert.False(t, ok)
}

// stallingListener holds the countdown goroutine inside TimeUp until released.
type stallingListener struct {
	*fakeListener
	entered chan struct{}
	release chan struct{}
}

func (l *stallingListener) TimeUp() {
	l.fakeListener.TimeUp()
	close(l.entered)
	<-l.release
}

func TestRuntime_expiryAfterClose(t *testing.T) {
	ft := mockTicker(t)
	l := &stallingListener{fakeListener: newFakeListener(), entered: make(chan struct{}), release: make(chan struct{})}
	b := &fakeBackend{assessment: quiz(null.IntFrom(1))}
	rt := NewRuntime(b, b, nil, l)

	_, err := rt.Start(context.Background(), "a1", course.TypeQuiz)
	if !assert.NoError(t, err) {
		return
	}
	ft.tick(t, 60)

	select {
	case <-l.entered:
	case <-time.After(time.Second):
		t.Fatal("timer expiry did not fire")
	}
	rt.Close()
	close(l.release)

	select {
	case res := <-l.submitted:
		t.Errorf("auto submitted after close: %+v", res)
	case err := <-l.failed:
		t.Errorf("auto submit failure reported after close: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
	assert.Empty(t, b.submitted())
	assert.Equal(t, Idle, rt.State())
}

func TestRuntime_SubmitAssignment(t *testing.T) {
	a := course.Assessment{ModuleID: "m1", Type: course.TypeAssignment, Instructions: "Write"}
	b := &fakeBackend{assessment: a, result: course.TestResult{Message: "Assignment submitted for review"}}
	rt := NewRuntime(b, b, nil, nil)

	_, err := rt.Start(context.Background(), "a2", "")
	assert.NoError(t, err)

	_, err = rt.SubmitQuiz(context.Background())
	assert.Equal(t, ErrWrongType, err)

	_, err = rt.SubmitAssignment(context.Background(), "   ")
	assert.True(t, core.IsValidation(err))
	assert.Empty(t, b.submitted())

	res, err := rt.SubmitAssignment(context.Background(), " my essay ")
	assert.NoError(t, err)
	assert.Equal(t, "Assignment submitted for review", res.Message)
	if subs := b.submitted(); assert.Len(t, subs, 1) {
		assert.Equal(t, []course.SubmittedAnswer{{QuestionID: course.AssignmentQuestionID, Answer: "my essay"}}, subs[0].Answers)
	}
}

func TestRuntime_Start(t *testing.T) {
	t.Run("fetch error", func(t *testing.T) {
		b := &fakeBackend{fetchErr: errors.New("offline")}
		rt := NewRuntime(b, b, nil, nil)
		_, err := rt.Start(context.Background(), "a1", "")
		assert.EqualError(t, err, "loading assessment: offline")
		assert.Equal(t, Idle, rt.State())
	})

	t.Run("quiz without questions", func(t *testing.T) {
		b := &fakeBackend{assessment: course.Assessment{Type: course.TypeQuiz}}
		rt := NewRuntime(b, b, nil, nil)
		_, err := rt.Start(context.Background(), "a1", "")
		assert.Error(t, err)
		assert.Equal(t, Idle, rt.State())
	})

	t.Run("no attempt", func(t *testing.T) {
		rt := NewRuntime(&fakeBackend{}, &fakeBackend{}, nil, nil)
		_, err := rt.Question()
		assert.Equal(t, ErrNoAttempt, err)
		_, err = rt.SubmitAssignment(context.Background(), "x")
		assert.Equal(t, ErrNoAttempt, err)
	})
}

func TestNewResultView(t *testing.T) {
	a := quiz(null.Int{})
	tests := []struct {
		name        string
		result      course.TestResult
		wantTitle   string
		wantMessage string
		wantButton  string
		wantScore   string
	}{
		{
			name: "passed",
			result: course.TestResult{Passed: true, Score: 80, Answers: []course.AnswerResult{
				{Correct: true}, {Correct: true}, {Correct: false},
			}},
			wantTitle:   "Congratulations!",
			wantMessage: "You passed the assessment! The next module is now unlocked.",
			wantButton:  "Continue",
			wantScore:   "80%",
		},
		{
			name:        "failed",
			result:      course.TestResult{Passed: false, Score: 60},
			wantTitle:   "Keep Trying!",
			wantMessage: "You need 70% to pass. You can try again.",
			wantButton:  "Close",
			wantScore:   "60%",
		},
		{
			name:        "fractional score",
			result:      course.TestResult{Passed: false, Score: 66.5},
			wantTitle:   "Keep Trying!",
			wantMessage: "You need 70% to pass. You can try again.",
			wantButton:  "Close",
			wantScore:   "66.5%",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rv := newResultView(a, tt.result, 4)
			assert.Equal(t, tt.wantTitle, rv.Title)
			assert.Equal(t, tt.wantMessage, rv.Message)
			assert.Equal(t, tt.wantButton, rv.ButtonLabel)
			assert.Equal(t, tt.wantScore, rv.ScoreLabel())
			assert.Equal(t, tt.result.Passed, rv.Passed)
		})
	}

	rv := newResultView(a, tests[0].result, 4)
	assert.Equal(t, "2/3", rv.CorrectLabel())
}
