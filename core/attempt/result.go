package attempt

import (
	"fmt"
	"math"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/edulearn/core/course"
)

type QuestionView struct {
	Index    int
	Total    int
	Question course.Question
	Selected null.Int
	IsFirst  bool
	IsLast   bool
}

// Progress renders "Question i of n".
func (qv QuestionView) Progress() string {
	return fmt.Sprintf("Question %d of %d", qv.Index+1, qv.Total)
}

// ResultView is the outcome of a submitted attempt as shown to the learner.
type ResultView struct {
	Passed       bool
	Score        float64
	PassingScore float64
	Correct      int
	Total        int
	TimeSpent    int // minutes
	Title        string
	Message      string
	ButtonLabel  string
	Feedback     string
}

// newResultView builds the view of `res`. The submit response may omit the graded
// answers and the time spent, in which case they are derived from the score and
// from the submitted `timeSpent`.
func newResultView(a course.Assessment, res course.TestResult, timeSpent int) ResultView {
	passing := a.PassingScore
	if res.PassingScore > 0 {
		passing = res.PassingScore
	}
	view := ResultView{
		Passed:       res.Passed,
		Score:        res.Score,
		PassingScore: passing,
		Correct:      res.CorrectCount(),
		Total:        len(a.Questions),
		TimeSpent:    res.TimeSpent,
		Feedback:     res.Feedback,
	}
	if len(res.Answers) == 0 {
		view.Correct = int(math.Round(res.Score * float64(view.Total) / 100))
	}
	if view.TimeSpent == 0 {
		view.TimeSpent = timeSpent
	}
	if view.Passed {
		view.Title = "Congratulations!"
		view.Message = "You passed the assessment! The next module is now unlocked."
		view.ButtonLabel = "Continue"
	} else {
		view.Title = "Keep Trying!"
		view.Message = fmt.Sprintf("You need %s to pass. You can try again.", FormatScore(passing))
		view.ButtonLabel = "Close"
	}
	return view
}

// ScoreLabel renders the score as "80%".
func (rv ResultView) ScoreLabel() string {
	return FormatScore(rv.Score)
}

// CorrectLabel renders "x/y".
func (rv ResultView) CorrectLabel() string {
	return fmt.Sprintf("%d/%d", rv.Correct, rv.Total)
}

func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64) + "%"
}
