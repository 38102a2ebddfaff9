package player

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/labstack/gommon/color"

	"github.com/trezcool/edulearn/core/attempt"
	"github.com/trezcool/edulearn/core/course"
)

// Terminal renders the player as text.
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	color *color.Color
}

var _ View = (*Terminal)(nil)

func NewTerminal(out io.Writer) *Terminal {
	c := color.New()
	c.SetOutput(out)
	return &Terminal{out: out, color: c}
}

func (t *Terminal) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) Header(h Header) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("%s\n", t.color.Bold("== "+h.Title+" =="))
	t.printf("Instructor: %s (%s)\n", h.Instructor, h.InstructorInitials)
}

func (t *Terminal) Curriculum(s course.Summary) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, mp := range s.Modules {
		t.printf("\n%s  %d/%d lessons\n", t.color.Bold(mp.Module.Title), mp.CompletedLessons, mp.TotalLessons)
		for _, l := range mp.Module.Lessons {
			t.printf("  %s %s  %s", t.lessonIcon(l), l.ID, l.Title)
			if l.Duration != "" {
				t.printf("  %s", l.Duration)
			}
			t.printf("\n")
		}
		for _, ap := range mp.Assessments {
			a := ap.Assessment
			switch {
			case ap.Passed:
				t.printf("  %s %s  %s [%s]  %s\n", t.color.Green("✓"), a.ID, a.Title, a.Type.Label(),
					t.color.Green("✓ "+attempt.FormatScore(ap.Score)))
			case ap.Locked:
				t.printf("  %s %s  %s [%s]  %s\n", "🔒", a.ID, a.Title, a.Type.Label(),
					t.color.Grey("Complete all lessons to unlock"))
			default:
				t.printf("  %s %s  %s [%s]\n", "□", a.ID, a.Title, a.Type.Label())
			}
		}
	}
	t.printf("\n%s  %d/%d items\n", t.progressBar(s.Percent()), s.CompletedItems, s.TotalItems)
}

func (t *Terminal) lessonIcon(l course.Lesson) string {
	switch {
	case l.Completed:
		return t.color.Green("✓")
	case l.Active:
		return t.color.Cyan("▶")
	}
	return "○"
}

func (t *Terminal) progressBar(percent int) string {
	const width = 20
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "] " +
		fmt.Sprintf("%d%% completed", percent)
}

func (t *Terminal) Certificate(n CertificateNotice) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("\n%s\n%s\n", t.color.Yellow(n.Title()), n.Text())
	if n.ShowButton {
		t.printf("  > %s (type `certificate`)\n", n.ButtonLabel())
	}
}

func (t *Terminal) Lesson(l course.Lesson) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("\n%s %s\n", t.color.Cyan("▶ Playing"), l.Title)
	if l.VideoURL != "" {
		t.printf("  video: %s\n", l.VideoURL)
	}
}

func (t *Terminal) Quiz(a course.Assessment, timed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("\n%s\n", t.color.Bold(a.Title))
	if timed {
		t.printf("Time limit: %d minute(s)\n", a.TimeLimit.Int)
	}
}

func (t *Terminal) Question(q attempt.QuestionView) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("\n%s\n%s\n", t.color.Dim(q.Progress()), q.Question.Text)
	for i, opt := range q.Question.Options {
		mark := " "
		if q.Selected.Valid && q.Selected.Int == i {
			mark = "x"
		}
		t.printf("  [%s] %d) %s\n", mark, i+1, opt)
	}
	next := "next"
	if q.IsLast {
		next = "submit"
	}
	if q.IsFirst {
		t.printf("(%s)\n", next)
	} else {
		t.printf("(prev | %s)\n", next)
	}
}

func (t *Terminal) Timer(remaining int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	// only whole minutes and the last ten seconds, to keep the prompt usable
	if remaining%60 != 0 && remaining > 10 {
		return
	}
	t.printf("%s %s\n", t.color.Yellow("⏱"), FormatTimer(remaining))
}

func (t *Terminal) Assignment(a course.Assessment) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("\n%s\n%s\n%s\n", t.color.Bold(a.Title), t.color.Bold("Instructions"), AssignmentInstructions(a))
	t.printf("(answer <text>)\n")
}

func (t *Terminal) Result(r attempt.ResultView) {
	t.mu.Lock()
	defer t.mu.Unlock()
	title := t.color.Red(r.Title)
	if r.Passed {
		title = t.color.Green(r.Title)
	}
	t.printf("\n%s\n%s\n", title, r.Message)
	t.printf("  Score: %s\n  Correct answers: %s\n  Time spent: %d min\n", r.ScoreLabel(), r.CorrectLabel(), r.TimeSpent)
	if r.Feedback != "" {
		t.printf("  Feedback: %s\n", r.Feedback)
	}
	t.printf("(%s: type `close`)\n", r.ButtonLabel)
}

func (t *Terminal) CloseAssessment() {}

func (t *Terminal) Alert(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("%s\n", t.color.Red("! "+msg))
}
