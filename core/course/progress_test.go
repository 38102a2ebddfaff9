package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lessons(completed ...bool) []Lesson {
	ls := make([]Lesson, 0, len(completed))
	for i, c := range completed {
		ls = append(ls, Lesson{ID: string(rune('a' + i)), Title: "Lesson", Completed: c})
	}
	return ls
}

func TestSummarize(t *testing.T) {
	crs := Course{
		ID:    "c1",
		Title: "Go",
		Modules: []Module{
			{ID: "m1", Lessons: lessons(true, true)},
			{ID: "m2", Lessons: lessons(true, false)},
			{ID: "m3"}, // no lessons
		},
	}
	assessments := []Assessment{
		{ID: "a1", ModuleID: "m1", Type: TypeQuiz},
		{ID: "a2", ModuleID: "m2", Type: TypeAssignment},
		{ID: "a3", ModuleID: "m3", Type: TypeQuiz},
		{ID: "orphan", ModuleID: "lol", Type: TypeQuiz},
	}
	results := []TestResult{
		{AssessmentID: "a1", Passed: true, Score: 80},
		{AssessmentID: "a1", Passed: false, Score: 20}, // first match counts
	}

	s := Summarize(crs, assessments, results)

	assert.Len(t, s.Modules, 3)
	assert.Equal(t, 7, s.TotalItems) // 4 lessons + 3 assessments
	assert.Equal(t, 4, s.CompletedItems)
	assert.Equal(t, 57, s.Percent())
	assert.False(t, s.AllCompleted())

	tests := []struct {
		name       string
		id         string
		wantLocked bool
		wantPassed bool
		wantScore  float64
	}{
		{name: "complete module, passed", id: "a1", wantPassed: true, wantScore: 80},
		{name: "incomplete module", id: "a2", wantLocked: true},
		{name: "zero-lesson module is unlocked", id: "a3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ap, ok := s.Assessment(tt.id)
			if !ok {
				t.Fatalf("Assessment(%q) not found", tt.id)
			}
			if ap.Locked != tt.wantLocked {
				t.Errorf("Locked = %v; want %v", ap.Locked, tt.wantLocked)
			}
			if ap.Passed != tt.wantPassed {
				t.Errorf("Passed = %v; want %v", ap.Passed, tt.wantPassed)
			}
			if ap.Score != tt.wantScore {
				t.Errorf("Score = %v; want %v", ap.Score, tt.wantScore)
			}
		})
	}

	if _, ok := s.Assessment("orphan"); ok {
		t.Error("orphan assessment should not be rendered")
	}
}

func TestSummary_Percent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
		wantAll   bool
	}{
		{name: "empty course", want: 0},
		{name: "nothing done", completed: 0, total: 3, want: 0},
		{name: "one third", completed: 1, total: 3, want: 33},
		{name: "two thirds", completed: 2, total: 3, want: 67},
		{name: "half rounds up", completed: 1, total: 8, want: 13},
		{name: "almost done is not all", completed: 199, total: 200, want: 100},
		{name: "all", completed: 5, total: 5, want: 100, wantAll: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summary{CompletedItems: tt.completed, TotalItems: tt.total}
			got := s.Percent()
			if got != tt.want {
				t.Errorf("Percent() = %d; want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("Percent() = %d; out of range", got)
			}
			if s.AllCompleted() != tt.wantAll {
				t.Errorf("AllCompleted() = %v; want %v", s.AllCompleted(), tt.wantAll)
			}
		})
	}
}

func TestSummarize_certificateOnlyWhenEverythingDone(t *testing.T) {
	crs := Course{Modules: []Module{{ID: "m1", Lessons: lessons(true)}}}
	assessments := []Assessment{{ID: "a1", ModuleID: "m1"}}

	s := Summarize(crs, assessments, nil)
	assert.False(t, s.AllCompleted())

	s = Summarize(crs, assessments, []TestResult{{AssessmentID: "a1", Passed: true, Score: 100}})
	assert.True(t, s.AllCompleted())
	assert.Equal(t, 100, s.Percent())

	assert.False(t, Summarize(Course{}, nil, nil).AllCompleted())
}

func TestMarkLessonPlayed(t *testing.T) {
	crs := Course{Modules: []Module{
		{ID: "m1", Lessons: []Lesson{{ID: "l1", Active: true}, {ID: "l2", VideoURL: "https://v/2"}}},
		{ID: "m2", Lessons: []Lesson{{ID: "l3", Completed: true}}},
	}}

	lesson, newly, ok := MarkLessonPlayed(&crs, "m1", "l2")
	assert.True(t, ok)
	assert.True(t, newly)
	assert.Equal(t, "https://v/2", lesson.VideoURL)
	assert.False(t, crs.Modules[0].Lessons[0].Active)
	assert.True(t, crs.Modules[0].Lessons[1].Active)
	assert.True(t, crs.Modules[0].Lessons[1].Completed)

	_, newly, ok = MarkLessonPlayed(&crs, "m2", "l3")
	assert.True(t, ok)
	assert.False(t, newly)

	_, _, ok = MarkLessonPlayed(&crs, "m1", "l3") // wrong module
	assert.False(t, ok)
}
