package course

import "math"

type AssessmentProgress struct {
	Assessment Assessment
	Locked     bool
	Passed     bool
	Score      float64
}

type ModuleProgress struct {
	Module           Module
	CompletedLessons int
	TotalLessons     int
	Assessments      []AssessmentProgress
}

// Complete reports whether every lesson of the module is completed.
// A module without lessons is complete.
func (mp ModuleProgress) Complete() bool {
	return mp.CompletedLessons == mp.TotalLessons
}

// Summary is the completion state of a whole Course.
type Summary struct {
	Course         Course
	Modules        []ModuleProgress
	CompletedItems int
	TotalItems     int
}

// Percent is the rounded aggregate completion, in [0, 100].
func (s Summary) Percent() int {
	if s.TotalItems <= 0 {
		return 0
	}
	return int(math.Round(float64(s.CompletedItems) / float64(s.TotalItems) * 100))
}

// AllCompleted reports whether every lesson and assessment is done.
func (s Summary) AllCompleted() bool {
	return s.TotalItems > 0 && s.CompletedItems == s.TotalItems
}

// Assessment finds the progress of an assessment by its ID.
func (s Summary) Assessment(id string) (AssessmentProgress, bool) {
	for _, mp := range s.Modules {
		for _, ap := range mp.Assessments {
			if ap.Assessment.ID == id {
				return ap, true
			}
		}
	}
	return AssessmentProgress{}, false
}

// Summarize computes per module, lesson and assessment completion and lock state.
// Assessments not belonging to one of the course modules are ignored.
func Summarize(c Course, assessments []Assessment, results []TestResult) Summary {
	s := Summary{
		Course:  c,
		Modules: make([]ModuleProgress, 0, len(c.Modules)),
	}

	for _, mod := range c.Modules {
		mp := ModuleProgress{
			Module:       mod,
			TotalLessons: len(mod.Lessons),
		}
		for _, lesson := range mod.Lessons {
			if lesson.Completed {
				mp.CompletedLessons++
			}
		}
		s.TotalItems += mp.TotalLessons
		s.CompletedItems += mp.CompletedLessons

		for _, a := range assessments {
			if a.ModuleID != mod.ID {
				continue
			}
			ap := AssessmentProgress{Assessment: a, Locked: !mp.Complete()}
			if res, ok := FindResult(results, a.ID); ok {
				ap.Passed = res.Passed
				ap.Score = res.Score
			}
			s.TotalItems++
			if ap.Passed {
				s.CompletedItems++
			}
			mp.Assessments = append(mp.Assessments, ap)
		}
		s.Modules = append(s.Modules, mp)
	}
	return s
}

// FindResult returns the first result recorded for the assessment.
func FindResult(results []TestResult, assessmentID string) (TestResult, bool) {
	for _, r := range results {
		if r.AssessmentID == assessmentID {
			return r, true
		}
	}
	return TestResult{}, false
}

// MarkLessonPlayed sets the lesson active (clearing other active flags) and completed.
// It returns the lesson, whether it was newly completed and whether it was found.
func MarkLessonPlayed(c *Course, moduleID, lessonID string) (Lesson, bool, bool) {
	mi, li := -1, -1
	for i, mod := range c.Modules {
		if mod.ID != moduleID {
			continue
		}
		for j, lesson := range mod.Lessons {
			if lesson.ID == lessonID {
				mi, li = i, j
				break
			}
		}
		if li >= 0 {
			break
		}
	}
	if li < 0 {
		return Lesson{}, false, false
	}

	for i := range c.Modules {
		for j := range c.Modules[i].Lessons {
			c.Modules[i].Lessons[j].Active = false
		}
	}
	lesson := &c.Modules[mi].Lessons[li]
	lesson.Active = true
	newlyCompleted := !lesson.Completed
	lesson.Completed = true
	return *lesson, newlyCompleted, true
}
