// Package player is the course player page: it loads a course with its assessments and
// results, renders the curriculum and drives assessment attempts and certificates.
package player

import (
	"fmt"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/attempt"
	"github.com/trezcool/edulearn/core/course"
)

// View is the rendering target of the player. Every call replaces what was shown before
// in the same area. Timer, Alert and Result may be called from the countdown goroutine.
type View interface {
	Header(h Header)
	Curriculum(s course.Summary)
	Certificate(n CertificateNotice)
	Lesson(l course.Lesson)

	Quiz(a course.Assessment, timed bool)
	Question(q attempt.QuestionView)
	Timer(remaining int)
	Assignment(a course.Assessment)
	Result(r attempt.ResultView)
	CloseAssessment()
	Alert(msg string)
}

type Header struct {
	Title              string
	Instructor         string
	InstructorInitials string
}

func newHeader(c course.Course) Header {
	return Header{
		Title:              core.DefaultString(c.Title, "Course"),
		Instructor:         core.DefaultString(c.Instructor, "Instructor"),
		InstructorInitials: core.DefaultString(core.Initials(c.Instructor), "IN"),
	}
}

// CertificateNotice is the certificate box closing the curriculum.
type CertificateNotice struct {
	CourseID   string
	Available  bool // every lesson and assessment completed
	ShowButton bool
	Busy       bool
}

func (n CertificateNotice) Title() string {
	if n.Available {
		return "Certificate Available!"
	}
	return "Certificate of Completion"
}

func (n CertificateNotice) Text() string {
	if n.Available {
		return "Congratulations! You have completed all requirements and earned your certificate."
	}
	return "Complete all lessons and pass all assessments to earn your certificate."
}

func (n CertificateNotice) ButtonLabel() string {
	if n.Busy {
		return "Generating..."
	}
	return "Generate Certificate"
}

// FormatTimer renders seconds as "mm:ss".
func FormatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// AssignmentInstructions returns the instructions of `a`, or the default ones.
func AssignmentInstructions(a course.Assessment) string {
	return core.DefaultString(a.Instructions, "Complete the assignment and submit your answer below.")
}
