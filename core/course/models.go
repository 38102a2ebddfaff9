package course

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/edulearn/core"
)

type AssessmentType string

const (
	TypeQuiz       AssessmentType = "mcq"
	TypeAssignment AssessmentType = "assignment"

	// AssignmentQuestionID is the question id under which assignment text is submitted.
	AssignmentQuestionID = "assignment"
)

// Label is the human name of the assessment type.
func (t AssessmentType) Label() string {
	if t == TypeQuiz {
		return "Quiz"
	}
	return "Assignment"
}

type Course struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Instructor  string   `json:"instructor"`
	Price       float64  `json:"price,omitempty"`
	Modules     []Module `json:"modules"`
}

type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

type Lesson struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Duration  string `json:"duration,omitempty"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active,omitempty"`
	VideoURL  string `json:"videoUrl,omitempty"`
}

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type Assessment struct {
	ID           string         `json:"_id"`
	CourseID     string         `json:"courseId,omitempty"`
	ModuleID     string         `json:"moduleId"`
	Title        string         `json:"title"`
	Type         AssessmentType `json:"type"`
	Questions    []Question     `json:"questions"`
	PassingScore float64        `json:"passingScore"`
	TimeLimit    null.Int       `json:"timeLimit"` // minutes
	Instructions string         `json:"instructions,omitempty"`
}

// NewAssessment is the instructor payload to create or update an Assessment.
type NewAssessment struct {
	CourseID     string         `json:"courseId" validate:"required"`
	ModuleID     string         `json:"moduleId" validate:"required"`
	Title        string         `json:"title" validate:"required,notblank"`
	Type         AssessmentType `json:"type" validate:"required,oneof=mcq assignment"`
	Questions    []NewQuestion  `json:"questions,omitempty" validate:"omitempty,dive"`
	PassingScore float64        `json:"passingScore" validate:"gte=0,lte=100"`
	TimeLimit    null.Int       `json:"timeLimit"`
	Instructions string         `json:"instructions,omitempty"`
}

type NewQuestion struct {
	ID            string   `json:"id" validate:"required"`
	Text          string   `json:"text" validate:"required,notblank"`
	Options       []string `json:"options" validate:"min=2"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
}

// SubmittedAnswer is one entry of a Submission. Answer is a null.Int option index
// for quizzes, or the free text of an assignment.
type SubmittedAnswer struct {
	QuestionID string      `json:"questionId"`
	Answer     interface{} `json:"answer"`
}

type Submission struct {
	AssessmentID string            `json:"assessmentId" validate:"required"`
	Answers      []SubmittedAnswer `json:"answers" validate:"required"`
	TimeSpent    int               `json:"timeSpent"` // minutes
}

type AnswerResult struct {
	QuestionID string      `json:"questionId"`
	Answer     interface{} `json:"answer"`
	Correct    bool        `json:"correct"`
}

type TestResult struct {
	ID           string         `json:"_id,omitempty"`
	AssessmentID string         `json:"assessmentId"`
	CourseID     string         `json:"courseId,omitempty"`
	Passed       bool           `json:"passed"`
	Score        float64        `json:"score"`
	PassingScore float64        `json:"passingScore,omitempty"`
	Answers      []AnswerResult `json:"answers"`
	TimeSpent    int            `json:"timeSpent"`
	Feedback     string         `json:"feedback,omitempty"`
	AttemptDate  core.Time      `json:"attemptDate"`
	Message      string         `json:"message,omitempty"`
}

// CorrectCount returns the number of answers marked correct.
func (r TestResult) CorrectCount() int {
	var n int
	for _, a := range r.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// Grade is the instructor payload to grade an assignment submission.
type Grade struct {
	Score    float64 `json:"score" validate:"gte=0,lte=100"`
	Feedback string  `json:"feedback,omitempty"`
}

type AssessmentSummary struct {
	AssessmentID string  `json:"assessmentId"`
	Title        string  `json:"title,omitempty"`
	Passed       bool    `json:"passed"`
	BestScore    float64 `json:"bestScore"`
	Attempts     int     `json:"attempts"`
}

type CourseSummary struct {
	Summary              []AssessmentSummary `json:"summary"`
	TotalAssessments     int                 `json:"totalAssessments"`
	PassedAssessments    int                 `json:"passedAssessments"`
	AllPassed            bool                `json:"allPassed"`
	CompletionPercentage float64             `json:"completionPercentage"`
}

type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Message  string `json:"message"`
}

// NewCourse is the instructor payload to create a Course.
type NewCourse struct {
	Title       string   `json:"title" validate:"required,notblank"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price" validate:"gte=0"`
	Modules     []Module `json:"modules,omitempty"`
}
