package certificate

import (
	"regexp"

	"github.com/trezcool/edulearn/core"
)

type Certificate struct {
	ID               string    `json:"_id,omitempty"`
	CertificateID    string    `json:"certificateId,omitempty"`
	CourseID         string    `json:"courseId,omitempty"`
	UserID           string    `json:"userId,omitempty"`
	CourseTitle      string    `json:"courseTitle,omitempty"`
	UserName         string    `json:"userName,omitempty"`
	InstructorName   string    `json:"instructorName,omitempty"`
	VerificationCode string    `json:"verificationCode,omitempty"`
	IssueDate        core.Time `json:"issueDate"`
}

// Generated is the response to a generate request. The certificate fields are
// either nested or flattened next to the record id, depending on the backend version.
type Generated struct {
	Certificate
	Nested  *Certificate `json:"certificate,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Resolve merges the nested certificate into the flattened fields.
func (g Generated) Resolve() Certificate {
	cert := g.Certificate
	if g.Nested == nil {
		return cert
	}
	n := *g.Nested
	if cert.ID == "" {
		cert.ID = n.ID
	}
	if cert.CertificateID == "" {
		cert.CertificateID = n.CertificateID
	}
	if cert.CourseID == "" {
		cert.CourseID = n.CourseID
	}
	if cert.UserID == "" {
		cert.UserID = n.UserID
	}
	if cert.CourseTitle == "" {
		cert.CourseTitle = n.CourseTitle
	}
	if cert.UserName == "" {
		cert.UserName = n.UserName
	}
	if cert.InstructorName == "" {
		cert.InstructorName = n.InstructorName
	}
	if cert.VerificationCode == "" {
		cert.VerificationCode = n.VerificationCode
	}
	if !cert.IssueDate.Valid {
		cert.IssueDate = n.IssueDate
	}
	return cert
}

// PDFID is the id the PDF is downloaded by: the record id, else the certificate id.
func (c Certificate) PDFID() string {
	return core.DefaultString(c.ID, c.CertificateID)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName is the name of the downloaded PDF.
func (c Certificate) FileName() string {
	id := unsafeFileChars.ReplaceAllString(core.DefaultString(c.CertificateID, c.ID), "_")
	return "certificate_" + id + ".pdf"
}

type GenerateRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

// VerifyRequest looks a certificate up by either its id or its verification code.
type VerifyRequest struct {
	CertificateID    string `json:"certificateId,omitempty" validate:"required_without=VerificationCode"`
	VerificationCode string `json:"verificationCode,omitempty" validate:"required_without=CertificateID"`
}

type VerifyResult struct {
	Valid         bool      `json:"valid"`
	UserName      string    `json:"userName,omitempty"`
	CourseTitle   string    `json:"courseTitle,omitempty"`
	IssueDate     core.Time `json:"issueDate"`
	CertificateID string    `json:"certificateId,omitempty"`
	Message       string    `json:"message,omitempty"`
}
