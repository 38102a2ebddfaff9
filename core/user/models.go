package user

import (
	"strings"

	"github.com/trezcool/edulearn/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

var (
	AllRoles = []string{RoleStudent, RoleTeacher, RoleAdmin}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Admin", Value: RoleAdmin},
	}
)

// ValidRole reports whether `role` is one of AllRoles.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID            string    `json:"_id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	IsActive      *bool     `json:"isActive,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	Qualification string    `json:"qualification,omitempty"`
	Experience    string    `json:"experience,omitempty"`
	CreatedAt     core.Time `json:"createdAt"`
	LastLogin     core.Time `json:"lastLogin"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent || u.Role == ""
}

// Active reports whether the account is active. Accounts are active unless told otherwise.
func (u User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

func (u User) Initials() string {
	return core.DefaultString(core.Initials(u.FullName), "U")
}

// NewUser contains information needed to sign up a new User.
// Subject, Qualification and Experience are required for teachers.
type NewUser struct {
	Role            string `json:"-" validate:"required,oneof=student teacher admin"`
	FullName        string `json:"fullName" validate:"required,notblank"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"-" validate:"omitempty,eqfield=Password"`
	Subject         string `json:"subject,omitempty"`
	Qualification   string `json:"qualification,omitempty"`
	Experience      string `json:"experience,omitempty"`
}

// Clean normalizes the user input before validation.
func (nu *NewUser) Clean() {
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.FullName = core.CleanString(nu.FullName)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Subject = core.CleanString(nu.Subject)
	nu.Qualification = core.CleanString(nu.Qualification)
	nu.Experience = core.CleanString(nu.Experience)
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Clean() {
	c.Email = core.CleanString(c.Email, true /* lower */)
}

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateUser defines what information an admin may provide to modify an existing User.
type UpdateUser struct {
	FullName string `json:"fullName,omitempty" validate:"omitempty,notblank"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=student teacher admin"`
	IsActive *bool  `json:"isActive,omitempty"`
}

func (uu *UpdateUser) Clean() {
	uu.FullName = core.CleanString(uu.FullName)
	uu.Email = core.CleanString(uu.Email, true /* lower */)
	uu.Role = core.CleanString(uu.Role, true /* lower */)
}

func (uu UpdateUser) IsEmpty() bool {
	return uu.FullName == "" && uu.Email == "" && uu.Role == "" && uu.IsActive == nil
}

type QueryFilter struct {
	Page   int    `validate:"gte=0"`
	Limit  int    `validate:"gte=0,lte=100"`
	Role   string `validate:"omitempty,oneof=student teacher admin"`
	Search string
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = core.CleanString(qf.Role, true /* lower */)
}

func (qf QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Role == "" && qf.Page == 0 && qf.Limit == 0
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type Page struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// Stats are the admin dashboard counters.
type Stats struct {
	TotalUsers  int `json:"totalUsers"`
	ActiveUsers int `json:"activeUsers"`
	Students    int `json:"students"`
	Teachers    int `json:"teachers"`
	Admins      int `json:"admins"`
}

// Notification is an entry of the current user's notification feed.
type Notification struct {
	ID        string    `json:"_id,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt core.Time `json:"createdAt"`
}

func (u User) String() string {
	var b strings.Builder
	b.WriteString(core.DefaultString(u.FullName, "Unknown"))
	if u.Email != "" {
		b.WriteString(" <" + u.Email + ">")
	}
	if u.Role != "" {
		b.WriteString(" [" + u.Role + "]")
	}
	return b.String()
}
