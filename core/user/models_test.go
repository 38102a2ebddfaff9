package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edulearn/core"
)

func newValidator() *core.Validator {
	v := core.NewValidator()
	RegisterValidators(v)
	return v
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	if err == nil {
		return nil
	}
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("error = %T; want *core.ValidationError", err)
	}
	flds := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		flds[f.Field] = f.Error
	}
	return flds
}

func TestNewUser_Validate(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		nu      NewUser
		wantErr map[string]string
	}{
		{
			name: "valid student",
			nu:   NewUser{Role: " Student ", FullName: " Jane Doe ", Email: " Jane@Mail.com", Password: "secret"},
		},
		{
			name: "blank name and bad email",
			nu:   NewUser{Role: RoleStudent, FullName: "   ", Email: "jane", Password: "secret"},
			wantErr: map[string]string{
				"fullName": "this field is required",
				"email":    "email must be a valid email address",
			},
		},
		{
			name: "teacher without profile",
			nu:   NewUser{Role: RoleTeacher, FullName: "John", Email: "john@mail.com", Password: "secret", Subject: "Go"},
			wantErr: map[string]string{
				"qualification": "this field is required for teachers",
				"experience":    "this field is required for teachers",
			},
		},
		{
			name: "valid teacher",
			nu: NewUser{
				Role: RoleTeacher, FullName: "John", Email: "john@mail.com", Password: "secret",
				Subject: "Go", Qualification: "MSc", Experience: "5 years",
			},
		},
		{
			name:    "password mismatch",
			nu:      NewUser{Role: RoleAdmin, FullName: "Ad", Email: "ad@mail.com", Password: "secret", PasswordConfirm: "secreT"},
			wantErr: map[string]string{"PasswordConfirm": "PasswordConfirm must be equal to Password"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := tt.nu
			nu.Clean()
			err := v.Struct(nu)
			assert.Equal(t, tt.wantErr, fieldErrors(t, err))
		})
	}
}

func TestNewUser_Clean(t *testing.T) {
	nu := NewUser{Role: " Teacher", FullName: "  Jane Doe ", Email: " Jane@Mail.COM "}
	nu.Clean()
	assert.Equal(t, NewUser{Role: RoleTeacher, FullName: "Jane Doe", Email: "jane@mail.com"}, nu)
}

func TestUser_roles(t *testing.T) {
	inactive := false
	tests := []struct {
		usr         User
		wantAdmin   bool
		wantTeacher bool
		wantStudent bool
		wantActive  bool
	}{
		{usr: User{Role: RoleAdmin}, wantAdmin: true, wantActive: true},
		{usr: User{Role: RoleTeacher, IsActive: &inactive}, wantTeacher: true},
		{usr: User{Role: RoleStudent}, wantStudent: true, wantActive: true},
		{usr: User{}, wantStudent: true, wantActive: true},
	}
	for _, tt := range tests {
		t.Run(tt.usr.Role, func(t *testing.T) {
			assert.Equal(t, tt.wantAdmin, tt.usr.IsAdmin())
			assert.Equal(t, tt.wantTeacher, tt.usr.IsTeacher())
			assert.Equal(t, tt.wantStudent, tt.usr.IsStudent())
			assert.Equal(t, tt.wantActive, tt.usr.Active())
		})
	}

	assert.True(t, ValidRole(RoleTeacher))
	assert.False(t, ValidRole("teacher:"))
	assert.Equal(t, "JD", User{FullName: "jane doe"}.Initials())
	assert.Equal(t, "U", User{}.Initials())
	assert.Equal(t, "Jane <jane@mail.com> [student]", User{FullName: "Jane", Email: "jane@mail.com", Role: RoleStudent}.String())
}
