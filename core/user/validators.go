package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edulearn/core"
)

var (
	teacherFieldTag  = "teacher_field"
	teacherFieldText = "this field is required for teachers"
)

// RegisterValidators registers the user payload validations on `v`.
func RegisterValidators(v *core.Validator) {
	v.RegisterStructValidation(
		userStructValidation,
		map[string]string{teacherFieldTag: teacherFieldText},
		NewUser{},
	)
}

// userStructValidation does struct level validation on NewUser.
func userStructValidation(sl validator.StructLevel) {
	nu, ok := sl.Current().Interface().(NewUser)
	if !ok || nu.Role != RoleTeacher {
		return
	}
	// teachers sign up with their teaching profile
	if nu.Subject == "" {
		sl.ReportError(nu.Subject, "subject", "Subject", teacherFieldTag, "")
	}
	if nu.Qualification == "" {
		sl.ReportError(nu.Qualification, "qualification", "Qualification", teacherFieldTag, "")
	}
	if nu.Experience == "" {
		sl.ReportError(nu.Experience, "experience", "Experience", teacherFieldTag, "")
	}
}
