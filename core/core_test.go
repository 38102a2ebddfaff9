package core

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantValid bool
		want      time.Time
		wantErr   bool
	}{
		{name: "null", data: `null`},
		{name: "empty", data: `""`},
		{name: "rfc3339", data: `"2026-10-13T10:00:00+02:00"`, wantValid: true, want: time.Date(2026, 10, 13, 8, 0, 0, 0, time.UTC)},
		{name: "http date", data: `"Tue, 13 Oct 2026 10:00:00 GMT"`, wantValid: true, want: time.Date(2026, 10, 13, 10, 0, 0, 0, time.UTC)},
		{name: "garbage", data: `"yesterday"`, wantErr: true},
		{name: "number", data: `42`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			err := json.Unmarshal([]byte(tt.data), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			if assert.NoError(t, err) {
				assert.Equal(t, tt.wantValid, got.Valid)
				if tt.wantValid {
					assert.True(t, tt.want.Equal(got.Time.Time), "got %v", got.Time.Time)
				}
			}
		})
	}
}

func TestTime_Format(t *testing.T) {
	assert.Equal(t, "never", Time{}.Format("2006-01-02", "never"))
	assert.Equal(t, "2026-10-13", TimeFrom(time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)).Format("2006-01-02", "never"))
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantAuth       bool
		wantValidation bool
		wantAPI        bool
	}{
		{name: "auth missing", err: ErrAuthMissing, wantAuth: true},
		{name: "wrapped auth missing", err: errors.Wrap(ErrAuthMissing, "loading"), wantAuth: true},
		{name: "unauthorized", err: NewAPIError(http.StatusUnauthorized, "Token has expired"), wantAuth: true, wantAPI: true},
		{name: "not found", err: errors.Wrap(NewAPIError(http.StatusNotFound, ""), "getting"), wantAPI: true},
		{name: "validation", err: NewValidationError(errors.New("email: required")), wantValidation: true},
		{name: "other", err: errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantAuth, IsAuthMissing(tt.err))
			assert.Equal(t, tt.wantValidation, IsValidation(tt.err))
			assert.Equal(t, tt.wantAPI, IsAPIError(tt.err))
		})
	}

	assert.Equal(t, "API request failed", NewAPIError(http.StatusInternalServerError, "").Error())
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Jane Doe", "JD"},
		{"  ann  marie lee ", "AML"},
		{"élodie", "É"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.name))
		})
	}
}

func TestDefaultString(t *testing.T) {
	assert.Equal(t, "Course", DefaultString("  ", "Course"))
	assert.Equal(t, "Go", DefaultString("Go", "Course"))
	assert.Equal(t, "ann@x.io", CleanString(" ANN@x.io ", true))
	assert.Equal(t, "ANN", CleanString(" ANN "))
}

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_APIBASEURL", "https://edulearn.example.com/api/")
	t.Setenv("TEST_APITIMEOUT", "5s")
	t.Setenv("TEST_DEBUG", "false")

	conf := NewConfig()
	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.False(t, conf.Debug)
	assert.Equal(t, "EduLearn", conf.AppName)
	assert.Equal(t, "https://edulearn.example.com/api", conf.API.BaseURL)
	assert.Equal(t, 5*time.Second, conf.API.Timeout)
}
