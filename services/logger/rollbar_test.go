package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/user"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	conf := &core.Config{Env: "TEST", TestMode: true, AppName: "EduLearn", Build: "test"}
	logger := NewRollbarLogger(log.New(&buf, "", 0), conf)

	usr := user.User{ID: "u1", FullName: "Ann Lee", Email: "ann@x.io", Role: user.RoleStudent}
	logger.Warn("Failed to check certificate eligibility: boom", errors.New("boom"), usr)

	assert.Equal(t,
		"WARN: Failed to check certificate eligibility: boom\nboom\nuser: Ann Lee <ann@x.io> [student]\n",
		buf.String(),
	)
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := RollbarLogger{}
	err := errors.New("boom")
	extra := map[string]interface{}{"courseId": "c1"}
	first := user.User{ID: "u1"}

	got := logger.prepare("msg", []interface{}{err, first, extra, user.User{ID: "u2"}})
	assert.Equal(t, []interface{}{"msg", err, extra}, got)
}
