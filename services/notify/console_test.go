package notifysvc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edulearn/core"
	testutil "github.com/trezcool/edulearn/tests"
)

func TestConsoleNotifier_Toast(t *testing.T) {
	tests := []struct {
		name      string
		kind      core.ToastKind
		msg       string
		wantOut   string
		wantLevel string
	}{
		{name: "success", kind: core.ToastSuccess, msg: "Certificate generated successfully!", wantOut: "✓ Certificate generated successfully!\n", wantLevel: "info"},
		{name: "error", kind: core.ToastError, msg: "Failed to load course", wantOut: "✗ Failed to load course\n", wantLevel: "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &testutil.Logger{}
			n := NewConsoleNotifier(&buf, logger)

			n.Toast(tt.kind, tt.msg)

			assert.Equal(t, tt.wantOut, buf.String())
			assert.Equal(t, []string{tt.wantLevel}, logger.Levels())
			assert.Equal(t, tt.msg, logger.Entries[0].Msg)
		})
	}
}

func TestConsoleNotifier_Loading(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, &testutil.Logger{})

	n.Loading(true)
	n.Loading(true)
	n.Loading(false)
	n.Loading(false)
	assert.Equal(t, "Loading course content...\n", buf.String())

	n.Loading(true)
	assert.Equal(t, "Loading course content...\nLoading course content...\n", buf.String())
}
