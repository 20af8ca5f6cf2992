package logsvc

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/user"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(&buf, &core.Config{AppName: "test", Env: "TEST"})

	usr := user.User{ID: "u-1", Name: "Jane", Email: "jane@test.com"}
	logger.Debug("hidden")
	logger.Error("boom", errors.New("db down"), usr)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "boom db down user=u-1")
	assert.NotContains(t, out, "jane@test.com")
}
