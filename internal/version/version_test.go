package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplate(t *testing.T) {
	origCommit, origDate := Commit, Date
	t.Cleanup(func() { Commit, Date = origCommit, origDate })

	Commit, Date = "abc123", "2026-01-02"
	assert.Equal(t, "nvl version {{.Version}} (commit: abc123, built: 2026-01-02)\n", Template())
}
