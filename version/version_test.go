package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.NotEmpty(t, info.Version)
}

func TestFill(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	t.Run("unstamped", func(t *testing.T) {
		got := Info{Version: unset, CommitHash: unset, BuildTime: "unknown"}.fill(bi)
		assert.Equal(t, "v0.4.1", got.Version)
		assert.Equal(t, "0123456789abcdef-dirty", got.CommitHash)
		assert.Equal(t, "2026-03-01T10:00:00Z", got.BuildTime)
		assert.Equal(t, "langkit v0.4.1 (commit 0123456, built 2026-03-01T10:00:00Z)", got.String())
	})

	t.Run("ldflags win", func(t *testing.T) {
		got := Info{Version: "v1.0.0", CommitHash: "feedface", BuildTime: "yesterday"}.fill(bi)
		assert.Equal(t, "v1.0.0", got.Version)
		assert.Equal(t, "feedface-dirty", got.CommitHash)
		assert.Equal(t, "yesterday", got.BuildTime)
	})

	t.Run("devel module", func(t *testing.T) {
		got := Info{Version: unset, CommitHash: unset}.fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
		assert.Equal(t, unset, got.Version)
		assert.Equal(t, unset, got.Short())
	})
}
