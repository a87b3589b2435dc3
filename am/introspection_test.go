package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkSettingsFromSource(t *testing.T) {
	settings := map[string]interface{}{
		"order": 2,
		"model": map[string]interface{}{
			"smoothing": "mle",
			"nested": map[string]interface{}{
				"deep": true,
			},
		},
	}

	sourceMap := make(map[string]SourceInfo)
	markSettingsFromSource(settings, "", SourceUser, "/home/user/.langkit/am.toml", sourceMap)

	assert.Len(t, sourceMap, 3)
	assert.Equal(t, SourceUser, sourceMap["order"].Source)
	assert.Equal(t, SourceUser, sourceMap["model.smoothing"].Source)
	assert.Equal(t, "/home/user/.langkit/am.toml", sourceMap["model.nested.deep"].Path)
}

func TestFlattenSettingsWithSources(t *testing.T) {
	settings := map[string]interface{}{
		"model": map[string]interface{}{
			"k":         1.0,
			"smoothing": "laplace",
		},
		"counter": map[string]interface{}{
			"order": 3,
		},
	}

	t.Run("sources and order", func(t *testing.T) {
		sourceMap := map[string]SourceInfo{
			"model.smoothing": {Source: SourceProject, Path: "/work/am.toml"},
		}
		in := &ConfigIntrospection{}
		flattenSettingsWithSources(settings, "", in, sourceMap)

		require.Len(t, in.Settings, 3)
		assert.Equal(t, "counter.order", in.Settings[0].Key)
		assert.Equal(t, "model.k", in.Settings[1].Key)
		assert.Equal(t, SourceDefault, in.Settings[1].Source)
		assert.Equal(t, "built-in default", in.Settings[1].SourcePath)
		assert.Equal(t, SourceProject, in.Settings[2].Source)
		assert.Equal(t, "laplace", in.Settings[2].Value)
	})

	t.Run("environment override", func(t *testing.T) {
		t.Setenv("LANGKIT_COUNTER_ORDER", "5")
		in := &ConfigIntrospection{}
		flattenSettingsWithSources(settings, "", in, map[string]SourceInfo{
			"counter.order": {Source: SourceUser, Path: "/home/user/.langkit/am.toml"},
		})

		assert.Equal(t, SourceEnvironment, in.Settings[0].Source)
		assert.Equal(t, "LANGKIT_COUNTER_ORDER", in.Settings[0].SourcePath)
	})
}

func TestGetConfigIntrospection(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "am.toml"), []byte("[corpus]\ntokenizer = \"words\"\n"), 0o644))

	in, err := GetConfigIntrospection()
	require.NoError(t, err)

	bySetting := map[string]SettingInfo{}
	for _, s := range in.Settings {
		bySetting[s.Key] = s
	}
	require.Contains(t, bySetting, "corpus.tokenizer")
	assert.Equal(t, SourceProject, bySetting["corpus.tokenizer"].Source)
	assert.Equal(t, "words", bySetting["corpus.tokenizer"].Value)
	assert.Equal(t, SourceDefault, bySetting["counter.backend"].Source)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "LANGKIT_MODEL_CACHE_SIZE", EnvKey("model.cache_size"))
}
