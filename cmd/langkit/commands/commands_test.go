package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/langkit/align"
	"github.com/teranos/langkit/am"
	"github.com/teranos/langkit/errors"
	langkittest "github.com/teranos/langkit/internal/testing"
)

// run executes the CLI with args in an isolated HOME and working
// directory and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{
		Use:               "langkit",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: Setup,
	}
	root.PersistentFlags().CountP("verbose", "v", "")
	root.PersistentFlags().Bool("json", false, "")
	Register(root)
	resetFlags(root)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// resetFlags restores every flag in the tree to its default, since the
// command values are package globals shared between runs.
func resetFlags(c *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	am.Reset()
	t.Cleanup(am.Reset)

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestCount(t *testing.T) {
	isolate(t)
	path := langkittest.WriteCorpus(t, "the cat sat", "the cat ran")

	for _, backend := range []string{"trie", "hash"} {
		t.Run(backend, func(t *testing.T) {
			out, err := run(t, "", "count", path, "--json",
				"--backend", backend, "--order", "2",
				"--lookup", "the cat", "--lookup", "cat sat", "--lookup", "dog")
			require.NoError(t, err)

			res := decode[countResult](t, out)
			assert.Equal(t, backend, res.Backend)
			assert.Equal(t, 2, res.Order)
			assert.Equal(t, 2, res.Sentences)
			assert.Equal(t, 8, res.Ngrams)
			assert.Empty(t, res.RunID)
			require.Len(t, res.Lookups, 3)
			assert.Equal(t, lookupResult{Ngram: "the cat", Count: 2}, res.Lookups[0])
			assert.Equal(t, lookupResult{Ngram: "cat sat", Count: 1}, res.Lookups[1])
		})
	}

	t.Run("table output", func(t *testing.T) {
		out, err := run(t, "", "count", path, "--order", "1", "--lookup", "cat")
		require.NoError(t, err)
		assert.Contains(t, out, "sentences")
		assert.Contains(t, out, "cat")
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := run(t, "", "count", path, "--backend", "btree")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidRequestError(err))
		assert.NotEmpty(t, errors.GetAllHints(err))
	})

	t.Run("missing corpus", func(t *testing.T) {
		_, err := run(t, "", "count", filepath.Join(t.TempDir(), "missing.txt"))
		assert.Error(t, err)
	})
}

func TestSaveLookupReplay(t *testing.T) {
	isolate(t)
	path := langkittest.WriteCorpus(t, "the cat sat", "the cat ran")
	db := langkittest.CreateTestDBFile(t)

	out, err := run(t, "", "count", path, "--json", "--order", "2", "--save", "--db", db)
	require.NoError(t, err)
	saved := decode[countResult](t, out)
	require.NotEmpty(t, saved.RunID)

	t.Run("lookup", func(t *testing.T) {
		out, err := run(t, "", "lookup", saved.RunID, "the", "cat", "--db", db)
		require.NoError(t, err)
		assert.Equal(t, "2\n", out)

		out, err = run(t, "", "lookup", saved.RunID, "cat dog", "--db", db)
		require.NoError(t, err)
		assert.Equal(t, "0\n", out)
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := run(t, "", "lookup", "no-such-run", "the", "--db", db)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("runs", func(t *testing.T) {
		out, err := run(t, "", "db", "runs", "--json", "--db", db)
		require.NoError(t, err)
		runs := decode[[]map[string]interface{}](t, out)
		require.Len(t, runs, 1)
		assert.Equal(t, saved.RunID, runs[0]["id"])
		assert.Equal(t, "trie", runs[0]["backend"])
		assert.EqualValues(t, 2, runs[0]["sentences"])
	})

	t.Run("replay into hash", func(t *testing.T) {
		out, err := run(t, "", "db", "replay", saved.RunID, "--json",
			"--backend", "hash", "--lookup", "the cat", "--db", db)
		require.NoError(t, err)
		res := decode[map[string]interface{}](t, out)
		assert.Equal(t, "hash", res["backend"])
		assert.EqualValues(t, 8, res["ngrams"])
		lookups := res["lookups"].([]interface{})
		require.Len(t, lookups, 1)
		assert.EqualValues(t, 2, lookups[0].(map[string]interface{})["count"])
	})
}

func TestExport(t *testing.T) {
	isolate(t)
	path := langkittest.WriteCorpus(t, "a b", "a")

	t.Run("to file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "model.arpa")
		out, err := run(t, "", "export", path, "-o", target, "--order", "2", "--smoothing", "mle")
		require.NoError(t, err)
		assert.Contains(t, out, "vocabulary")

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		text := string(data)
		assert.True(t, strings.HasPrefix(text, "\\data\\\n"), text)
		assert.Contains(t, text, "ngram 1=")
		assert.Contains(t, text, "\\2-grams:")
		assert.True(t, strings.HasSuffix(text, "\\end\\\n"), text)
	})

	t.Run("to stdout", func(t *testing.T) {
		out, err := run(t, "", "export", path, "--order", "1")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "\\data\\\n"), out)
		assert.NotContains(t, out, "\\2-grams:")
	})

	t.Run("perplexity", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "model.arpa")
		heldOut := langkittest.WriteCorpus(t, "a b")
		out, err := run(t, "", "export", path, "-o", target, "--json", "--perplexity", heldOut)
		require.NoError(t, err)
		res := decode[exportResult](t, out)
		assert.Equal(t, "laplace", res.Smoothing)
		assert.Equal(t, 2, res.Sentences)
		require.NotNil(t, res.Perplexity)
		assert.Greater(t, *res.Perplexity, 1.0)
	})
}

func TestClassify(t *testing.T) {
	isolate(t)
	en := langkittest.WriteCorpus(t, "the house is big", "the cat is small", "the dog is in the house")
	de := langkittest.WriteCorpus(t, "das haus ist gross", "die katze ist klein", "der hund ist im haus")

	manifest := filepath.Join(t.TempDir(), "classes.toml")
	require.NoError(t, os.WriteFile(manifest, []byte(
		"[[class]]\nlabel = \"en\"\npath = \""+en+"\"\n\n"+
			"[[class]]\nlabel = \"de\"\npath = \""+de+"\"\n"), 0o644))

	t.Run("stdin json", func(t *testing.T) {
		out, err := run(t, "the house\n\ndas haus ist klein\n", "classify", "--manifest", manifest, "--json")
		require.NoError(t, err)

		results := decode[[]classification](t, out)
		require.Len(t, results, 2, "empty lines are skipped")
		assert.Equal(t, "en", results[0].Label)
		assert.Equal(t, "de", results[1].Label)

		require.Len(t, results[0].Scores, 2)
		assert.Equal(t, "en", results[0].Scores[0].Label)
		assert.InDelta(t, 1.0, results[0].Scores[0].Posterior+results[0].Scores[1].Posterior, 1e-9)
		assert.Greater(t, results[0].Scores[0].Posterior, results[0].Scores[1].Posterior)
		assert.NotNil(t, results[0].Scores[0].LogProb)
	})

	t.Run("record longer than 64 KiB", func(t *testing.T) {
		long := strings.TrimSpace(strings.Repeat("the house ", 10000))
		out, err := run(t, long+"\n", "classify", "--manifest", manifest, "--json")
		require.NoError(t, err)

		results := decode[[]classification](t, out)
		require.Len(t, results, 1)
		assert.Equal(t, "en", results[0].Label)
	})

	t.Run("file table", func(t *testing.T) {
		input := langkittest.WriteCorpus(t, "der hund")
		out, err := run(t, "", "classify", "-m", manifest, input)
		require.NoError(t, err)
		assert.Contains(t, out, "der hund")
		assert.Contains(t, out, "de")
	})

	t.Run("manifest required", func(t *testing.T) {
		_, err := run(t, "", "classify")
		assert.Error(t, err)
	})
}

func TestAlign(t *testing.T) {
	isolate(t)
	src := langkittest.WriteCorpus(t, "das haus", "das buch", "ein buch")
	tgt := langkittest.WriteCorpus(t, "the house", "the book", "a book")

	for _, backend := range []string{"trie", "hash"} {
		t.Run(backend, func(t *testing.T) {
			out, err := run(t, "", "align", src, tgt, "--backend", backend, "--json")
			require.NoError(t, err)

			entries := decode[[]align.Entry](t, out)
			require.Len(t, entries, 4)
			assert.Equal(t, align.Entry{Source: "buch", Target: "book", Probability: 0.5}, entries[0])
			assert.Equal(t, align.Entry{Source: "das", Target: "the", Probability: 0.5}, entries[1])
			assert.Equal(t, "ein", entries[2].Source)
		})
	}

	t.Run("min filter", func(t *testing.T) {
		out, err := run(t, "", "align", src, tgt, "--min", "0.6")
		require.NoError(t, err)
		assert.NotContains(t, out, "das")
	})
}

func TestAm(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "", "am", "show", "--format", "json")
	require.NoError(t, err)
	cfg := decode[am.Config](t, out)
	assert.Equal(t, "trie", cfg.Counter.Backend)

	out, err = run(t, "", "am", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[counter]")

	out, err = run(t, "", "am", "get", "counter.order")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	_, err = run(t, "", "am", "get", "counter.nope")
	assert.True(t, errors.IsNotFoundError(err))

	_, err = run(t, "", "am", "set", "counter.order", "4")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".langkit", "am.toml"))

	out, err = run(t, "", "am", "get", "counter.order")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	out, err = run(t, "", "am", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	out, err = run(t, "", "am", "where")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration cascade")
	assert.Contains(t, out, "counter.order")

	_, err = run(t, "", "am", "show", "--format", "xml")
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "version", "--json")
	require.NoError(t, err)
	info := decode[map[string]string](t, out)
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}
