package yaml_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/offenesjena/vorhaben"
	"github.com/offenesjena/vorhaben/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
indexUrl: http://www.jena.de/de/stadt_verwaltung/b_rger-services/vorhabenliste/411894?max=100
pageUrl: https://www.jena.de/de/
pagePattern: 'https?://www\.jena\.de/de/(\d+)'
concurrency: 4
timeout: 30s
userAgent: test-agent
maxBodySize: 1048576
output: out/VorhabenJena.json
db: snapshots.db
aliases:
  Letzter Beschluss zum Vorhaben: Last decision on the project
  Kosten: Costs if quantifiable
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads every setting", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.LoadFile(writeConfig(t, sampleConfig))

		require.NoError(t, err)
		assert.Equal(t, "https://www.jena.de/de/", cfg.PageURL)
		assert.True(t, strings.HasSuffix(cfg.IndexURL, "max=100"))
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, "test-agent", cfg.UserAgent)
		assert.Equal(t, int64(1<<20), cfg.MaxBodySize)
		assert.Equal(t, "out/VorhabenJena.json", cfg.Output)
		assert.Equal(t, "snapshots.db", cfg.DB)
		assert.Len(t, cfg.Aliases, 2)
	})

	t.Run("returns ErrConfigNotFound for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.True(t, errors.Is(err, yaml.ErrConfigNotFound))
	})

	t.Run("accepts an empty file", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.LoadFile(writeConfig(t, ""))

		require.NoError(t, err)
		assert.Equal(t, &yaml.Config{}, cfg)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadFile(writeConfig(t, "retries: 3\n"))

		require.Error(t, err)
		assert.Equal(t, vorhaben.EINVALID, vorhaben.ErrorCode(err))
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("fails when an explicit file is missing", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.ErrorIs(t, err, yaml.ErrConfigNotFound)
	})

	t.Run("reads an explicit file", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.Load(writeConfig(t, "concurrency: 2\n"))

		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Concurrency)
	})
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	path := yaml.DefaultPath()

	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "vorhaben", filepath.Base(filepath.Dir(path)))
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "negative concurrency", content: "concurrency: -1\n"},
		{name: "negative timeout", content: "timeout: -5s\n"},
		{name: "negative body size", content: "maxBodySize: -1\n"},
		{name: "pattern does not compile", content: "pagePattern: '(\\d+'\n"},
		{name: "pattern without capture group", content: "pagePattern: 'jena\\.de'\n"},
		{name: "alias to unknown section", content: "aliases:\n  Kosten: Preis\n"},
		{name: "alias to introduction", content: "aliases:\n  Einleitung: Introduction\n"},
		{name: "alias redefines separator", content: "aliases:\n  '-': Affected area\n"},
		{name: "aliases trim to the same heading", content: "aliases:\n  Kosten: Costs if quantifiable\n  ' Kosten ': Affected area\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := yaml.Parse([]byte(tt.content))

			require.Error(t, err)
			assert.Equal(t, vorhaben.EINVALID, vorhaben.ErrorCode(err))
		})
	}
}

func TestConfig_Classifier(t *testing.T) {
	t.Parallel()

	t.Run("maps configured aliases onto sections", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.Parse([]byte(sampleConfig))
		require.NoError(t, err)

		c, err := cfg.Classifier()
		require.NoError(t, err)

		got := c.Classify(vorhaben.Heading("Kosten"))
		assert.Equal(t, vorhaben.ClassStartsSection, got.Kind)
		assert.Equal(t, vorhaben.SectionCosts, got.Section)

		builtin := c.Classify(vorhaben.Heading("Affected area"))
		assert.Equal(t, vorhaben.SectionAffectedArea, builtin.Section)
	})

	t.Run("uses built-in headings without aliases", func(t *testing.T) {
		t.Parallel()

		c, err := (&yaml.Config{}).Classifier()

		require.NoError(t, err)
		assert.Same(t, vorhaben.DefaultClassifier(), c)
	})
}

func TestConfig_Pattern(t *testing.T) {
	t.Parallel()

	t.Run("returns nil without a pattern", func(t *testing.T) {
		t.Parallel()

		re, err := (&yaml.Config{}).Pattern()

		require.NoError(t, err)
		assert.Nil(t, re)
	})

	t.Run("compiles the configured pattern", func(t *testing.T) {
		t.Parallel()

		re, err := (&yaml.Config{PagePattern: `/de/(\d+)`}).Pattern()

		require.NoError(t, err)
		assert.Equal(t, []string{"/de/42", "42"}, re.FindStringSubmatch("http://x/de/42"))
	})
}
