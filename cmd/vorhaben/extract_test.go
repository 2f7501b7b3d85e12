package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/offenesjena/vorhaben"
	main "github.com/offenesjena/vorhaben/cmd/vorhaben"
	"github.com/offenesjena/vorhaben/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const savedPage = `<html><body>
<div id="content_neu_detail"><h1>Radweg Saalbahnhof</h1><p>Neubau eines Radwegs</p></div>
<div class="tab_panel_helper">
	<p>Der Radweg verbindet Nord und Zentrum.</p>
	<h3>Affected area</h3>
	<p>Jena-Nord</p>
	<h3>Sonstiges</h3>
	<p>verworfen</p>
</div>
<ul class="link_box_left"><li><a href="/de/412000" title="Beschluss">Beschluss</a></li></ul>
</body></html>`

func extractDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     stderr,
		Parser:     goquery.NewParser(goquery.WithBaseURL("http://www.jena.de/de/")),
		Classifier: vorhaben.DefaultClassifier(),
	}
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the record of a saved page", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "411977.html")
		require.NoError(t, os.WriteFile(path, []byte(savedPage), 0644))
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := (&main.ExtractCmd{File: path}).Run(extractDeps(stdout, stderr))

		require.NoError(t, err)

		var rec struct {
			ID       string              `json:"id"`
			Title    string              `json:"title"`
			Sections map[string][]string `json:"sections"`
			Links    []vorhaben.Link     `json:"links"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &rec))
		assert.Equal(t, "411977", rec.ID)
		assert.Equal(t, "Radweg Saalbahnhof", rec.Title)
		assert.Equal(t, []string{"Der Radweg verbindet Nord und Zentrum."}, rec.Sections["Introduction"])
		assert.Equal(t, []string{"Jena-Nord"}, rec.Sections["Affected area"])
		assert.Len(t, rec.Sections, 2)
		assert.Equal(t, []vorhaben.Link{{Title: "Beschluss", URL: "http://www.jena.de/de/412000"}}, rec.Links)
		assert.Contains(t, stderr.String(), `unrecognized heading: "Sonstiges"`)
	})

	t.Run("uses explicit id", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte(savedPage), 0644))
		stdout := &bytes.Buffer{}

		err := (&main.ExtractCmd{File: path, ID: "1"}).Run(extractDeps(stdout, &bytes.Buffer{}))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"id": "1"`)
	})

	t.Run("fails for pages without intro region", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "1.html")
		require.NoError(t, os.WriteFile(path, []byte("<html><body></body></html>"), 0644))
		stderr := &bytes.Buffer{}

		err := (&main.ExtractCmd{File: path}).Run(extractDeps(&bytes.Buffer{}, stderr))

		require.Error(t, err)
		assert.Equal(t, vorhaben.EINVALID, vorhaben.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
