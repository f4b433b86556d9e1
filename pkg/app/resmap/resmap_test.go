package resmap

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-assetprobe/internal/pipeline"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
	"github.com/deploymenttheory/go-assetprobe/pkg/app"
)

func testContext() *app.Context {
	ctx := app.NewContext()
	ctx.SetupLogger(io.Discard)
	return ctx
}

const sourceYAML = `publisher: 崩坏三
entries:
  - name: hero_tex
    container: assets/hero.png
    source: data/1234.wmv
    path_id: -42
    type: Texture2D
  - name: hero_tex_alt
    container: assets/hero_alt.png
    source: data/1234.wmv
    path_id: 9
    type: Texture2D
  - name: bgm_title
    container: audio/title.ogg
    source: data/5678.wmv
    path_id: 7
    type: AudioClip
`

func convertSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "bh3.yaml")
	out := filepath.Join(dir, "bh3.map")
	require.NoError(t, os.WriteFile(in, []byte(sourceYAML), 0o644))

	m, err := Convert(testContext(), &ConvertRequest{Input: in, Output: out}, pipeline.New(pipeline.Options{}).Publisher)
	require.NoError(t, err)
	assert.Equal(t, types.PublisherBH3, m.Publisher)
	assert.Len(t, m.Entries, 3)
	return out
}

func TestConvertAndShow(t *testing.T) {
	path := convertSample(t)

	resp, err := Show(testContext(), &ShowRequest{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "崩坏三", resp.Publisher)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, int64(-42), resp.Entries[0].PathID)
}

func TestShow_NameFilter(t *testing.T) {
	path := convertSample(t)

	resp, err := Show(testContext(), &ShowRequest{Path: path, Name: "hero_tex"})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "hero_tex", resp.Entries[0].Name)
	assert.Equal(t, "hero_tex_alt", resp.Entries[1].Name)

	resp, err = Show(testContext(), &ShowRequest{Path: path, Name: "nothing"})
	require.NoError(t, err)
	assert.Empty(t, resp.Entries)
	assert.Equal(t, 3, resp.Total)
}

func TestShow_Errors(t *testing.T) {
	_, err := Show(testContext(), &ShowRequest{})
	var ce *app.CommonError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, app.ErrCodeInvalidInput, ce.Code)

	_, err = Show(testContext(), &ShowRequest{Path: filepath.Join(t.TempDir(), "absent.map")})
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, app.ErrCodeFileAccess, ce.Code)
}

func TestConvert_UnknownPublisher(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(in, []byte("publisher: NoSuchGame\n"), 0o644))

	_, err := Convert(testContext(), &ConvertRequest{Input: in, Output: filepath.Join(dir, "out.map")}, pipeline.New(pipeline.Options{}).Publisher)
	var ce *app.CommonError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, app.ErrCodeUnsupportedPublisher, ce.Code)
}

func TestFormatOutput(t *testing.T) {
	resp, err := Show(testContext(), &ShowRequest{Path: convertSample(t)})
	require.NoError(t, err)

	var table bytes.Buffer
	require.NoError(t, FormatOutput(&table, resp, "table"))
	assert.Contains(t, table.String(), "assets/hero.png")
	assert.Contains(t, table.String(), "3 of 3 entries (publisher 崩坏三)")

	var yml bytes.Buffer
	require.NoError(t, FormatOutput(&yml, resp, "yaml"))
	assert.Contains(t, yml.String(), "path_id: -42")

	var js bytes.Buffer
	require.NoError(t, FormatOutput(&js, resp, "json"))
	assert.Contains(t, js.String(), `"container": "audio/title.ogg"`)

	assert.Error(t, FormatOutput(&bytes.Buffer{}, resp, "csv"))
}
