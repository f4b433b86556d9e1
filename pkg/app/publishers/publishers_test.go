package publishers

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-assetprobe/internal/types"
	"github.com/deploymenttheory/go-assetprobe/pkg/app"
)

func testContext() *app.Context {
	ctx := app.NewContext()
	ctx.SetupLogger(io.Discard)
	return ctx
}

func TestHandle_All(t *testing.T) {
	resp, err := Handle(testContext(), &Request{})
	require.NoError(t, err)
	require.Len(t, resp.Publishers, types.PublisherCount)

	first := resp.Publishers[0]
	assert.Equal(t, "Normal", first.Ident)
	assert.Equal(t, "正常", first.Name)
	assert.Equal(t, "Plain", first.Cipher)
	assert.False(t, first.BlockCapable)

	var block, builtin []string
	for _, p := range resp.Publishers {
		if p.BlockCapable {
			block = append(block, p.Ident)
		}
		if p.Transform {
			builtin = append(builtin, p.Ident)
		}
	}
	assert.ElementsMatch(t, []string{"BH3", "BH3Pre", "SR", "GIPack", "TOT", "ArknightsEndfield"}, block)
	assert.ElementsMatch(t, []string{"FakeHeader", "OPFP", "Nikke"}, builtin)
}

func TestHandle_ByName(t *testing.T) {
	resp, err := Handle(testContext(), &Request{Name: "bh3"})
	require.NoError(t, err)
	require.Len(t, resp.Publishers, 1)
	assert.Equal(t, int(types.PublisherBH3), resp.Publishers[0].ID)
	assert.Equal(t, "崩坏三", resp.Publishers[0].Name)

	_, err = Handle(testContext(), &Request{Name: "Unknown"})
	var ce *app.CommonError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, app.ErrCodeUnsupportedPublisher, ce.Code)
	assert.ErrorIs(t, err, types.ErrUnsupportedPublisher)
	assert.Contains(t, ce.Message, "Supported publishers:\n正常\n")
	assert.Contains(t, ce.Message, "崩坏三")
}

func TestFormatOutput(t *testing.T) {
	resp, err := Handle(testContext(), &Request{Name: "SR"})
	require.NoError(t, err)

	var table bytes.Buffer
	require.NoError(t, FormatOutput(&table, resp, "table"))
	lines := strings.Split(strings.TrimSpace(table.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "崩坏星穹铁道")
	assert.Contains(t, lines[1], "yes")

	var js bytes.Buffer
	require.NoError(t, FormatOutput(&js, resp, "json"))
	var decoded Response
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, resp, &decoded)

	var yml bytes.Buffer
	require.NoError(t, FormatOutput(&yml, resp, "yaml"))
	assert.Contains(t, yml.String(), "ident: SR")

	assert.Error(t, FormatOutput(&bytes.Buffer{}, resp, "csv"))
}
