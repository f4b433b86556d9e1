// Package resmap shows and converts persisted resource maps.
package resmap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-assetprobe/internal/resourcemap"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
	"github.com/deploymenttheory/go-assetprobe/pkg/app"
)

// ShowRequest selects entries from a map file
type ShowRequest struct {
	Path string
	// Name keeps only entries whose name contains it
	Name string
}

// Response holds the selected entries
type Response struct {
	Publisher string              `json:"publisher" yaml:"publisher"`
	Total     int                 `json:"total" yaml:"total"`
	Entries   []resourcemap.Entry `json:"entries" yaml:"entries"`
}

// Show loads a map file and filters its entries
func Show(ctx *app.Context, req *ShowRequest) (*Response, error) {
	if req.Path == "" {
		return nil, app.NewError(app.ErrCodeInvalidInput, "map file is required", nil)
	}

	store := resourcemap.NewStore()
	m, err := store.Load(req.Path)
	if err != nil {
		return nil, app.WrapError("failed to load resource map", err)
	}
	ctx.Log("loaded resource map", "path", req.Path, "entries", len(m.Entries))

	resp := &Response{Publisher: m.Publisher.DisplayName(), Total: len(m.Entries), Entries: []resourcemap.Entry{}}
	if req.Name != "" {
		if e, ok := store.Lookup(req.Name); ok {
			resp.Entries = append(resp.Entries, e)
		}
		for _, e := range m.Entries {
			if e.Name != req.Name && strings.Contains(e.Name, req.Name) {
				resp.Entries = append(resp.Entries, e)
			}
		}
		return resp, nil
	}
	resp.Entries = m.Entries
	return resp, nil
}

// ConvertRequest turns a YAML description into a map file
type ConvertRequest struct {
	Input  string
	Output string
}

type yamlMap struct {
	Publisher string              `yaml:"publisher"`
	Entries   []resourcemap.Entry `yaml:"entries"`
}

// Convert reads a YAML map and writes it in the binary map format.
// The publisher may be a display name or an ASCII identifier.
func Convert(ctx *app.Context, req *ConvertRequest, resolve func(string) (types.PublisherID, error)) (*resourcemap.Map, error) {
	if req.Input == "" || req.Output == "" {
		return nil, app.NewError(app.ErrCodeInvalidInput, "input and output files are required", nil)
	}

	data, err := os.ReadFile(req.Input)
	if err != nil {
		return nil, app.WrapError("failed to read input", err)
	}
	var src yamlMap
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, app.NewError(app.ErrCodeMalformedConfig, "invalid resource map yaml", err)
	}

	m := &resourcemap.Map{Publisher: types.PublisherNormal, Entries: src.Entries}
	if src.Publisher != "" {
		if m.Publisher, err = resolve(src.Publisher); err != nil {
			return nil, app.WrapError("unknown publisher in resource map", err)
		}
	}

	store := resourcemap.NewStore()
	store.Replace(m)
	if err := store.Save(req.Output, store.Current()); err != nil {
		return nil, app.WrapError("failed to write resource map", err)
	}
	ctx.Log("wrote resource map", "path", req.Output, "entries", len(src.Entries))
	return store.Current(), nil
}

// FormatOutput writes entries in the requested format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(response)
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "NAME\tTYPE\tPATH ID\tCONTAINER\tSOURCE\n")
		for _, e := range response.Entries {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", e.Name, e.Type, e.PathID, e.Container, e.Source)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%d of %d entries (publisher %s)\n", len(response.Entries), response.Total, response.Publisher)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
