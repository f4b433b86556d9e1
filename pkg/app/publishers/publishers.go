// Package publishers lists the supported publishers and their cipher shapes.
package publishers

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-assetprobe/internal/cipher"
	"github.com/deploymenttheory/go-assetprobe/internal/transform"
	"github.com/deploymenttheory/go-assetprobe/pkg/app"
)

// Request selects publishers; an empty Name lists all of them.
type Request struct {
	Name string
}

// Info describes one publisher
type Info struct {
	ID           int    `json:"id" yaml:"id"`
	Ident        string `json:"ident" yaml:"ident"`
	Name         string `json:"name" yaml:"name"`
	Cipher       string `json:"cipher" yaml:"cipher"`
	BlockCapable bool   `json:"block_capable" yaml:"block_capable"`
	Transform    bool   `json:"builtin_transform" yaml:"builtin_transform"`
}

// Response holds publishers in registration order
type Response struct {
	Publishers []Info `json:"publishers" yaml:"publishers"`
}

// Handle lists publishers from the default registry
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	return HandleWith(ctx, cipher.Default(), req)
}

// HandleWith lists publishers from registry
func HandleWith(ctx *app.Context, registry *cipher.Registry, req *Request) (*Response, error) {
	table := transform.DefaultTable()
	describe := func(cfg cipher.Config) Info {
		id := cfg.Publisher()
		_, builtin := table.Lookup(id)
		return Info{
			ID:           int(id),
			Ident:        id.Ident(),
			Name:         cfg.Name(),
			Cipher:       cfg.Kind().String(),
			BlockCapable: cipher.IsBlockCapable(id),
			Transform:    builtin,
		}
	}

	if req.Name != "" {
		cfg, ok := registry.LookupByName(req.Name)
		if !ok {
			return nil, app.NewError(app.ErrCodeUnsupportedPublisher,
				fmt.Sprintf("unknown publisher %q\n%s", req.Name, registry.Supported()), cipher.ErrUnsupportedPublisher)
		}
		return &Response{Publishers: []Info{describe(cfg)}}, nil
	}

	list := registry.List()
	resp := &Response{Publishers: make([]Info, 0, len(list))}
	for _, cfg := range list {
		resp.Publishers = append(resp.Publishers, describe(cfg))
	}
	ctx.Log("listed publishers", "count", len(resp.Publishers))
	return resp, nil
}

// FormatOutput writes the publisher list in the requested format
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
		fmt.Fprintf(tw, "ID\tIDENT\tNAME\tCIPHER\tBLOCK\tTRANSFORM\n")
		for _, p := range response.Publishers {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Ident, p.Name, p.Cipher, yesNo(p.BlockCapable), yesNo(p.Transform))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
