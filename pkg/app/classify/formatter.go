package classify

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes classification results in the requested format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatTable(w io.Writer, response *Response) error {
	if len(response.Files) == 0 {
		fmt.Fprintln(w, "No files to classify.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "PATH\tFORMAT\tSIZE\tDETAIL\n")
	fmt.Fprintf(tw, "----\t------\t----\t------\n")
	for _, file := range response.Files {
		if file.Failed() {
			fmt.Fprintf(tw, "%s\t-\t-\t%s: %s\n", file.Path, file.ErrorCode, file.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", file.Path, file.Format, file.FormatSize(), detail(&file))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nPublisher: %s\n", response.Publisher)
	fmt.Fprintln(w, FormatSummary(response))
	return nil
}

func detail(file *FileResult) string {
	var out string
	add := func(s string) {
		if out != "" {
			out += ", "
		}
		out += s
	}
	if file.ZipEntries > 0 {
		add(fmt.Sprintf("%d zip entries", file.ZipEntries))
	}
	if file.MapEntries > 0 {
		add(fmt.Sprintf("%d mapped assets", file.MapEntries))
	}
	if file.Fingerprint != "" {
		add("blake3 " + file.Fingerprint[:16])
	}
	return out
}

func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a one-line summary of a run
func FormatSummary(response *Response) string {
	total := len(response.Files)
	summary := fmt.Sprintf("Classified %d file", total)
	if total != 1 {
		summary += "s"
	}

	formats := make([]string, 0, len(response.Counts))
	for format := range response.Counts {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	for i, format := range formats {
		if i == 0 {
			summary += ":"
		} else {
			summary += ","
		}
		summary += fmt.Sprintf(" %d %s", response.Counts[format], format)
	}

	if response.Failed > 0 {
		summary += fmt.Sprintf(" (%d failed)", response.Failed)
	}
	return summary + fmt.Sprintf(" in %v", response.Elapsed)
}
