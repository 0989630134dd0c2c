// Package export renders the history log and its summary as JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/models"
	"github.com/julianstephens/tinywins/internal/summary"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml, case-insensitively. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q, expected json or yaml", s)
}

// Document is the exported view of the history log.
type Document struct {
	App        string              `json:"app" yaml:"app"`
	ExportedAt string              `json:"exportedAt" yaml:"exportedAt"`
	Range      string              `json:"range" yaml:"range"`
	Start      string              `json:"start,omitempty" yaml:"start,omitempty"`
	End        string              `json:"end,omitempty" yaml:"end,omitempty"`
	Points     []models.ChartPoint `json:"points" yaml:"points"`
	Totals     models.Totals       `json:"totals" yaml:"totals"`
}

// Build aggregates entries for req. An empty Range exports every entry.
func Build(entries []models.Entry, req summary.Request, now time.Time) Document {
	doc := Document{
		App:        constants.AppName,
		ExportedAt: now.UTC().Format(constants.TimestampFormat),
	}

	if req.Range == "" {
		doc.Range = "all"
		req = summary.Request{Range: summary.Custom}
	} else {
		doc.Range = string(req.Range)
		if start, end, ok := req.Bounds(now); ok {
			doc.Start = start.Format(constants.DateFormat)
			doc.End = end.Format(constants.DateFormat)
		}
	}

	doc.Points = summary.Aggregate(entries, req, now)
	doc.Totals = summary.Summarize(doc.Points)
	return doc
}

// Write encodes doc to w.
func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported export format %q", format)
}
