package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"pantryctl/internal/data/models"
)

// PackageInfo bundles everything the info view shows for one package.
type PackageInfo struct {
	Details *models.Package `json:"details"`
	Bottles []models.Bottle `json:"bottles,omitempty"`
	Reviews []models.Review `json:"reviews,omitempty"`
}

// ConsoleSink renders catalog data for humans (text) or machines (json).
type ConsoleSink struct {
	writer io.Writer
	format string // "text", "json"
	mu     sync.Mutex
}

func NewConsoleSink(w io.Writer, format string) (*ConsoleSink, error) {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("unsupported console format: %s", format)
	}
	return &ConsoleSink{writer: w, format: format}, nil
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}

	if err := s.writeText(v); err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}

var (
	headline = color.New(color.Bold)
	accent   = color.New(color.FgCyan)
	faint    = color.New(color.Faint)
	stars    = color.New(color.FgYellow)
)

func (s *ConsoleSink) writeText(v any) error {
	switch t := v.(type) {
	case PackageInfo:
		if err := s.writeText(t.Details); err != nil {
			return err
		}
		if len(t.Bottles) > 0 {
			if _, err := headline.Fprintln(s.writer, "Bottles:"); err != nil {
				return err
			}
			if err := s.writeText(t.Bottles); err != nil {
				return err
			}
		}
		if len(t.Reviews) > 0 {
			if _, err := headline.Fprintln(s.writer, "Reviews:"); err != nil {
				return err
			}
			if err := s.writeText(t.Reviews); err != nil {
				return err
			}
		}
		return nil
	case *models.Package:
		if t == nil {
			return nil
		}
		if _, err := headline.Fprintf(s.writer, "%s", t.FullName); err != nil {
			return err
		}
		if _, err := accent.Fprintf(s.writer, " v%s\n", t.Version); err != nil {
			return err
		}
		if t.ShortDescription != "" {
			if _, err := fmt.Fprintf(s.writer, "  %s\n", t.ShortDescription); err != nil {
				return err
			}
		}
		if t.Homepage != "" {
			if _, err := faint.Fprintf(s.writer, "  %s\n", t.Homepage); err != nil {
				return err
			}
		}
		if _, err := faint.Fprintf(s.writer, "  %d installs", t.Installs); err != nil {
			return err
		}
		if t.Maintainer != "" {
			if _, err := faint.Fprintf(s.writer, ", maintained by %s", t.Maintainer); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(s.writer)
		return err
	case []models.Package:
		for i := range t {
			p := &t[i]
			if _, err := accent.Fprintf(s.writer, "%-40s", p.FullName); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(s.writer, " %-12s", p.Version); err != nil {
				return err
			}
			if _, err := faint.Fprintf(s.writer, " %d installs\n", p.Installs); err != nil {
				return err
			}
		}
		return nil
	case []models.Bottle:
		for _, b := range t {
			if _, err := fmt.Fprintf(s.writer, "  %s/%s %s\n", b.Platform, b.Arch, b.Version); err != nil {
				return err
			}
		}
		return nil
	case []models.Review:
		for _, r := range t {
			rating := min(max(r.Rating, 0), 5)
			if _, err := stars.Fprintf(s.writer, "  %s%s", strings.Repeat("*", rating), strings.Repeat(".", 5-rating)); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(s.writer, " %s", r.Title); err != nil {
				return err
			}
			if r.Comment != "" {
				if _, err := faint.Fprintf(s.writer, " - %s", r.Comment); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(s.writer); err != nil {
				return err
			}
		}
		return nil
	case []models.Post:
		for _, p := range t {
			if _, err := headline.Fprintf(s.writer, "%s", p.Title); err != nil {
				return err
			}
			if p.SubTitle != "" {
				if _, err := fmt.Fprintf(s.writer, " - %s", p.SubTitle); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(s.writer); err != nil {
				return err
			}
			if p.Link != "" {
				if _, err := faint.Fprintf(s.writer, "  %s\n", p.Link); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		// Unknown values are ignored in text mode.
		return nil
	}
}
