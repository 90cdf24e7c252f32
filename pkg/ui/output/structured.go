package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/ui"
	"github.com/arthur-debert/dotstow/pkg/workflow"
	"gopkg.in/yaml.v3"
)

// StatusView is the serialized form of a status report.
type StatusView struct {
	Root      string         `json:"root" yaml:"root"`
	Home      string         `json:"home" yaml:"home"`
	Conflicts []ConflictView `json:"conflicts" yaml:"conflicts"`
	Backups   []BackupView   `json:"backups" yaml:"backups"`
}

// ConflictView is one serialized conflict.
type ConflictView struct {
	Path          string `json:"path" yaml:"path"`
	Group         string `json:"group" yaml:"group"`
	Kind          string `json:"kind" yaml:"kind"`
	ForeignTarget string `json:"foreign_target,omitempty" yaml:"foreign_target,omitempty"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BackupView is one serialized backup set.
type BackupView struct {
	Index     int       `json:"index" yaml:"index"`
	Name      string    `json:"name" yaml:"name"`
	Path      string    `json:"path" yaml:"path"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewStatusView converts a report for serialization.
func NewStatusView(report *workflow.Report) StatusView {
	view := StatusView{
		Root:      report.Root,
		Home:      report.Home,
		Conflicts: []ConflictView{},
		Backups:   []BackupView{},
	}
	for _, record := range report.Conflicts {
		cv := ConflictView{
			Path:  record.Target.Path,
			Group: record.Target.Group,
			Kind:  string(record.Kind),
		}
		if record.IsLink() {
			cv.ForeignTarget = record.ForeignTarget
		}
		if record.Err != nil {
			cv.Error = record.Err.Error()
		}
		view.Conflicts = append(view.Conflicts, cv)
	}
	for i, set := range report.Backups {
		view.Backups = append(view.Backups, BackupView{
			Index:     i + 1,
			Name:      set.Name,
			Path:      set.Path,
			CreatedAt: set.Timestamp,
		})
	}
	return view
}

// WriteStructured writes v as JSON or YAML.
func WriteStructured(w io.Writer, format ui.Format, v interface{}) error {
	switch format {
	case ui.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON")
		}
		return nil
	case ui.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
		}
		return enc.Close()
	}
	return errors.Newf(errors.ErrInvalidInput, "format %s is not structured", format)
}
