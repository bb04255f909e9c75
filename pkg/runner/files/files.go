package files

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/outline/pkg/app"
)

// Files lists the stored outlines.
type Files struct {
	Service *app.Service
	// Stats adds line counts and checklist progress.
	Stats bool
	JSON  bool
	Out   io.Writer
}

type fileJSON struct {
	Name       string         `json:"name"`
	Path       string         `json:"path"`
	Lines      int            `json:"lines,omitempty"`
	Checkboxes int            `json:"checkboxes,omitempty"`
	Checked    int            `json:"checked,omitempty"`
	Tags       map[string]int `json:"tags,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func (f *Files) out() io.Writer {
	if f.Out == nil {
		return color.Output
	}
	return f.Out
}

func (f *Files) Do(ctx context.Context) error {
	if f.Service == nil {
		return errors.New("can not list, no store")
	}

	var infos []app.FileInfo
	if f.Stats || f.JSON {
		var err error
		if infos, err = f.Service.Infos(ctx); err != nil {
			return err
		}
	} else {
		names, err := f.Service.Names(ctx)
		if err != nil {
			return err
		}
		for _, n := range names {
			infos = append(infos, app.FileInfo{Name: n, Path: f.Service.Files.Path(n)})
		}
	}

	if f.JSON {
		return f.json(infos)
	}

	if len(infos) == 0 {
		faint := color.New(color.Faint, color.Italic)
		_, _ = faint.Fprintln(f.out(), " no documents")
		return nil
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	if f.Stats {
		tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Lines"), bold.Sprint("Done"), bold.Sprint("Tags"))
	} else {
		tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Path"))
	}
	for _, i := range infos {
		if !f.Stats {
			tbl.AddRow(i.Name, i.Path)
			continue
		}
		if i.Err != nil {
			tbl.AddRow(i.Name, color.RedString("unreadable"), "", "")
			continue
		}
		done := "-"
		if i.Stats.Checkboxes > 0 {
			done = fmt.Sprintf("%d/%d", i.Stats.Checked, i.Stats.Checkboxes)
		}
		tbl.AddRow(i.Name, i.Stats.Lines, done, strings.Join(i.Stats.TagNames(), ", "))
	}

	_, _ = fmt.Fprintln(f.out(), tbl)
	return nil
}

func (f *Files) json(infos []app.FileInfo) error {
	out := make([]fileJSON, 0, len(infos))
	for _, i := range infos {
		j := fileJSON{
			Name:       i.Name,
			Path:       i.Path,
			Lines:      i.Stats.Lines,
			Checkboxes: i.Stats.Checkboxes,
			Checked:    i.Stats.Checked,
			Tags:       i.Stats.Tags,
		}
		if i.Err != nil {
			j.Error = i.Err.Error()
		}
		out = append(out, j)
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.out(), string(b))
	return err
}
