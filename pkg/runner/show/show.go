package show

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/checklist"
	"tableflip.dev/outline/pkg/printers"
	"tableflip.dev/outline/pkg/render"
	"tableflip.dev/outline/pkg/serializer"
)

// Show prints one stored outline.
type Show struct {
	Service *app.Service
	Name    string
	// JSON prints the persisted form instead of the decorated outline.
	JSON   bool
	Layout render.Layout
	Width  int
	Out    io.Writer
}

func (s *Show) out() io.Writer {
	if s.Out == nil {
		return color.Output
	}
	return s.Out
}

func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not show, no store")
	}
	doc, err := s.Service.Load(ctx, s.Name)
	if err != nil {
		return err
	}

	if s.JSON {
		data, err := serializer.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.out(), string(data))
		return err
	}

	pp := printers.PrettyPrint{Layout: s.Layout, Width: s.Width, Out: s.out()}
	pp.NewLine()
	pp.Title(s.Name, checklist.Compute(doc))
	pp.Outline(doc)
	return nil
}
