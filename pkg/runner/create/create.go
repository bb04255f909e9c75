package create

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/outline/pkg/app"
)

// Create stores a new, empty outline.
type Create struct {
	Service *app.Service
	// Name of the outline; a generated one is used when empty.
	Name string
	Out  io.Writer

	// Created is the name the outline was stored under.
	Created string
}

func (c *Create) Do(ctx context.Context) error {
	if c.Service == nil {
		return errors.New("can not create, no store")
	}
	name, err := c.Service.Create(ctx, c.Name)
	if err != nil {
		return err
	}
	c.Created = name

	out := c.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "created %s\n", color.New(color.Bold).Sprint(name))
	return nil
}
