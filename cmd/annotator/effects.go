package main

import (
	"fmt"
	"io"
	"os"

	"github.com/example/annotator/internal/effects"
)

// effectsCmd lists the effect specs accepted by -effects.
type effectsCmd struct {
	*root
	out io.Writer
}

func (c *effectsCmd) Run() error {
	w := c.out
	if w == nil {
		w = os.Stdout
	}
	for _, s := range effects.Specs {
		if _, err := fmt.Fprintf(w, "%-44s %s\n", s.Example, s.Description); err != nil {
			return err
		}
	}
	return nil
}
