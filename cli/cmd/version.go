package cmd

import (
	"fmt"
	"strings"

	"github.com/ardnew/interp/pkg"
)

// Version prints the version of the command.
type Version struct {
	Short bool `help:"Print the version number only" short:"s"`
}

// Run executes the version command.
func (v *Version) Run(std *Streams) error {
	version := strings.TrimSpace(pkg.Version)

	if v.Short {
		_, err := fmt.Fprintln(std.Out, version)

		return err
	}

	_, err := fmt.Fprintf(std.Out, "%s %s\n", pkg.Name, version)

	return err
}
