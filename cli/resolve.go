package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sliverarmory/tether"
	"github.com/sliverarmory/tether/forward"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <library> <export>",
		Short: "Resolve one export from the system directory copy of a library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			library, export := args[0], args[1]
			r := a.resolver()
			out := cmd.OutOrStdout()

			entry, err := r.Resolve(library, export)
			if err != nil {
				return printFailure(out, err)
			}
			path, err := r.LibraryPath(library)
			if err != nil {
				return printFailure(out, err)
			}

			line := fmt.Sprintf("%s %s!%s @ %s", styleOK.Render("ok"), path, export, entry)
			if b, ok := forward.Lookup(export); ok && strings.EqualFold(b.Library, library) {
				line += fmt.Sprintf(" (%d args)", b.Arity)
			}
			fmt.Fprintln(out, line)
			return nil
		},
	}
}

func printFailure(out io.Writer, err error) error {
	f := tether.AsFailure(err)
	fmt.Fprintf(out, "%s %s\n", styleFail.Render(f.Kind.String()), f.Message())
	return err
}
