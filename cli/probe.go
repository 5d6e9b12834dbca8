package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/sliverarmory/tether"
	"github.com/sliverarmory/tether/forward"
)

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Resolve every compiled-in binding and report which ones fail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.resolver()

			var (
				rows [][]string
				errs error
			)
			for _, b := range forward.Bindings() {
				entry, err := r.Resolve(b.Library, b.Export)
				if err != nil {
					f := tether.AsFailure(err)
					rows = append(rows, []string{b.String(), styleFail.Render(strconv.Itoa(f.Code())), f.Message()})
					errs = multierr.Append(errs, fmt.Errorf("%s: %w", b, err))
					continue
				}
				rows = append(rows, []string{b.String(), styleOK.Render("ok"), entry.String()})
			}

			renderTable(cmd.OutOrStdout(), []string{"BINDING", "STATUS", "DETAIL"}, rows)
			if n := len(multierr.Errors(errs)); n > 0 {
				return fmt.Errorf("%d of %d bindings failed: %w", n, len(rows), errs)
			}
			return nil
		},
	}
}

func newBindingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bindings",
		Short: "List the exports a proxy forwards",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			var rows [][]string
			for _, b := range forward.Bindings() {
				rows = append(rows, []string{b.Library, b.Export, strconv.Itoa(b.Arity)})
			}
			renderTable(cmd.OutOrStdout(), []string{"LIBRARY", "EXPORT", "ARGS"}, rows)
		},
	}
}
