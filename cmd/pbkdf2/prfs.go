package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/mxk/go-pbkdf2/v2/pbkdf2"
	"github.com/spf13/cobra"
)

func (a *app) prfsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prfs",
		Short: "Lists the supported pseudorandom functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBLOCK\tDEFAULT")
			for _, name := range pbkdf2.PRFs() {
				prf, err := pbkdf2.LookupPRF(name)
				if err != nil {
					return err
				}
				mac, err := prf.New(nil)
				if err != nil {
					return err
				}
				def := ""
				if name == pbkdf2.DefaultPRF {
					def = "*"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, mac.Size(), def)
			}
			return w.Flush()
		},
	}
}
