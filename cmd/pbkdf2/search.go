package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mxk/go-pbkdf2/v2/pbkdf2"
	"github.com/spf13/cobra"
)

func (a *app) searchCmd() *cobra.Command {
	var (
		pf       paramFlags
		salt     string
		key      string
		envName  string
		duration time.Duration
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Finds the iteration count of a key derived with 'derive --time'",
		Long: `Re-runs time-based derivation until the password reproduces the given key,
then prints the iteration count. The key is given in the output encoding and
its length sets the derived key length.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pf.resolve(cmd.Flags(), a.cfg)
			if err != nil {
				return err
			}
			s, err := p.saltEnc.Decode(salt)
			if err != nil {
				return fmt.Errorf("salt: %w", err)
			}
			want, err := p.output.Decode(key)
			if err != nil {
				return fmt.Errorf("key: %w", err)
			}
			if len(want) == 0 {
				return fmt.Errorf("key: required")
			}
			pass, err := readPassword(cmd, envName)
			if err != nil {
				return err
			}
			defer pbkdf2.Zero(pass)

			kdf, err := pbkdf2.NewWithPRF(p.prf, pass, s, len(want))
			if err != nil {
				return err
			}
			a.log.Debug("searching", "prf", p.prf.Name(), "key_length", len(want), "time", duration)
			dk, err := kdf.Search(duration, func(dk []byte) error {
				if bytes.Equal(dk, want) {
					return pbkdf2.KeyFound
				}
				return nil
			})
			if err != nil {
				return err
			}
			pbkdf2.Zero(dk)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), kdf.Iters())
			return err
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVarP(&salt, "salt", "s", "", "Salt value in the salt encoding")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Previously derived key in the output encoding")
	cmd.Flags().StringVar(&envName, "password-env", "", "Read the password from this environment variable")
	cmd.Flags().DurationVarP(&duration, "time", "t", 5*time.Second, "CPU time limit")
	return cmd
}
