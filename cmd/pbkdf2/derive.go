package main

import (
	"fmt"
	"time"

	"github.com/mxk/go-pbkdf2/v2/pbkdf2"
	"github.com/spf13/cobra"
)

func (a *app) deriveCmd() *cobra.Command {
	var (
		pf       paramFlags
		salt     string
		envName  string
		duration time.Duration
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derives a key from a password and salt",
		Long: `Derives a key from a password and salt and prints it in the output encoding.

With --time, the iteration count is chosen by running the derivation for the
given amount of CPU time. The count reached is printed on standard error and
must be kept to derive the same key again.`,
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
			pass, err := readPassword(cmd, envName)
			if err != nil {
				return err
			}
			defer pbkdf2.Zero(pass)

			start := time.Now()
			var dk []byte
			if duration > 0 {
				kdf, err := pbkdf2.NewWithPRF(p.prf, pass, s, p.keyLength)
				if err != nil {
					return err
				}
				dk = kdf.Derive(duration)
				fmt.Fprintf(cmd.ErrOrStderr(), "iterations: %d\n", kdf.Iters())
				p.iterations = kdf.Iters()
			} else {
				a.log.Debug("deriving key", "prf", p.prf.Name(), "iterations", p.iterations,
					"key_length", p.keyLength, "salt_length", len(s), "workers", p.workers)
				if dk, err = pbkdf2.DeriveKeyParallel(cmd.Context(), p.prf, pass, s,
					p.iterations, p.keyLength, p.workers); err != nil {
					return err
				}
			}
			defer pbkdf2.Zero(dk)
			a.log.Info("key derived", "prf", p.prf.Name(), "iterations", p.iterations,
				"elapsed", time.Since(start))

			out, err := p.output.Encode(dk)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVarP(&salt, "salt", "s", "", "Salt value in the salt encoding")
	cmd.Flags().StringVar(&envName, "password-env", "", "Read the password from this environment variable")
	cmd.Flags().DurationVarP(&duration, "time", "t", 0, "Choose the iteration count by CPU time instead of --iterations")
	return cmd
}
