package main

import (
	"fmt"
	"time"

	"github.com/mxk/go-pbkdf2/v2/pbkdf2"
	"github.com/spf13/cobra"
)

func (a *app) calibrateCmd() *cobra.Command {
	var (
		pf       paramFlags
		duration time.Duration
	)
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Reports the iteration count reached in a given CPU time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if duration <= 0 {
				return fmt.Errorf("invalid duration %v", duration)
			}
			p, err := pf.resolve(cmd.Flags(), a.cfg)
			if err != nil {
				return err
			}
			kdf, err := pbkdf2.NewWithPRF(p.prf, []byte("calibration"), make([]byte, 16), p.keyLength)
			if err != nil {
				return err
			}
			a.log.Debug("calibrating", "prf", p.prf.Name(), "key_length", p.keyLength, "time", duration)
			start := time.Now()
			pbkdf2.Zero(kdf.Derive(duration))
			a.log.Info("calibration done", "iterations", kdf.Iters(), "elapsed", time.Since(start))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), kdf.Iters())
			return err
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().DurationVarP(&duration, "time", "t", time.Second, "CPU time to spend")
	return cmd
}
