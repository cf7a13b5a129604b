package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andareed/siftly-digest/digest"
	"github.com/andareed/siftly-digest/logging"
)

func newCacheCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the backend response cache",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached backend response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Cache.Path
			if path == "" {
				return errors.New("no cache path configured")
			}
			c := digest.NewCache(path, a.cfg.Cache.TTL, a.cfg.Cache.MaxMemory)
			if err := c.Clear(); err != nil {
				return fmt.Errorf("clear cache %s: %w", path, err)
			}
			logging.Infof("cache cleared: %s", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared", path)
			return nil
		},
	})
	return cmd
}
