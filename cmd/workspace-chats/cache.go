// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the extracted-chat cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List state databases with a cached snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache(loadConfig().Cache)
		if err != nil {
			return err
		}
		defer c.Close()

		keys, err := c.Keys()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, k := range keys {
			entry, ok, err := c.Get(k)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(out, "%s  (unreadable)\n", k)
				continue
			}
			fmt.Fprintf(out, "%s  %d chats  updated %s\n", k, len(entry.Chats), entry.LastUpdated.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintf(out, "\n%d cached\n", len(keys))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache(loadConfig().Cache)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.AddCommand(cacheCmd)
}
