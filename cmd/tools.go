package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"rapstation/config"
	"rapstation/services/admin"
	"rapstation/services/obfuscation"

	"github.com/spf13/cobra"
)

func newRevealCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "reveal <opaque>...",
		Short: "Decrypt obfuscated customer fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				key = config.AppConfig.ObfuscationKey
			}
			if key == "" {
				return errors.New("no key: pass --key or set OBFUSCATION_KEY")
			}
			out := cmd.OutOrStdout()
			for _, opaque := range args {
				if plain := obfuscation.Reveal(opaque, key); plain != "" {
					fmt.Fprintln(out, plain)
				} else {
					fmt.Fprintf(out, "%s (could not reveal)\n", opaque)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "obfuscation key (defaults to OBFUSCATION_KEY)")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}
			hash, err := admin.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
