package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Generate explicit secrets-store keys (base64) for the config file",
		Long: `Generate a random hash/block key pair for the local secrets store.
Without explicit keys the store derives them from the account password;
explicit keys keep the store readable after a password change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hash := make([]byte, 32)
			block := make([]byte, 32)
			if _, err := rand.Read(hash); err != nil {
				return err
			}
			if _, err := rand.Read(block); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "[secrets]")
			fmt.Fprintf(os.Stdout, "hash_key = %q\n", base64.StdEncoding.EncodeToString(hash))
			fmt.Fprintf(os.Stdout, "block_key = %q\n", base64.StdEncoding.EncodeToString(block))
			return nil
		},
	}
}
