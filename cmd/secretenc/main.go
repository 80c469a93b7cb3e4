// Command secretenc manages the encrypted JWT signing secret. It generates
// encryption keys, seals a plaintext secret into the AES-256-GCM container
// the server reads from JWT_SECRET_ENC, and opens a container to check a
// deployment round-trips correctly.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amirhosseinghanipour/taskdeck/internal/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "secretenc",
		Short:         "Encrypt and decrypt the JWT signing secret",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(genkeyCmd(), encryptCmd(), decryptCmd())
	return root
}

func genkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genkey",
		Short: "Generate a random 256-bit encryption key (hex)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key := make([]byte, 32)
			if _, err := rand.Read(key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(key))
			return nil
		},
	}
}

func encryptCmd() *cobra.Command {
	var keyHex string
	cmd := &cobra.Command{
		Use:   "encrypt <secret>",
		Short: "Seal a plaintext secret into the JWT_SECRET_ENC container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := keyHex
			if key == "" {
				key = os.Getenv("JWT_SECRET_KEY")
			}
			if key == "" {
				return fmt.Errorf("encryption key required (--key or JWT_SECRET_KEY)")
			}
			sealed, err := config.EncryptSecret(args[0], key)
			if err != nil {
				return err
			}
			// Round-trip check before anything gets deployed.
			opened, err := config.DecryptSecret(sealed, key)
			if err != nil {
				return fmt.Errorf("round-trip check failed: %w", err)
			}
			if opened != args[0] {
				return fmt.Errorf("round-trip check failed: decrypted value differs")
			}
			fmt.Fprintln(cmd.OutOrStdout(), sealed)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyHex, "key", "", "hex-encoded 256-bit encryption key")
	return cmd
}

func decryptCmd() *cobra.Command {
	var keyHex string
	cmd := &cobra.Command{
		Use:   "decrypt <container>",
		Short: "Open a JWT_SECRET_ENC container and print the secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := keyHex
			if key == "" {
				key = os.Getenv("JWT_SECRET_KEY")
			}
			if key == "" {
				return fmt.Errorf("encryption key required (--key or JWT_SECRET_KEY)")
			}
			secret, err := config.DecryptSecret(args[0], key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyHex, "key", "", "hex-encoded 256-bit encryption key")
	return cmd
}
