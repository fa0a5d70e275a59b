package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	hashPasswordValue string
	hashPasswordCost  int
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for a credentials file entry",
	Long: `Hashes a password for the password_hash field of CREDENTIALS_FILE.
The password is taken from --password or, when omitted, from the first line of stdin.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := hashPasswordValue
		if password == "" {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
		if password == "" {
			return errors.New("password must not be empty")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), hashPasswordCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(hash))
		return nil
	},
}

func init() {
	hashPasswordCmd.Flags().StringVar(&hashPasswordValue, "password", "", "Password to hash (read from stdin when empty)")
	hashPasswordCmd.Flags().IntVar(&hashPasswordCost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")
}
