package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <file> <amount> <currency>",
	Short: "Add a new transaction to the file",
	Long: `Append a transaction record to a fixed-width file.

The new record gets the next transaction counter, is inserted immediately
before the footer, and any aggregate fields (record count, control sum) are
updated to match.

Example:
  fixedfile add statements.txt 500.00 USD`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := fileStore(cmd, args[0]).Add(args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("Successfully added a new transaction.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
