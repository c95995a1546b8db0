package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setSelector string

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <file> <record-type> <field> <value>",
	Short: "Set a new value for a field in the file",
	Long: `Overwrite a field value in a fixed-width file.

Only the bytes of the addressed field change; every other byte of the file
is preserved. The file is replaced atomically, so an error leaves the
original untouched.

Example:
  fixedfile set statements.txt TRANSACTION amount 10.00 --selector 000003`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := fileStore(cmd, args[0]).Set(args[1], args[2], args[3], setSelector); err != nil {
			return err
		}
		fmt.Printf("Successfully set %s.%s to %q\n", args[1], args[2], args[3])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().StringVar(&setSelector, "selector", "", "Selector value to pick one record among several")
}
