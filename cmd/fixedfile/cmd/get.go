package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getSelector string

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <file> <record-type> <field>",
	Short: "Retrieve a field value from the file",
	Long: `Retrieve a field value from a fixed-width file.

When the file holds more than one record of the given type, --selector
picks the record by its selector field (the transaction counter in the
banking layout).

Example:
  fixedfile get statements.txt HEADER address
  fixedfile get statements.txt TRANSACTION amount --selector 000003`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := fileStore(cmd, args[0]).Get(args[1], args[2], getSelector)
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVar(&getSelector, "selector", "", "Selector value to pick one record among several")
}
