package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/lyricmidi/alignment"
	"github.com/spf13/cobra"
)

var diffOut string

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().StringVarP(&diffOut, "out", "o", "", "also write the differences to this file")
}

var diffCmd = &cobra.Command{
	Use:   "diff <alignment.csv>",
	Short: "Prints the time between consecutive word ends",
	Long: `Reads a start,end,word CSV and prints end-start for the first row, then
each row's end minus the previous row's end.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deltas, err := alignment.DifferencesFile(args[0])
		if err != nil {
			return err
		}
		result := fmt.Sprint(deltas)
		fmt.Fprintln(cmd.OutOrStdout(), result)
		if diffOut != "" {
			return os.WriteFile(diffOut, []byte(result), 0o644)
		}
		return nil
	},
}
