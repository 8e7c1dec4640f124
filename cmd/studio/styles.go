package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/hyperreal-character-studio/pkg/domain"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List styles, armor and environment options",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Styles:")
		for _, s := range domain.Styles() {
			fmt.Fprintf(out, "  %s\n", s)
		}
		fmt.Fprintln(out, "Armor:")
		for _, a := range domain.ArmorOptions() {
			fmt.Fprintf(out, "  %s\n", a)
		}
		fmt.Fprintln(out, "Environments:")
		for _, e := range domain.EnvironmentOptions() {
			fmt.Fprintf(out, "  %s\n", e)
		}
	},
}
