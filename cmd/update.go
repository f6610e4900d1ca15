package cmd

import (
	"fmt"
	"os"

	"github.com/gense-cli/gense/color"
	"github.com/gense-cli/gense/constant"
	"github.com/gense-cli/gense/icon"
	"github.com/gense-cli/gense/open"
	"github.com/gense-cli/gense/style"
	"github.com/gense-cli/gense/util"
	"github.com/gense-cli/gense/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.SetOut(os.Stdout)
	updateCmd.Flags().BoolP("open", "o", false, "Open the release page in the browser when a newer version exists")
}

// updateCmd checks the release registry for a newer application version.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer release is available",
	Long:  "Query the GitHub release registry for the latest stable version and compare it against the running build.",
	Run: func(cmd *cobra.Command, args []string) {
		erase := util.PrintErasable(fmt.Sprintf("%s Checking for updates...", icon.Get(icon.Progress)))
		latest, err := version.Latest()
		erase()
		handleErr(err)

		comp, err := version.Compare(latest, constant.Version)
		handleErr(err)

		if comp <= 0 {
			cmd.Printf("%s %s is up to date %s\n", icon.Get(icon.Success), constant.Gense, style.Bold(constant.Version))
			return
		}

		releaseURL := "https://github.com/gense-cli/gense/releases/tag/v" + latest

		cmd.Printf("%s New version is available %s %s\n%s\n",
			style.Fg(color.Green)("▇▇▇"),
			style.Bold(latest),
			style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
			style.Faint(releaseURL),
		)

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(releaseURL))
		}
	},
}
