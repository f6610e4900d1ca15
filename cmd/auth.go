package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/gense-cli/gense/auth"
	"github.com/gense-cli/gense/color"
	"github.com/gense-cli/gense/icon"
	"github.com/gense-cli/gense/provider"
	"github.com/gense-cli/gense/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func completionProviderNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	names := lo.Map(provider.GetAll(), func(p *provider.Provider, _ int) string {
		return p.Name
	})

	return names, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd serves as the parent command for managing provider credentials.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage provider credentials stored in the system keyring",
	Long: `Manage the bearer tokens that authenticated providers attach to their API requests.
Tokens are stored in the operating system keyring, never in the configuration file.`,
}

func init() {
	authCmd.AddCommand(authSetCmd)
}

// authSetCmd stores a bearer token for a provider.
var authSetCmd = &cobra.Command{
	Use:               "set [provider]",
	Short:             "Store a bearer token for the specified provider",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionProviderNames,
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		if _, ok := provider.Get(name); !ok {
			handleErr(fmt.Errorf("unknown provider: %s", name))
		}

		var token string
		prompt := &survey.Password{
			Message: fmt.Sprintf("Token for %s", name),
		}
		handleErr(survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)))

		handleErr(auth.SetToken(name, token))
		fmt.Printf(
			"%s stored token for %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(name),
		)
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

// authDeleteCmd removes a provider's stored bearer token.
var authDeleteCmd = &cobra.Command{
	Use:               "delete [provider]",
	Short:             "Remove the stored bearer token for the specified provider",
	Aliases:           []string{"remove"},
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionProviderNames,
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		handleErr(auth.DeleteToken(name))
		fmt.Printf(
			"%s deleted token for %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(name),
		)
	},
}
