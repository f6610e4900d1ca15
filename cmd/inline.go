package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/gense-cli/gense/filesystem"
	"github.com/gense-cli/gense/inline"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/provider"
	"github.com/gense-cli/gense/query"
	"github.com/gense-cli/gense/source"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute for program discovery")
	inlineCmd.Flags().StringP("program", "p", "", "Criteria for selecting a specific program from the search results")
	inlineCmd.Flags().StringP("url", "u", "", "Resolve a watch-page URL directly instead of searching")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("resolve", "r", false, "Execute stream resolution to include playable format URLs in the output")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	inlineCmd.MarkFlagsMutuallyExclusive("query", "url")

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Program selectors:
  first - first program in the list
  last - last program in the list
  [number] - select program by index (starting from 0)
  @[substring]@ - select the first program whose title contains the substring

When using the json flag the program selector can be omitted. That way, every found program is included.`,

	Example: "  gense inline -q matador -p first -r\n  gense inline -u https://www.dr.dk/drtv/se/matador_123 -r -j",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("query") && !cmd.Flags().Changed("url") {
			handleErr(errors.New("either --query or --url is required"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			sources []source.Source
			program *source.Program
			err     error
		)

		if pageURL := lo.Must(cmd.Flags().GetString("url")); pageURL != "" {
			program, err = provider.FromURL(pageURL)
			handleErr(err)
		} else {
			for _, name := range viper.GetStringSlice(key.DefaultSources) {
				if name == "" {
					handleErr(errors.New("source not set"))
				}

				p, ok := provider.Get(name)
				if !ok {
					handleErr(fmt.Errorf("source not found: %s", name))
				}

				src, err := p.Source()
				handleErr(err)

				sources = append(sources, src)
			}
		}

		searchQuery := lo.Must(cmd.Flags().GetString("query"))

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		programFlag := lo.Must(cmd.Flags().GetString("program"))
		programPicker := mo.None[inline.ProgramPicker]()
		if programFlag != "" {
			fn, err := inline.ParseProgramPicker(programFlag)
			handleErr(err)
			programPicker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:           writer,
			Sources:       sources,
			Json:          lo.Must(cmd.Flags().GetBool("json")),
			Query:         searchQuery,
			Program:       program,
			ProgramPicker: programPicker,
			Resolve:       lo.Must(cmd.Flags().GetBool("resolve")),
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates the JSON schema for structured inline mode output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for structured inline mode output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "program", "format", "subtitle", "resolution", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
