package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/anvil/internal/version"
	"github.com/arthur-debert/anvil/pkg/anvilfile"
	"github.com/arthur-debert/anvil/pkg/config"
	"github.com/arthur-debert/anvil/pkg/core"
	"github.com/arthur-debert/anvil/pkg/errors"
	"github.com/arthur-debert/anvil/pkg/filesystem"
	"github.com/arthur-debert/anvil/pkg/logging"
	"github.com/arthur-debert/anvil/pkg/prompt"
	"github.com/arthur-debert/anvil/pkg/style"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		noColor   bool
	)

	rootCmd := &cobra.Command{
		Use:   "anvil",
		Short: "Generate projects from filesystem templates",
		Long: `anvil materializes new project directories from template repositories:
directory names, file names, and file contents are rendered against a set
of context variables, guided by a small anvil.yaml file in the template.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add all commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInitCmd(&noColor))
	rootCmd.AddCommand(newShowCmd(&noColor))
	rootCmd.AddCommand(newGenconfigCmd(&noColor))

	return rootCmd
}

// outputFormat resolves the display format for stdout, honoring --no-color.
func outputFormat(noColor bool) style.Format {
	if noColor {
		return style.FormatText
	}
	return style.FormatAuto.Resolve(os.Stdout)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("anvil version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func newInitCmd(noColor *bool) *cobra.Command {
	var (
		vars     []string
		varsFile string
		noInput  bool
		force    bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "init <input-path> [output-path]",
		Short: "Generate a project from a template repository",
		Long: `Init expands the template repository at input-path into a new project
directory under output-path, defaulting to the current directory.

Context values come from your user configuration and the template's
anvil.yaml, overridden by --vars-file, --var, and interactive prompts.`,
		Args: cobra.RangeArgs(1, 2),
		Example: `  # Generate into the current directory
  anvil init ~/templates/pylib

  # Generate into a target directory with an override
  anvil init ~/templates/pylib ~/src --var project_name=mylib

  # Preview without writing
  anvil init ~/templates/pylib --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath := ""
			if len(args) > 1 {
				outputPath = args[1]
			}

			// Prompting needs a terminal on stdin
			var prompter prompt.Prompter
			if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				prompter = prompt.NewTerminal()
			}

			result, err := core.Generate(core.GenerateOptions{
				InputPath:  args[0],
				OutputPath: outputPath,
				Vars:       vars,
				VarsFile:   varsFile,
				NoInput:    noInput,
				Force:      force,
				DryRun:     dryRun,
				Prompter:   prompter,
			})
			if err != nil {
				log.Debug().Str("code", string(errors.GetErrorCode(err))).Msg("Generation failed")
				return err
			}

			out := cmd.OutOrStdout()
			format := outputFormat(*noColor)
			renderer := style.NewRenderer(format)
			fmt.Fprintln(out, renderer.RenderSummary(style.Summary{
				Title:      result.Title,
				ProjectDir: result.ProjectDir,
				Dirs:       result.Dirs,
				Files:      result.Files,
				DryRun:     result.DryRun,
			}))

			if result.Epilog != "" {
				md := style.NewMarkdownRenderer()
				fmt.Fprintln(out)
				fmt.Fprintln(out, strings.TrimRight(md.Render(result.Epilog, format), "\n"))
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Set a context variable as key=value (repeatable)")
	cmd.Flags().StringVar(&varsFile, "vars-file", "", "YAML file with context variables")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Never prompt, use defaults and overrides as-is")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing project directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the generated tree without writing")

	return cmd
}

func newShowCmd(noColor *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <input-path>",
		Short: "Show template metadata",
		Long: `Show displays a template repository's title, description, arrangement,
context variable defaults, and epilog without generating anything.`,
		Args: cobra.ExactArgs(1),
		Example: `  # Inspect a template before generating from it
  anvil show ~/templates/pylib`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := filesystem.NewOS()

			inputRoot, err := core.ResolveInput(fsys, args[0])
			if err != nil {
				return err
			}

			af, err := anvilfile.Load(fsys, inputRoot)
			if err != nil {
				return err
			}

			format := outputFormat(*noColor)
			md := style.NewMarkdownRenderer()

			title := af.Title
			if title == "" {
				title = filepath.Base(inputRoot)
			}

			info := style.TemplateInfo{
				Title:       title,
				Arrangement: string(af.Arrangement()),
				TemplateDir: af.TemplateDir(),
			}
			if af.Description != "" {
				info.Description = strings.TrimRight(md.Render(af.Description, format), "\n")
			}
			if af.Epilog != "" {
				info.Epilog = strings.TrimRight(md.Render(af.Epilog, format), "\n")
			}

			names := make([]string, 0, len(af.ContextVars))
			for name := range af.ContextVars {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				info.Defaults = append(info.Defaults,
					style.Default{Name: name, Value: af.ContextVars[name]})
			}

			fmt.Fprintln(cmd.OutOrStdout(), style.NewRenderer(format).RenderTemplateInfo(info))
			return nil
		},
	}
}

func newGenconfigCmd(noColor *bool) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: "Print a starter user configuration",
		Long: `Genconfig prints a commented user configuration with the default
values. With --write it is saved to the user config path unless a file
already exists there.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.genconfig")

			content, err := config.GenerateConfigContent()
			if err != nil {
				return err
			}

			if !write {
				logger.Debug().Msg("Outputting config to stdout")
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			path := config.Path()
			if _, err := os.Stat(path); err == nil {
				logger.Warn().Str("path", path).Msg("Config file already exists, skipping")
				msg := fmt.Sprintf("Config file already exists at %s", path)
				if outputFormat(*noColor) == style.FormatTerminal {
					msg = style.WarningStyle.Render(msg)
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to write config to %s: %w", path, err)
			}

			logger.Info().Str("path", path).Msg("Written config file")
			fmt.Fprintf(cmd.OutOrStdout(), "Written %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Write the config to the user config path")

	return cmd
}
