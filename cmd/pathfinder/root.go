package pathfinder

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/pathfinder/internal/version"
	"github.com/arthur-debert/pathfinder/pkg/cobrax/topics"
	"github.com/arthur-debert/pathfinder/pkg/config"
	"github.com/arthur-debert/pathfinder/pkg/diagnostics"
	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/filemanager"
	"github.com/arthur-debert/pathfinder/pkg/locations"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/paths"
	"github.com/arthur-debert/pathfinder/pkg/pattern"
	"github.com/arthur-debert/pathfinder/pkg/ui"
)

// globalOptions holds the flags shared by every command
type globalOptions struct {
	verbosity  int
	configFile string
	format     string
}

// pathFlag binds a command line flag to a path option
type pathFlag struct {
	name   string
	short  string
	option locations.Option
	usage  string
	// repeat flags may be given several times; their values are joined
	repeat bool
}

// pathFlags are applied in this order, so boot class path fragments
// compose the way they do on a compiler command line
var pathFlags = []pathFlag{
	{name: "class-path", option: locations.OptClassPath, usage: MsgFlagClassPath},
	{name: "source-path", option: locations.OptSourcePath, usage: MsgFlagSourcePath},
	{name: "processor-path", option: locations.OptProcessorPath, usage: MsgFlagProcPath},
	{name: "module-path", short: "p", option: locations.OptModulePath, usage: MsgFlagModulePath},
	{name: "upgrade-module-path", option: locations.OptUpgradeModulePath, usage: MsgFlagUpgradePath},
	{name: "processor-module-path", option: locations.OptProcessorModulePath, usage: MsgFlagProcModPath},
	{name: "module-source-path", option: locations.OptModuleSourcePath, usage: MsgFlagModSrcPath, repeat: true},
	{name: "system", option: locations.OptSystem, usage: MsgFlagSystem},
	{name: "patch-module", option: locations.OptPatchModule, usage: MsgFlagPatch, repeat: true},
	{name: "class-output", short: "d", option: locations.OptClassOutput, usage: MsgFlagClassOut},
	{name: "source-output", short: "s", option: locations.OptSourceOutput, usage: MsgFlagSourceOut},
	{name: "header-output", option: locations.OptHeaderOutput, usage: MsgFlagHeaderOut},
	{name: "boot-class-path", option: locations.OptBootClassPath, usage: MsgFlagBootPath},
	{name: "bootclasspath-prepend", option: locations.OptBootPrepend, usage: MsgFlagBootPrepend},
	{name: "bootclasspath-append", option: locations.OptBootAppend, usage: MsgFlagBootAppend},
	{name: "extdirs", option: locations.OptExtDirs, usage: MsgFlagExtDirs},
	{name: "endorseddirs", option: locations.OptEndorsedDirs, usage: MsgFlagEndorsed},
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "pathfinder",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	for _, f := range pathFlags {
		if f.repeat {
			flags.StringArrayP(f.name, f.short, nil, f.usage)
		} else {
			flags.StringP(f.name, f.short, "", f.usage)
		}
	}
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "query",
		Title: "QUERIES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPathsCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newFindCmd(opts))
	rootCmd.AddCommand(newModulesCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		topicOpts := topics.Options{Extensions: []string{".md"}, Renderer: topics.NewGlamourRenderer()}
		if err := topics.InitializeWithOptions(rootCmd, sub, topicOpts); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// normalizeFlagName accepts the compiler spellings of path flags
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "cp", "classpath":
		name = "class-path"
	case "sourcepath":
		name = "source-path"
	case "processorpath":
		name = "processor-path"
	case "bootclasspath":
		name = "boot-class-path"
	}
	return pflag.NormalizedName(name)
}

// session is the state one command runs against
type session struct {
	cfg   *config.Config
	fm    *filemanager.Manager
	diags *diagnostics.Collector
}

// newSession loads the configuration, creates the file manager and
// applies the path flags set on cmd
func newSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	logger := logging.GetLogger("cli")

	loaded, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	config.Initialize(loaded)
	cfg := config.Get()

	p, err := paths.New(cfg.System.Home)
	if err != nil {
		return nil, err
	}
	if p.SystemHome() == "" {
		logger.Info().Msg(strings.TrimSpace(MsgFallbackHome))
	} else if p.UsedFallback() {
		logger.Info().Str("home", p.SystemHome()).Msg("Using the platform home of the executable")
	}

	fmOpts, err := cfg.FileManagerOptions(p.SystemHome())
	if err != nil {
		return nil, err
	}
	diags := diagnostics.NewCollector()
	fmOpts.Sink = diags
	if opts.verbosity > 0 {
		fmOpts.Sink = diagnostics.Multi{diags, diagnostics.LogSink{}}
	}
	fm := filemanager.New(fmOpts)

	if err := applyPathFlags(cmd.Flags(), fm); err != nil {
		_ = fm.Close()
		return nil, err
	}
	return &session{cfg: cfg, fm: fm, diags: diags}, nil
}

// applyPathFlags hands every path flag that was set to the file manager
func applyPathFlags(flags *pflag.FlagSet, fm *filemanager.Manager) error {
	for _, f := range pathFlags {
		if !flags.Changed(f.name) {
			continue
		}
		var value string
		if f.repeat {
			values, err := flags.GetStringArray(f.name)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid flag").WithDetail("flag", f.name)
			}
			value = strings.Join(values, pattern.Delimiter)
		} else {
			v, err := flags.GetString(f.name)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid flag").WithDetail("flag", f.name)
			}
			value = v
		}
		log.Debug().Str("option", string(f.option)).Str("value", value).Msg("Applying path option")
		if _, err := fm.HandleOption(string(f.option), value); err != nil {
			return err
		}
	}
	return nil
}

// run executes fn against a fresh session, then reports the diagnostics
// gathered on the way to stderr
func run(cmd *cobra.Command, opts *globalOptions, fn func(s *session, r ui.Renderer) error) error {
	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	s, err := newSession(cmd, opts)
	if err != nil {
		return err
	}
	defer func() { _ = s.fm.Close() }()

	runErr := fn(s, renderer)

	styled := false
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		styled = ui.DetectFormat(f) == ui.FormatTerminal
	}
	if err := ui.RenderDiagnostics(cmd.ErrOrStderr(), styled, ui.NewDiagnosticViews(s.diags.All())); err != nil {
		log.Warn().Err(err).Msg("Failed to print diagnostics")
	}
	return runErr
}
