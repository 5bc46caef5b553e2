package pathfinder

import (
	"embed"
	"strings"
)

// topicsFS holds the markdown help topics
//
//go:embed topics/*.md
var topicsFS embed.FS

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Resolve compiler search paths"
	MsgPathsShort     = "Show the entries of locations"
	MsgPathsLong      = "Show the resolved entries of each named location, or of every standard location."
	MsgListShort      = "List the files of a package"
	MsgFindShort      = "Find a file in a location"
	MsgModulesShort   = "Show the modules of a location"
	MsgGenConfigShort = "Print a commented configuration file"
	MsgGenConfigLong  = "Print the default configuration with every value commented out. With -w it is written to the user config file."
	MsgVersionShort   = "Print version information"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default is $XDG_CONFIG_HOME/pathfinder/pathfinder.toml)"
	MsgFlagFormat      = "Output format: auto, term, text, json, yaml or xml"
	MsgFlagKind        = "Comma separated file kinds: source, class, html, other"
	MsgFlagRecurse     = "Include sub-packages"
	MsgFlagFindKind    = "Treat NAME as a class name and look for this kind"
	MsgFlagWrite       = "Write to the user config file instead of stdout"
	MsgFlagClassPath   = "Class search path"
	MsgFlagSourcePath  = "Source search path"
	MsgFlagProcPath    = "Annotation processor search path"
	MsgFlagModulePath  = "Module search path"
	MsgFlagUpgradePath = "Upgrade module search path"
	MsgFlagProcModPath = "Annotation processor module search path"
	MsgFlagModSrcPath  = "Module source path pattern or module=path assignment (repeatable)"
	MsgFlagSystem      = "Platform home holding the module image, or none"
	MsgFlagPatch       = "Patch a module: module=path (repeatable)"
	MsgFlagClassOut    = "Class output directory"
	MsgFlagSourceOut   = "Generated source output directory"
	MsgFlagHeaderOut   = "Native header output directory"
	MsgFlagBootPath    = "Boot class path"
	MsgFlagBootPrepend = "Entries prepended to the boot class path"
	MsgFlagBootAppend  = "Entries appended to the boot class path"
	MsgFlagExtDirs     = "Extension directories"
	MsgFlagEndorsed    = "Endorsed directories"

	// Status messages
	MsgConfigWritten  = "Wrote %s\n"
	MsgFallbackHome   = "No platform home found; set PATHFINDER_HOME or --system\n"
	MsgVersionFormat  = "pathfinder version %s\n  commit: %s\n  built:  %s\n"
	MsgNoCommand      = "no command specified"
	MsgUnknownLocation = "unknown location %q"

	// Error messages
	MsgErrNotFound    = "%s not found in %s"
	MsgErrNoModule    = "no module %s in %s"
	MsgErrWriteConfig = "failed to write config"
	MsgErrKind        = "invalid --kind"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/find-long.txt
	msgFindLongRaw string
	MsgFindLong    = strings.TrimSpace(msgFindLongRaw)

	//go:embed msgs/modules-long.txt
	msgModulesLongRaw string
	MsgModulesLong    = strings.TrimSpace(msgModulesLongRaw)
)
