// Package cmd implements the elements CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (inspect, simulate, version).
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/elements/cmd/elements/internal/config"
	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/log"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "elements",
	Short: "elements - lifecycle-managed components for Go",
	Long: `elements defines components from YAML manifests and drives them through
their lifecycle in an in-memory document.

Use "elements <command> --help" for more information about a command.`,
	Usage: "elements <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// globalOptions are the flags accepted before the command name.
type globalOptions struct {
	logLevel string
	verbose  bool
}

// Execute runs the CLI with the given arguments.
func Execute() error {
	args := os.Args[1:]

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	var opts globalOptions
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version":
			if len(filteredArgs) == 0 {
				printVersion()
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			opts.verbose = true
		case "--log-level":
			if i+1 < len(args) {
				opts.logLevel = args[i+1]
				i++
			} else {
				return fmt.Errorf("--log-level requires a level")
			}
		default:
			if strings.HasPrefix(arg, "--log-level=") {
				opts.logLevel = strings.TrimPrefix(arg, "--log-level=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	if err := setupLogging(opts); err != nil {
		return err
	}
	defer log.Logger().Sync()

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

// setupLogging installs the runtime logger from flags, falling back to
// elements.yaml when run inside a module.
func setupLogging(opts globalOptions) error {
	level, verbose := opts.logLevel, opts.verbose
	if root, err := config.FindProjectRoot(); err == nil {
		if cfg, err := config.LoadOptional(root); err == nil {
			if level == "" {
				level = cfg.Log.Level
			}
			verbose = verbose || cfg.Log.Verbose
		}
	}
	if level == "" {
		level = "warn"
	}

	logger, err := log.New(level, verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	log.SetLogger(logger)
	errors.SetHandler(&errors.LogHandler{Verbose: verbose})
	return nil
}

func printVersion() {
	fmt.Printf("elements CLI version %s (built %s)\n", Version, BuildTime)
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println("  --log-level LEVEL    Log level (debug, info, warn, error)")
	fmt.Println("  --verbose            Development logging with stack traces")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  elements.yaml        Optional file next to go.mod (manifest, prefix, log)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  elements inspect                     Show declaration tables")
	fmt.Println("  elements simulate scenario.yaml      Run a lifecycle scenario")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
