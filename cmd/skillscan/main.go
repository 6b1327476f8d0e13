package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// exitError carries the process exit status out of a command. A nil err
// means the status was already reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "skillscan <path>",
		Short: "Security scanner for agent skills",
		Long: `skillscan - statically scans an agent skill (a directory or a .skill/.zip
archive) for credential leaks, dangerous commands, exfiltration, prompt
injection, obfuscation and supply-chain risks.

Exit codes: 0 = SAFE, 1 = WARNING, 2 = DANGER or invalid input.

"rules" always runs the rules subcommand; scan a directory of that name
as ./rules.`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args[0])
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().BoolVar(&opts.jsonOnly, "json", false, "print only the JSON report")
	cmd.Flags().BoolVar(&opts.install, "install", false, "install the skill into the skills directory when the verdict is SAFE")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "human report format: text, markdown or sarif")
	cmd.Flags().BoolVar(&opts.noRender, "no-render", false, "print markdown reports without terminal rendering")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.skillscan/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(getRulesCommand())

	return cmd
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 2
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
