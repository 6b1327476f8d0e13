package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lin-Jiong-HDU/skillscan/internal/core"
	"github.com/Lin-Jiong-HDU/skillscan/internal/core/rules"
	"github.com/Lin-Jiong-HDU/skillscan/internal/core/scanner"
	"github.com/Lin-Jiong-HDU/skillscan/internal/core/security"
	"github.com/Lin-Jiong-HDU/skillscan/internal/install"
	"github.com/Lin-Jiong-HDU/skillscan/internal/logging"
	"github.com/Lin-Jiong-HDU/skillscan/internal/report"
	"github.com/Lin-Jiong-HDU/skillscan/internal/storage"
)

const markdownWidth = 100

type scanOptions struct {
	jsonOnly   bool
	install    bool
	format     string
	noRender   bool
	configPath string
	debug      bool
}

func runScan(cmd *cobra.Command, opts *scanOptions, arg string) error {
	cfg, err := storage.InitConfig(opts.configPath)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	log := logging.New(cmd.ErrOrStderr(), opts.debug || cfg.Log.Debug)
	defer log.Sync()

	target, err := resolveTarget(arg)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	format := opts.format
	if format == "" {
		format = cfg.Report.Format
	}
	if !opts.jsonOnly && !validFormat(format) {
		return &exitError{code: 2, err: fmt.Errorf("unknown report format %q", format)}
	}

	registry := rules.Default()
	result, err := scanner.New(registry, &cfg.Scan, log).ScanPath(target)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	log.Debugw("scan finished", "path", target, "verdict", result.Verdict,
		"files", result.FileCount, "findings", len(result.Findings))

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	if opts.jsonOnly {
		if err := report.WriteJSON(stdout, result); err != nil {
			return &exitError{code: 2, err: err}
		}
	} else {
		if err := writeHumanReport(stdout, result, registry, format, cfg.Report.RenderMarkdown && !opts.noRender); err != nil {
			return &exitError{code: 2, err: err}
		}
		// machine-readable copy for an orchestrating agent
		if err := report.WriteJSON(stderr, result); err != nil {
			return &exitError{code: 2, err: err}
		}
	}

	if opts.install {
		status := stdout
		if opts.jsonOnly {
			status = stderr
		}
		if err := installGate(status, cfg, target, result, log); err != nil {
			return err
		}
	}

	if code := result.Verdict.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func resolveTarget(arg string) (string, error) {
	expanded, err := security.ExpandHome(arg)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", arg, err)
	}
	return abs, nil
}

func validFormat(format string) bool {
	switch format {
	case "text", "markdown", "sarif":
		return true
	}
	return false
}

func writeHumanReport(w io.Writer, result *core.ScanResult, registry *rules.Registry, format string, render bool) error {
	switch format {
	case "sarif":
		return report.WriteSARIF(w, result, registry, "skillscan", version)
	case "markdown":
		md := report.Markdown(result)
		if render {
			if r, err := report.NewMarkdownRenderer(markdownWidth); err == nil {
				md = r.Render(md)
			}
		}
		_, err := fmt.Fprint(w, md)
		return err
	default:
		_, err := fmt.Fprintln(w, report.NewTextRenderer().Render(result))
		return err
	}
}

// installGate installs SAFE skills and refuses everything else.
func installGate(w io.Writer, cfg *storage.Config, target string, result *core.ScanResult, log *zap.SugaredLogger) error {
	switch result.Verdict {
	case core.VerdictWarning:
		color.New(color.FgYellow, color.Bold).Fprintln(w, "\nInstallation aborted: WARNING findings detected.")
		fmt.Fprintln(w, "   Review the findings and copy the skill manually if they are acceptable.")
		return nil
	case core.VerdictDanger:
		color.New(color.FgRed, color.Bold).Fprintln(w, "\nInstallation refused: DANGER findings detected.")
		fmt.Fprintln(w, "   Installing this skill is not recommended.")
		return nil
	}

	src, err := install.ResolveSource(target, &cfg.Scan, log)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	defer src.Close()

	name, err := install.DetectName(src.Dir, src.FallbackName)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	dest, err := install.NewInstaller(cfg.Install.SkillsDir, log).Install(src.Dir, name)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	color.New(color.FgGreen, color.Bold).Fprintf(w, "\nInstalled: %s\n", dest)
	return nil
}
