package stackaudit

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stackaudit/stackaudit/internal/artifacts"
	"github.com/stackaudit/stackaudit/internal/audit"
	"github.com/stackaudit/stackaudit/internal/config"
	"github.com/stackaudit/stackaudit/internal/engine"
	"github.com/stackaudit/stackaudit/internal/gitmeta"
	"github.com/stackaudit/stackaudit/internal/profiles"
	"github.com/stackaudit/stackaudit/internal/report"
	"github.com/stackaudit/stackaudit/internal/rules"
	"github.com/stackaudit/stackaudit/internal/tui"
	"github.com/stackaudit/stackaudit/internal/types"
	"github.com/stackaudit/stackaudit/internal/update"
)

var (
	flagPath          string
	flagProfiles      string
	flagExclude       []string
	flagMaxFileSize   int64
	flagWorkers       int
	flagFormat        string
	flagFailOn        string
	flagInteractive   bool
	flagBaseline      string
	flagWriteBaseline string
	flagRegistryImage string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Detect stacks and scan for secrets and misconfigurations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagProfiles, "profiles", "", "force these profiles instead of auto-detection (comma-separated IDs)")
	cmd.Flags().StringArrayVar(&flagExclude, "exclude", nil, "exclude glob (repeatable)")
	cmd.Flags().Int64Var(&flagMaxFileSize, "max-file-size", 0, "skip files larger than this (bytes, 0 = default 1MiB)")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "worker count (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "output format: table | text | json | sarif")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "only fail on findings at or above this severity")
	cmd.Flags().BoolVar(&flagInteractive, "interactive", false, "browse findings in an interactive TUI")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "suppress findings recorded in this baseline file")
	cmd.Flags().StringVar(&flagWriteBaseline, "write-baseline", "", "write current findings to this baseline file and exit")
	cmd.Flags().StringVar(&flagRegistryImage, "registry-image", "", "also scan the config of this remote container image")
}

func runScan(cmd *cobra.Command, args []string) error {
	abs, err := filepath.Abs(scanRoot(args))
	if err != nil {
		return err
	}

	// Config precedence: CLI > repo-local file > global file.
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}
	fcfg := gcfg.Merge(lcfg)

	format := pickString(flagFormat, fcfg.Format)
	if format == "" {
		format = "table"
	}
	switch format {
	case "table", "text", "json", "sarif":
	default:
		return fmt.Errorf("unknown format %q (want table, text, json or sarif)", format)
	}

	forced, err := forcedProfiles(pickString(flagProfiles, profilesValue(fcfg.Profiles)))
	if err != nil {
		return err
	}

	reg, err := rules.Default()
	if err != nil {
		return fmt.Errorf("rule catalog: %w", err)
	}

	ecfg := engine.Config{
		Root:         abs,
		Profiles:     forced,
		ExcludeGlobs: append(append([]string{}, fcfg.Exclude...), flagExclude...),
		MaxFileSize:  pickInt64(flagMaxFileSize, fcfg.MaxFileSize),
		Workers:      pickInt(flagWorkers, fcfg.Workers),
		NoCache:      pickBool(flagNoCache, fcfg.NoCache),
	}

	human := format == "table" || format == "text"
	if human && !flagNoUpdateCheck {
		if latest, newer, _ := update.Check(version, false); newer && latest != "" {
			fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'stackaudit update' to upgrade\n", latest)
		}
	}

	var scanned atomic.Int64
	if human {
		fmt.Fprintf(os.Stderr, "Scanning %s with %d rules...\n", abs, len(reg.All()))
		ecfg.Progress = func() {
			if n := scanned.Add(1); n%50 == 0 {
				fmt.Fprintf(os.Stderr, "\rscanned %d files", n)
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := engine.Scan(ctx, ecfg, reg)
	if err != nil {
		return err
	}
	if human && scanned.Load() >= 50 {
		fmt.Fprintln(os.Stderr)
	}

	if flagRegistryImage != "" {
		active := map[types.ProfileID]bool{}
		for _, p := range res.Profiles {
			active[p] = true
		}
		fs, ws, err := artifacts.ScanImageEnv(flagRegistryImage, reg.RulesFor(active))
		if err != nil {
			res.Warnings = append(res.Warnings, types.Warning{Path: flagRegistryImage, Reason: err.Error()})
		} else {
			res.Findings = append(res.Findings, fs...)
			res.Warnings = append(res.Warnings, ws...)
		}
	}

	baselinePath := pickString(flagBaseline, fcfg.Baseline)
	if baselinePath != "" {
		base, err := report.LoadBaseline(baselinePath)
		if err != nil {
			return fmt.Errorf("load baseline %s: %w", baselinePath, err)
		}
		res.Findings = report.FilterNew(res.Findings, base)
	}

	rep := report.Summarize(res)

	// Best-effort history; a read-only tree must not fail the scan.
	_ = audit.NewLog(abs).Append(audit.NewRecord(abs, rep))

	if flagWriteBaseline != "" {
		if err := report.SaveBaseline(flagWriteBaseline, rep.Findings); err != nil {
			return fmt.Errorf("write baseline: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Baseline written to %s (%d findings).\n", flagWriteBaseline, rep.Total)
		return nil
	}

	if flagInteractive && human {
		if err := tui.Run(rep.Findings); err != nil {
			return err
		}
	} else {
		noColor := pickBool(flagNoColor, fcfg.NoColor)
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			noColor = true
		}
		opts := report.PrintOptions{NoColor: noColor}
		switch format {
		case "json":
			meta := resolveMeta(abs)
			if err := report.WriteJSON(os.Stdout, rep, meta); err != nil {
				return err
			}
		case "sarif":
			if err := report.WriteSARIF(os.Stdout, rep.Findings, version); err != nil {
				return err
			}
		case "text":
			report.Render(os.Stdout, rep, opts)
		default:
			report.RenderTable(os.Stdout, rep, opts)
		}
	}

	failOn := pickString(flagFailOn, fcfg.FailOn)
	if failOn != "" {
		if !types.Severity(failOn).Known() {
			return fmt.Errorf("unknown --fail-on severity %q", failOn)
		}
		if report.ShouldFail(rep.Findings, types.Severity(failOn)) {
			os.Exit(1)
		}
		return nil
	}
	if code := report.ExitCode(rep); code != 0 {
		os.Exit(code)
	}
	return nil
}

// scanRoot resolves the directory to scan. A positional argument wins over
// the --path flag.
func scanRoot(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return flagPath
}

// forcedProfiles parses a comma-separated profile list into engine config
// form. An empty list means auto-detection; unknown IDs are an error.
func forcedProfiles(list string) ([]types.ProfileID, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	active, unknown := profiles.Parse(list)
	if len(unknown) > 0 {
		var known []string
		for _, p := range profiles.All() {
			known = append(known, string(p.ID))
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown profile(s) %s (known: %s)",
			strings.Join(unknown, ", "), strings.Join(known, ", "))
	}
	ids := make([]types.ProfileID, 0, len(active))
	for id := range active {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func profilesValue(list []string) *string {
	if len(list) == 0 {
		return nil
	}
	s := strings.Join(list, ",")
	return &s
}

func resolveMeta(root string) *report.Meta {
	info := gitmeta.Resolve(root)
	if info.Repo == "" && info.Commit == "" && info.Branch == "" {
		return nil
	}
	return &report.Meta{Repo: info.Repo, Commit: info.Commit, Branch: info.Branch}
}
