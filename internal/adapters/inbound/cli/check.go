package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	configAdapter "github.com/layerguard/layerguard/internal/adapters/outbound/config"
	"github.com/layerguard/layerguard/internal/adapters/outbound/gitinfo"
	"github.com/layerguard/layerguard/internal/adapters/outbound/history"
	"github.com/layerguard/layerguard/internal/adapters/outbound/locator"
	"github.com/layerguard/layerguard/internal/adapters/outbound/manifest"
	"github.com/layerguard/layerguard/internal/adapters/outbound/reportfile"
	"github.com/layerguard/layerguard/internal/adapters/outbound/tui"
	"github.com/layerguard/layerguard/internal/application"
	"github.com/layerguard/layerguard/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		jsonOutput  bool
		parallel    bool
		verbose     bool
		strictIO    bool
		showHistory bool
		profileFlag string
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check architectural boundaries",
		Long: "Run all boundary detectors against the project. Exits 0 when the layer boundaries " +
			"are respected and 1 when any violation is found, so the command works as a build gate.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := configAdapter.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			// Flags win over the config file.
			if profileFlag != "" {
				cfg.Profile = domain.Profile(profileFlag)
				if err := domain.ValidateProfile(cfg.Profile); err != nil {
					return err
				}
			}
			if strictIO {
				cfg.IOPolicy = domain.IOPolicyFail
			}

			registry := domain.BuildRegistry(cfg)

			var logger *log.Logger
			if verbose {
				logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
					Level:           log.DebugLevel,
					ReportTimestamp: false,
				})
				logger.Info("checking architectural boundaries", "path", absPath, "profile", registry.Profile())
			}

			svc := application.NewCheckService(locator.New(), manifest.New(), logger)

			report, err := svc.Check(absPath, registry, application.CheckOptions{
				ManifestPath: cfg.ManifestPath,
				Parallel:     parallel,
			})
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			// The machine report artifact is written on every run, clean or
			// not; CI consumers rely on it existing.
			reportPath := filepath.Join(absPath, cfg.ReportPath)
			if err := reportfile.New().Write(reportPath, report); err != nil {
				return fmt.Errorf("writing machine report: %w", err)
			}

			hist := history.New()
			entry := domain.RunEntry{
				Timestamp: time.Now().Format(time.RFC3339),
				Profile:   registry.Profile(),
				Total:     len(report.Violations),
				ByKind:    report.CountByKind(),
				Clean:     report.IsClean(),
			}
			if hash, err := gitinfo.New().CommitHash(absPath); err == nil {
				entry.CommitHash = hash
			}
			_ = hist.Save(absPath, entry) // best-effort

			// --history replaces the report rendering only; the exit-code
			// contract below holds under every flag combination.
			switch {
			case showHistory:
				entries, err := hist.Load(absPath)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			case jsonOutput:
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if !report.IsClean() {
				return fmt.Errorf("%d architectural violation(s) found", len(report.Violations))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the machine report to stdout")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Scan layer files concurrently")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log scan progress to stderr")
	cmd.Flags().BoolVar(&strictIO, "strict-io", false, "Fail on unreadable layer files instead of skipping them")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show past run results")
	cmd.Flags().StringVar(&profileFlag, "profile", "", "Strictness profile: full or simple")

	return cmd
}

func renderJSON(cmd *cobra.Command, report *domain.Report) error {
	records := report.Violations
	if records == nil {
		records = []domain.Violation{}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
