package application

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/layerguard/layerguard/internal/domain"
	"github.com/layerguard/layerguard/internal/domain/detect"
)

// CheckService runs the boundary check pipeline:
// locate layer files -> scan imports -> scan manifest -> scan API usage ->
// aggregate into a single ordered report.
type CheckService struct {
	locator  domain.FileLocator
	manifest domain.ManifestLoader
	logger   *log.Logger
}

// CheckOptions tune one run of the pipeline.
type CheckOptions struct {
	// ManifestPath is the manifest location relative to the project root.
	ManifestPath string
	// Parallel dispatches one scan task per located file. The merged report
	// is byte-identical to the sequential run.
	Parallel bool
}

// NewCheckService creates a CheckService. A nil logger disables progress
// output.
func NewCheckService(locator domain.FileLocator, manifest domain.ManifestLoader, logger *log.Logger) *CheckService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CheckService{locator: locator, manifest: manifest, logger: logger}
}

// Check runs every registered layer's detectors against projectPath and
// aggregates their streams in fixed detector order. Detection never fails
// the run: detectors return violation sequences, and input-quality faults
// degrade to violations or skips. The only returned errors are malformed
// glob patterns and, under the fail IO policy, unreadable matched files.
func (s *CheckService) Check(projectPath string, registry *domain.Registry, opts CheckOptions) (*domain.Report, error) {
	if opts.ManifestPath == "" {
		opts.ManifestPath = domain.DefaultManifestPath
	}

	report := &domain.Report{}

	for _, name := range registry.LayerNames() {
		rule, _ := registry.LayerRuleFor(name)

		s.logger.Info("analyzing source files", "layer", name)
		files, err := s.locator.Resolve(projectPath, rule.FilePatterns)
		if err != nil {
			return nil, fmt.Errorf("resolving %s layer patterns: %w", name, err)
		}
		s.logger.Debug("layer file set resolved", "layer", name, "files", len(files))

		contents, err := s.readFiles(projectPath, files, registry.IOPolicy())
		if err != nil {
			return nil, err
		}

		scans := s.scanFiles(files, contents, rule, registry.Profile(), opts.Parallel)

		// Detector order is fixed: import scans, manifest scan, API-usage
		// scans. Grouped-by-kind rendering and the machine report both
		// inherit this order.
		for _, r := range scans {
			report.Append(r.imports...)
		}

		s.logger.Info("analyzing dependencies", "layer", name, "manifest", opts.ManifestPath)
		report.Append(s.scanManifest(projectPath, opts.ManifestPath, rule, registry.Profile())...)

		for _, r := range scans {
			report.Append(r.patterns...)
		}
	}

	s.logger.Info("check complete", "violations", len(report.Violations))
	return report, nil
}

// fileScan holds one file's detector outputs, kept separate so parallel
// execution can merge them deterministically.
type fileScan struct {
	imports  []domain.Violation
	patterns []domain.Violation
}

// readFiles loads each located file. Under the skip policy an unreadable
// file contributes nil content, which every detector treats as clean; under
// the fail policy it aborts the run.
func (s *CheckService) readFiles(root string, files []string, policy domain.IOPolicy) ([][]byte, error) {
	contents := make([][]byte, len(files))
	for i, f := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(f)))
		if err != nil {
			if policy == domain.IOPolicyFail {
				return nil, fmt.Errorf("reading layer file %s: %w", f, err)
			}
			s.logger.Debug("skipping unreadable file", "file", f, "err", err)
			continue
		}
		contents[i] = data
	}
	return contents, nil
}

// scanFiles runs the per-file detectors, sequentially or fanned out over a
// bounded worker pool. Results are indexed by file position, so the merge
// order never depends on scheduling.
func (s *CheckService) scanFiles(files []string, contents [][]byte, rule domain.LayerRule, profile domain.Profile, parallel bool) []fileScan {
	results := make([]fileScan, len(files))

	scanOne := func(i int) {
		if contents[i] == nil {
			return
		}
		if profile == domain.ProfileSimple {
			results[i].imports = detect.ScanSimple(files[i], contents[i], rule)
			return
		}
		results[i].imports = detect.ScanImports(files[i], contents[i], rule)
		results[i].patterns = detect.ScanAPIUsage(files[i], contents[i], rule)
	}

	if !parallel {
		for i := range files {
			scanOne(i)
		}
		return results
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(files) {
		workers = len(files)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				scanOne(i)
			}
		}()
	}
	for i := range files {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results
}

// scanManifest loads and evaluates the dependency manifest. Absence yields
// nothing; a parse failure becomes a MANIFEST_PARSE_ERROR violation rather
// than aborting, so the run degrades to "cannot verify". The simple profile
// never parses: its substring scan runs over the raw text and still reports
// whatever forbidden dependencies it can see in a malformed manifest.
func (s *CheckService) scanManifest(root, manifestPath string, rule domain.LayerRule, profile domain.Profile) []domain.Violation {
	manifest, err := s.manifest.Load(filepath.Join(root, filepath.FromSlash(manifestPath)))
	if err != nil && (profile != domain.ProfileSimple || manifest == nil) {
		return []domain.Violation{{
			File:   manifestPath,
			Line:   0,
			Kind:   domain.KindManifestParseError,
			Detail: fmt.Sprintf("Failed to parse %s: %v", manifestPath, err),
		}}
	}

	// Report manifest findings against the root-relative path.
	manifest.Path = manifestPath

	if profile == domain.ProfileSimple {
		return detect.ScanManifestSimple(manifest, rule)
	}
	return detect.ScanManifest(manifest, rule)
}
