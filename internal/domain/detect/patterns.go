package detect

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/layerguard/layerguard/internal/domain"
)

// apiUsagePatterns target forbidden API symbols in place: fully-qualified
// paths and socket type names that bypass an import statement entirely.
var apiUsagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`tokio::net::`),
	regexp.MustCompile(`tokio::fs::`),
	regexp.MustCompile(`TcpListener`),
	regexp.MustCompile(`TcpStream`),
	regexp.MustCompile(`UdpSocket`),
}

// simpleDenyPatterns is the simplified profile's single deny list, applied
// to every line. Broader than the full profile: it folds the std and crate
// import checks into one pass and reports everything as FORBIDDEN_IMPORT.
var simpleDenyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`tokio::net::`),
	regexp.MustCompile(`tokio::fs::`),
	regexp.MustCompile(`std::net::`),
	regexp.MustCompile(`std::fs::`),
	regexp.MustCompile(`use\s+reqwest`),
	regexp.MustCompile(`use\s+hyper`),
	regexp.MustCompile(`use\s+actix_web`),
	regexp.MustCompile(`use\s+warp`),
	regexp.MustCompile(`use\s+gtk`),
	regexp.MustCompile(`use\s+egui`),
	regexp.MustCompile(`use\s+tauri`),
	regexp.MustCompile(`use\s+walkdir`),
	regexp.MustCompile(`use\s+notify`),
}

// ScanAPIUsage applies the forbidden-API patterns to every line of a layer
// file, whether or not an import statement is present. Distinct pattern
// matches on one line each yield a separate violation.
func ScanAPIUsage(file string, content []byte, rule domain.LayerRule) []domain.Violation {
	if !utf8.Valid(content) {
		return nil
	}

	var violations []domain.Violation
	for i, raw := range strings.Split(string(content), "\n") {
		for _, pattern := range apiUsagePatterns {
			if pattern.MatchString(raw) {
				violations = append(violations, domain.Violation{
					File: file,
					Line: i + 1,
					Kind: domain.KindForbiddenAPIUsage,
					Detail: fmt.Sprintf("Layer '%s' uses forbidden networking API: %s",
						rule.Name, strings.TrimSpace(raw)),
				})
			}
		}
	}

	return violations
}

// ScanSimple runs the simplified profile's deny-list pass over a layer file.
func ScanSimple(file string, content []byte, rule domain.LayerRule) []domain.Violation {
	if !utf8.Valid(content) {
		return nil
	}

	var violations []domain.Violation
	for i, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		for _, pattern := range simpleDenyPatterns {
			if pattern.MatchString(line) {
				violations = append(violations, domain.Violation{
					File: file,
					Line: i + 1,
					Kind: domain.KindForbiddenImport,
					Detail: fmt.Sprintf("Layer '%s' imports forbidden layer: %s",
						rule.Name, line),
				})
			}
		}
	}

	return violations
}
