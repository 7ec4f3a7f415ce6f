// Package detect holds the pure violation detectors. Each detector is a
// function of its input bytes and the layer rule; no detector touches the
// filesystem or returns an error. Detection is deliberately line-oriented
// string matching, not AST analysis: comments and string literals containing
// forbidden tokens are flagged too, a known over-approximation.
package detect

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/layerguard/layerguard/internal/domain"
)

// ScanImports scans one layer file's content for forbidden module imports
// and denied standard-library paths. Line numbers are 1-based physical
// lines. Content that does not decode as UTF-8 yields no violations: binary
// artifacts accidentally matched by a glob are tolerated, not errors.
func ScanImports(file string, content []byte, rule domain.LayerRule) []domain.Violation {
	if !utf8.Valid(content) {
		return nil
	}

	var violations []domain.Violation
	for i, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		lineNum := i + 1

		if strings.HasPrefix(line, "use ") {
			for _, forbidden := range rule.ForbiddenImports {
				if strings.Contains(line, "::"+forbidden+"::") || strings.HasSuffix(line, "::"+forbidden) {
					violations = append(violations, domain.Violation{
						File: file,
						Line: lineNum,
						Kind: domain.KindForbiddenImport,
						Detail: fmt.Sprintf("Layer '%s' imports forbidden layer '%s': %s",
							rule.Name, forbidden, line),
					})
				}
			}
		}

		// The std deny list applies independently of the use-prefix check,
		// but only on lines carrying an import-or-extern keyword so
		// incidental mentions elsewhere are not flagged here.
		for _, forbiddenStd := range domain.ForbiddenStdImports {
			if strings.Contains(line, forbiddenStd) &&
				(strings.Contains(line, "use ") || strings.Contains(line, "extern ")) {
				violations = append(violations, domain.Violation{
					File: file,
					Line: lineNum,
					Kind: domain.KindForbiddenStdImport,
					Detail: fmt.Sprintf("Layer '%s' uses forbidden std import '%s': %s",
						rule.Name, forbiddenStd, line),
				})
			}
		}
	}

	return violations
}
