package rules

import (
	"strings"

	"github.com/stackaudit/stackaudit/internal/types"
)

var jsGlobs = []string{"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx", "**/*.mjs", "**/*.cjs"}

var envGlobs = []string{".env", ".env.*", "**/.env", "**/.env.*"}

func nextjsRules() []Rule {
	globs := append(append([]string{}, jsGlobs...), envGlobs...)
	return []Rule{
		{
			ID:          "nextjs_public_secret",
			Title:       "Secret exposed to the browser bundle",
			Category:    types.CatSecret,
			Severity:    types.SevCritical,
			Globs:       globs,
			Pattern:     `(?i)\b(NEXT_PUBLIC_\w*(?:SECRET|TOKEN|KEY|PASSWORD)\w*)\s*[:=]\s*["']?[^\s"']{8,}`,
			Profiles:    []types.ProfileID{ProfileNextJS},
			Remediation: "Drop the NEXT_PUBLIC_ prefix; values with that prefix are inlined into client-side JavaScript.",
		},
	}
}

func expressRules() []Rule {
	return []Rule{
		{
			ID:       "express_cors_wildcard",
			Title:    "CORS allows any origin",
			Category: types.CatAuth,
			Severity: types.SevMedium,
			Globs:    jsGlobs,
			Pattern:  `(?i)(?:origin\s*:\s*["']\*["']|Access-Control-Allow-Origin["'\s,:]+\*)`,
			Profiles: []types.ProfileID{ProfileExpress},
			// A wildcard origin is far worse when credentialed requests are
			// also accepted; correlate with the credentials flag per file.
			EscalateWith: "express_cors_credentials",
			EscalateTo:   types.SevHigh,
		},
		{
			ID:       "express_cors_credentials",
			Title:    "CORS accepts credentialed requests",
			Category: types.CatAuth,
			Severity: types.SevInfo,
			Globs:    jsGlobs,
			Pattern:  `(?i)credentials\s*:\s*true`,
			Profiles: []types.ProfileID{ProfileExpress},
		},
		{
			ID:         "express_missing_helmet",
			Title:      "Express app without helmet middleware",
			Category:   types.CatConfig,
			Severity:   types.SevMedium,
			Globs:      jsGlobs,
			Structural: MissingHelmet,
			Profiles:   []types.ProfileID{ProfileExpress},
		},
	}
}

// MissingHelmet flags files that construct an Express app but never mention
// helmet. Whole-file absence check; no line number applies.
func MissingHelmet(path string, data []byte) []Match {
	s := string(data)
	if !strings.Contains(s, "express()") {
		return nil
	}
	if strings.Contains(s, "helmet") {
		return nil
	}
	return []Match{{Text: "express() application without helmet middleware"}}
}
