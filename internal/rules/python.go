package rules

import "github.com/stackaudit/stackaudit/internal/types"

var djangoSettingsGlobs = []string{"**/settings.py", "**/settings/*.py", "settings.py"}

func djangoRules() []Rule {
	return []Rule{
		{
			ID:          "django_debug_true",
			Title:       "Django DEBUG enabled",
			Category:    types.CatConfig,
			Severity:    types.SevHigh,
			Globs:       djangoSettingsGlobs,
			Pattern:     `^\s*DEBUG\s*=\s*True\b`,
			Profiles:    []types.ProfileID{ProfileDjango},
			Remediation: "Drive DEBUG from the environment and default it to False outside development.",
		},
		{
			ID:       "django_secret_key",
			Title:    "Django SECRET_KEY hardcoded",
			Category: types.CatSecret,
			Severity: types.SevCritical,
			Globs:    djangoSettingsGlobs,
			Pattern:  `^\s*SECRET_KEY\s*=\s*["']([^"']{8,})["']`,
			Profiles: []types.ProfileID{ProfileDjango},
		},
		{
			ID:       "django_allowed_hosts_wildcard",
			Title:    "ALLOWED_HOSTS accepts any host",
			Category: types.CatNetwork,
			Severity: types.SevMedium,
			Globs:    djangoSettingsGlobs,
			Pattern:  `ALLOWED_HOSTS\s*=\s*\[[^\]]*["']\*["']`,
			Profiles: []types.ProfileID{ProfileDjango},
		},
		{
			ID:       "django_cors_allow_all",
			Title:    "Django CORS allows all origins",
			Category: types.CatAuth,
			Severity: types.SevMedium,
			Globs:    djangoSettingsGlobs,
			Pattern:  `^\s*CORS_(?:ALLOW_ALL_ORIGINS|ORIGIN_ALLOW_ALL)\s*=\s*True\b`,
			Profiles: []types.ProfileID{ProfileDjango},
		},
	}
}

func flaskRules() []Rule {
	return []Rule{
		{
			ID:       "flask_debug_run",
			Title:    "Flask app runs with debug enabled",
			Category: types.CatConfig,
			Severity: types.SevHigh,
			Globs:    []string{"**/*.py"},
			Pattern:  `\.run\([^)]*debug\s*=\s*True`,
			Profiles: []types.ProfileID{ProfileFlask},
		},
		{
			ID:       "flask_secret_key",
			Title:    "Flask secret key hardcoded",
			Category: types.CatSecret,
			Severity: types.SevCritical,
			Globs:    []string{"**/*.py"},
			Pattern:  `(?i)(?:app\.)?secret_key\s*=\s*["']([^"']{8,})["']`,
			Profiles: []types.ProfileID{ProfileFlask},
		},
	}
}
