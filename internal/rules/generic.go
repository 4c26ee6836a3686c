package rules

import "github.com/stackaudit/stackaudit/internal/types"

// genericRules are always active regardless of which stacks were detected.
func genericRules() []Rule {
	return []Rule{
		{
			ID:          "aws_access_key",
			Title:       "AWS access key ID",
			Category:    types.CatSecret,
			Severity:    types.SevCritical,
			Pattern:     `\b(AKIA[0-9A-Z]{16})\b`,
			Remediation: "Rotate the key in the AWS console and load credentials from the environment or an IAM role.",
		},
		{
			ID:       "aws_secret_key",
			Title:    "AWS secret access key",
			Category: types.CatSecret,
			Severity: types.SevCritical,
			Pattern:  `(?i)aws_?secret_?(?:access_?)?key["'\s:=]+([A-Za-z0-9/+=]{40})\b`,
		},
		{
			ID:          "github_token",
			Title:       "GitHub personal access token",
			Category:    types.CatSecret,
			Severity:    types.SevCritical,
			Pattern:     `\b(gh[pousr]_[A-Za-z0-9]{36,})\b`,
			Remediation: "Revoke the token at github.com/settings/tokens and switch to a fine-grained token stored outside the repo.",
		},
		{
			ID:       "gitlab_token",
			Title:    "GitLab personal access token",
			Category: types.CatSecret,
			Severity: types.SevHigh,
			Pattern:  `\b(glpat-[A-Za-z0-9_\-]{20,})\b`,
		},
		{
			ID:       "slack_token",
			Title:    "Slack API token",
			Category: types.CatSecret,
			Severity: types.SevHigh,
			Pattern:  `\b(xox[baprs]-[A-Za-z0-9-]{10,})\b`,
		},
		{
			ID:       "slack_webhook",
			Title:    "Slack incoming webhook URL",
			Category: types.CatSecret,
			Severity: types.SevMedium,
			Pattern:  `(https://hooks\.slack\.com/services/T[A-Za-z0-9_/]{8,})`,
		},
		{
			ID:       "stripe_secret",
			Title:    "Stripe live secret key",
			Category: types.CatSecret,
			Severity: types.SevCritical,
			Pattern:  `\b(sk_live_[A-Za-z0-9]{24,})\b`,
		},
		{
			ID:       "sendgrid_api_key",
			Title:    "SendGrid API key",
			Category: types.CatSecret,
			Severity: types.SevHigh,
			Pattern:  `\b(SG\.[A-Za-z0-9_\-]{22}\.[A-Za-z0-9_\-]{43})\b`,
		},
		{
			ID:       "google_api_key",
			Title:    "Google API key",
			Category: types.CatSecret,
			Severity: types.SevHigh,
			Pattern:  `\b(AIza[0-9A-Za-z\-_]{35})\b`,
		},
		{
			ID:       "jwt",
			Title:    "JSON Web Token",
			Category: types.CatSecret,
			Severity: types.SevMedium,
			Pattern:  `\b(eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{5,})\b`,
		},
		{
			ID:          "private_key_block",
			Title:       "Private key material",
			Category:    types.CatSecret,
			Severity:    types.SevCritical,
			MultiLine:   true,
			Pattern:     `-----BEGIN [A-Z0-9 ]*PRIVATE KEY-----[\s\S]+?-----END [A-Z0-9 ]*PRIVATE KEY-----`,
			Remediation: "Remove the key from the repo, rotate it, and reference it via a secret store or mounted file.",
		},
		{
			ID:       "password_assign",
			Title:    "Hardcoded password",
			Category: types.CatSecret,
			Severity: types.SevMedium,
			Pattern:  `(?i)\b(?:password|passwd|pwd)\b\s*[:=]\s*["']([^"'\s]{8,})["']`,
		},
		{
			ID:       "generic_api_key",
			Title:    "Hardcoded API credential",
			Category: types.CatSecret,
			Severity: types.SevMedium,
			Pattern:  `(?i)\b(?:api[_-]?key|secret[_-]?key|auth[_-]?token|access[_-]?token)\b\s*[:=]\s*["']([A-Za-z0-9_\-./+=]{16,})["']`,
		},
		{
			ID:       "db_uri_creds",
			Title:    "Database URI with embedded credentials",
			Category: types.CatSecret,
			Severity: types.SevHigh,
			Pattern:  `(?i)\b(?:postgres(?:ql)?|mysql|mongodb(?:\+srv)?|redis|amqp)://[^/\s:@]+:([^@\s]{4,})@`,
		},
	}
}
