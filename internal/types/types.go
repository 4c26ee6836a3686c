package types

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevCritical Severity = "critical"
	SevHigh     Severity = "high"
	SevMedium   Severity = "medium"
	SevLow      Severity = "low"
	SevInfo     Severity = "info"
)

// Rank orders severities for sorting and threshold checks. Higher is worse.
func (s Severity) Rank() int {
	switch s {
	case SevCritical:
		return 4
	case SevHigh:
		return 3
	case SevMedium:
		return 2
	case SevLow:
		return 1
	case SevInfo:
		return 0
	}
	return -1
}

// Known reports whether s is one of the five recognized levels.
func (s Severity) Known() bool { return s.Rank() >= 0 }

// Category classifies what kind of issue a rule detects.
type Category string

const (
	CatSecret  Category = "secret"
	CatConfig  Category = "config"
	CatAuth    Category = "auth"
	CatNetwork Category = "network"
)

// ProfileID names a detected technology stack (e.g. "docker", "nextjs").
type ProfileID string

// Finding describes one concrete rule match in one location. Line is 1-based
// and zero for whole-file checks. Snippet is always the redacted display form;
// raw secret text is never stored on a Finding.
type Finding struct {
	Path     string   `json:"path"`
	Line     int      `json:"line,omitempty"`
	Rule     string   `json:"rule"`
	Title    string   `json:"-"`
	Severity Severity `json:"severity"`
	Snippet  string   `json:"snippet"`
	Category Category `json:"category"`
}

// Warning records a recoverable scan problem (unreadable file, binary skip,
// oversized file, matcher failure). Warnings never abort a scan.
type Warning struct {
	Path   string `json:"path"`
	Rule   string `json:"rule,omitempty"`
	Reason string `json:"reason"`
}
