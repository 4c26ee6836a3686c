package rules

import "github.com/stackaudit/stackaudit/internal/types"

// Stack profile identifiers. The detection predicates live in the profiles
// package; rules reference profiles by these IDs.
const (
	ProfileDocker  types.ProfileID = "docker"
	ProfileCompose types.ProfileID = "compose"
	ProfileNextJS  types.ProfileID = "nextjs"
	ProfileExpress types.ProfileID = "express"
	ProfileDjango  types.ProfileID = "django"
	ProfileFlask   types.ProfileID = "flask"
)

// Catalog returns the builtin rule catalog in registration order: generic
// secret rules first, then per-stack rule sets. The returned slice is fresh
// on every call; loaded rules are never mutated.
func Catalog() []Rule {
	var out []Rule
	out = append(out, genericRules()...)
	out = append(out, dockerRules()...)
	out = append(out, nextjsRules()...)
	out = append(out, expressRules()...)
	out = append(out, djangoRules()...)
	out = append(out, flaskRules()...)
	return out
}
