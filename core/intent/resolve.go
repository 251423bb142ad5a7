package intent

import (
	"strings"

	"github.com/orpilot/orvoice-core/core/catalog"
)

// Resolve maps the raw machine names in a ReasoningResult to canonical
// catalog names. Names that cannot be resolved are collected in Unresolved
// rather than silently dropped, so the caller can surface them.
func Resolve(result ReasoningResult, cat catalog.Catalog) Instruction {
	resolver := newResolver(cat)

	instruction := Instruction{Reasoning: result.Reasoning}
	instruction.TurnOn = resolver.resolveAll(result.TurnOn, &instruction.Unresolved)
	instruction.TurnOff = resolver.resolveAll(result.TurnOff, &instruction.Unresolved)
	return instruction
}

type resolver struct {
	catalog catalog.Catalog
	aliases map[string]string
}

func newResolver(cat catalog.Catalog) *resolver {
	return &resolver{catalog: cat, aliases: cat.AliasIndex()}
}

func (r *resolver) resolveAll(names []string, unresolved *[]string) []string {
	var resolved []string
	for _, name := range names {
		canonical, ok := r.resolve(name)
		if !ok {
			logger.Warn("Could not resolve machine name", "name", name)
			*unresolved = append(*unresolved, name)
			continue
		}
		if !contains(resolved, canonical) {
			resolved = append(resolved, canonical)
		}
	}
	return resolved
}

// resolve matches one name against the catalog. Tiers are tried in order
// and the first tier that matches anything decides; within a tier, machines
// are scanned in catalog order so ties resolve deterministically.
func (r *resolver) resolve(name string) (string, bool) {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	if nameLower == "" {
		return "", false
	}

	// Tier 1: exact canonical or alias match.
	if canonical, ok := r.aliases[nameLower]; ok {
		return canonical, true
	}

	// Tier 2: a known alias appears inside the name. Catches outputs like
	// "bypass pump activated".
	for _, machine := range r.catalog.Machines {
		for _, alias := range machine.AliasKeys() {
			if strings.Contains(nameLower, alias) {
				return machine.Name, true
			}
		}
	}

	// Tier 3: canonical name substring, both directions.
	for _, machine := range r.catalog.Machines {
		canonicalLower := strings.ToLower(machine.Name)
		if strings.Contains(canonicalLower, nameLower) || strings.Contains(nameLower, canonicalLower) {
			return machine.Name, true
		}
	}

	return "", false
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
