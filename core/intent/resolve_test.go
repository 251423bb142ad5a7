package intent

import (
	"testing"

	"github.com/orpilot/orvoice-core/core/catalog"
)

func resolveCatalog() catalog.Catalog {
	return catalog.Catalog{
		Procedure: "Test Procedure",
		Machines: []catalog.Machine{
			{Name: "Ventilator", Aliases: []string{"vent", "breathing machine"}},
			{Name: "Cardiopulmonary Bypass Machine", Aliases: []string{"bypass machine", "bypass pump", "cpb", "pump"}},
			{Name: "Suction Pump", Aliases: []string{"suction"}},
			{Name: "Patient Monitor", Aliases: []string{"monitor"}},
		},
	}
}

func TestResolveExactCanonicalAndAlias(t *testing.T) {
	instruction := Resolve(ReasoningResult{
		TurnOn: []string{"Ventilator", "CPB", "bypass pump"},
	}, resolveCatalog())

	if len(instruction.TurnOn) != 2 {
		t.Fatalf("expected 2 resolved machines after dedup, got %v", instruction.TurnOn)
	}
	if instruction.TurnOn[0] != "Ventilator" || instruction.TurnOn[1] != "Cardiopulmonary Bypass Machine" {
		t.Fatalf("unexpected resolution: %v", instruction.TurnOn)
	}
	if len(instruction.Unresolved) != 0 {
		t.Fatalf("expected nothing unresolved, got %v", instruction.Unresolved)
	}
}

func TestResolveAliasInsideRequest(t *testing.T) {
	instruction := Resolve(ReasoningResult{
		TurnOn: []string{"bypass pump activated"},
	}, resolveCatalog())

	if len(instruction.TurnOn) != 1 || instruction.TurnOn[0] != "Cardiopulmonary Bypass Machine" {
		t.Fatalf("expected alias substring match, got %v", instruction.TurnOn)
	}
}

func TestResolveCanonicalSubstringBothDirections(t *testing.T) {
	cat := resolveCatalog()

	// Input is a fragment of the canonical name.
	instruction := Resolve(ReasoningResult{TurnOn: []string{"cardiopulmonary bypass"}}, cat)
	if len(instruction.TurnOn) != 1 || instruction.TurnOn[0] != "Cardiopulmonary Bypass Machine" {
		t.Fatalf("expected fragment match, got %v", instruction.TurnOn)
	}

	// Canonical name is contained in a longer input.
	instruction = Resolve(ReasoningResult{TurnOn: []string{"the patient monitor please"}}, cat)
	if len(instruction.TurnOn) != 1 || instruction.TurnOn[0] != "Patient Monitor" {
		t.Fatalf("expected containment match, got %v", instruction.TurnOn)
	}
}

func TestResolveTierPrecedence(t *testing.T) {
	// "pump" is an exact alias of the bypass machine, so tier 1 decides
	// before the substring tiers could reach Suction Pump.
	instruction := Resolve(ReasoningResult{TurnOn: []string{"pump"}}, resolveCatalog())
	if len(instruction.TurnOn) != 1 || instruction.TurnOn[0] != "Cardiopulmonary Bypass Machine" {
		t.Fatalf("expected the exact alias tier to win, got %v", instruction.TurnOn)
	}
}

func TestResolveTiesBreakInCatalogOrder(t *testing.T) {
	cat := catalog.Catalog{
		Procedure: "Tie Test",
		Machines: []catalog.Machine{
			{Name: "Infusion Pump A", Aliases: []string{"pump a"}},
			{Name: "Infusion Pump B", Aliases: []string{"pump b"}},
		},
	}

	// "infusion pump" substring-matches both machines; the first catalog
	// entry wins, and it keeps winning on repeat runs.
	for i := 0; i < 5; i++ {
		instruction := Resolve(ReasoningResult{TurnOn: []string{"infusion pump"}}, cat)
		if len(instruction.TurnOn) != 1 || instruction.TurnOn[0] != "Infusion Pump A" {
			t.Fatalf("run %d: expected catalog-order tie-break, got %v", i, instruction.TurnOn)
		}
	}
}

func TestResolveRecordsUnresolvedNames(t *testing.T) {
	instruction := Resolve(ReasoningResult{
		TurnOn:  []string{"gamma probe"},
		TurnOff: []string{"Ventilator"},
	}, resolveCatalog())

	if len(instruction.TurnOn) != 0 {
		t.Fatalf("expected no resolution for an unknown machine, got %v", instruction.TurnOn)
	}
	if len(instruction.Unresolved) != 1 || instruction.Unresolved[0] != "gamma probe" {
		t.Fatalf("expected the gamma probe recorded as unresolved, got %v", instruction.Unresolved)
	}
	if len(instruction.TurnOff) != 1 || instruction.TurnOff[0] != "Ventilator" {
		t.Fatalf("known names must still resolve, got %v", instruction.TurnOff)
	}
}

func TestResolveIgnoresBlankNames(t *testing.T) {
	instruction := Resolve(ReasoningResult{TurnOn: []string{"", "   "}}, resolveCatalog())
	if len(instruction.TurnOn) != 0 {
		t.Fatalf("expected no resolution for blank names, got %v", instruction.TurnOn)
	}
	if len(instruction.Unresolved) != 2 {
		t.Fatalf("expected blank names recorded as unresolved, got %v", instruction.Unresolved)
	}
}
