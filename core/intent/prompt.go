package intent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/orpilot/orvoice-core/core/catalog"
	"github.com/orpilot/orvoice-core/core/state"
)

// promptBuilder renders the system prompt once per session and a fresh user
// message per transcription. The system prompt carries the full catalog
// with aliases so the model can bridge recognition errors to canonical
// names, plus the output schema with a worked example.
type promptBuilder struct {
	catalog      catalog.Catalog
	systemPrompt string
}

func newPromptBuilder(cat catalog.Catalog) *promptBuilder {
	b := &promptBuilder{catalog: cat}
	b.systemPrompt = b.buildSystemPrompt()
	return b
}

func (b *promptBuilder) buildSystemPrompt() string {
	var machines strings.Builder
	for i, machine := range b.catalog.Machines {
		fmt.Fprintf(&machines, "%d. %s - %s\n", i+1, machine.Name, machine.Description)
	}

	var aliases strings.Builder
	for _, machine := range b.catalog.Machines {
		if len(machine.Aliases) == 0 {
			continue
		}
		quoted := make([]string, len(machine.Aliases))
		for i, alias := range machine.Aliases {
			quoted[i] = fmt.Sprintf("%q", alias)
		}
		fmt.Fprintf(&aliases, "  %q is also called: %s\n", machine.Name, strings.Join(quoted, ", "))
	}

	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(instruction{})
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		logger.Warn("Failed to render output schema", "error", err)
		schemaJSON = []byte("{}")
	}

	return fmt.Sprintf(`You are an intelligent operating room control assistant for a %s procedure.
Your job is to listen to the surgeon's spoken commands and determine which equipment to turn ON or OFF.

=== AVAILABLE EQUIPMENT ===
%s
=== MACHINE ALIASES ===
(Alternative names the surgeon may use, map them to the canonical name above)
%s
=== YOUR TASK ===
Given the surgeon's latest spoken command, output ONLY a valid JSON object specifying which machines should change state.

IMPORTANT RULES:
1. Only list machines that are CHANGING state (delta only, do not repeat machines already in their correct state).
2. Machine names in your output MUST match EXACTLY the canonical names listed in AVAILABLE EQUIPMENT.
3. If the command is unclear or not equipment-related, return empty lists.
4. Do NOT output anything outside the JSON block: no explanations, no markdown, no code fences.
5. The JSON must have exactly two keys: "reasoning" and "machine_states".

=== OUTPUT SCHEMA ===
%s

=== EXAMPLE ===
Surgeon says: "Activate the bypass machine and turn off the ventilator"
Correct output:
{
  "reasoning": "Surgeon requested CPB activation and ventilator shutdown as bypass takes over lung function.",
  "machine_states": {
    "0": ["Ventilator"],
    "1": ["Cardiopulmonary Bypass Machine"]
  }
}`,
		b.catalog.Procedure, machines.String(), aliases.String(), schemaJSON)
}

func (b *promptBuilder) buildUserMessage(transcription string, snapshot state.Snapshot) string {
	onList := strings.Join(snapshot.On(), ", ")
	if onList == "" {
		onList = "None"
	}
	offList := strings.Join(snapshot.Off(), ", ")
	if offList == "" {
		offList = "None"
	}

	return fmt.Sprintf(`=== CURRENT MACHINE STATES ===
Currently ON  : %s
Currently OFF : %s

=== SURGEON'S COMMAND ===
%q

Respond with ONLY the JSON object. No other text.`,
		onList, offList, strings.TrimSpace(transcription))
}
