package intent

// instruction is the JSON object the model is asked to produce. The
// machine_states keys are "0" for turn off and "1" for turn on, matching
// the persisted snapshot format.
type instruction struct {
	Reasoning     string              `json:"reasoning" jsonschema:"description=One sentence explaining the decision"`
	MachineStates map[string][]string `json:"machine_states" jsonschema:"description=Machines changing state, key 0 to turn off and key 1 to turn on"`
}

// normalize guards against missing keys and blank entries so later stages
// can index the map without nil checks.
func (in *instruction) normalize() {
	if in.MachineStates == nil {
		in.MachineStates = map[string][]string{}
	}
	for _, key := range []string{"0", "1"} {
		cleaned := make([]string, 0, len(in.MachineStates[key]))
		for _, name := range in.MachineStates[key] {
			if name != "" {
				cleaned = append(cleaned, name)
			}
		}
		in.MachineStates[key] = cleaned
	}
}

func (in *instruction) turnOff() []string { return in.MachineStates["0"] }
func (in *instruction) turnOn() []string  { return in.MachineStates["1"] }

// ReasoningResult carries the model's decision with machine names exactly
// as the model produced them, before catalog resolution.
type ReasoningResult struct {
	Reasoning string
	TurnOn    []string
	TurnOff   []string
}

// Instruction is a ReasoningResult after catalog resolution: TurnOn and
// TurnOff hold canonical names only, Unresolved holds everything that could
// not be mapped to the catalog.
type Instruction struct {
	Reasoning  string
	TurnOn     []string
	TurnOff    []string
	Unresolved []string
}
