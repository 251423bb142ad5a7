package state

// Machine state keys in the persisted document: "0" lists machines that are
// off, "1" lists machines that are on.
const (
	StateOff = "0"
	StateOn  = "1"
)

// Snapshot is one complete, immutable view of the equipment state. It is
// also the persisted document, so field names and shapes are part of the
// on-disk contract.
type Snapshot struct {
	Surgery             string              `json:"surgery"`
	Timestamp           string              `json:"timestamp"`
	Transcription       string              `json:"transcription"`
	Reasoning           string              `json:"reasoning"`
	MachineStates       map[string][]string `json:"machine_states"`
	UnavailableMachines []string            `json:"unavailable_machines"`
}

// On returns the machines currently on, in catalog order.
func (s Snapshot) On() []string {
	return s.MachineStates[StateOn]
}

// Off returns the machines currently off, in catalog order.
func (s Snapshot) Off() []string {
	return s.MachineStates[StateOff]
}
