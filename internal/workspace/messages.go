package workspace

import (
	"time"

	"growthai/portal/internal/simulation"
)

// Server to client message types
const (
	MessageTypeSnapshot = "snapshot"
	MessageTypeFrame    = "frame"
	MessageTypeError    = "error"
)

// Client to server message types
const (
	ClientPreviewLoaded = "preview_loaded"
	ClientPreviewError  = "preview_error"
	ClientSnapshot      = "snapshot"
)

// PhaseInfo describes the agent phase shown next to the output
type PhaseInfo struct {
	Index   int                        `json:"index"`
	Label   string                     `json:"label"`
	Percent float64                    `json:"percent"`
	Changes []simulation.PlannedChange `json:"changes"`
}

// Message is sent from the server to a workspace client
type Message struct {
	Type      string               `json:"type"`
	Frame     *simulation.Frame    `json:"frame,omitempty"`
	Snapshot  *simulation.Snapshot `json:"snapshot,omitempty"`
	Phase     *PhaseInfo           `json:"phase,omitempty"`
	Error     string               `json:"error,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

// ClientMessage is sent from a workspace client to the server
type ClientMessage struct {
	Type string `json:"type"`
}

func phaseInfo(script simulation.Script, index int) *PhaseInfo {
	return &PhaseInfo{
		Index:   index,
		Label:   script.Phase(index),
		Percent: script.PhasePercent(index),
		Changes: script.Changes(index),
	}
}

func frameMessage(script simulation.Script, f simulation.Frame) Message {
	msg := Message{
		Type:      MessageTypeFrame,
		Frame:     &f,
		Timestamp: time.Now(),
	}
	if f.Kind == simulation.FrameBlock || f.Kind == simulation.FrameDone {
		msg.Phase = phaseInfo(script, f.Phase)
	}
	return msg
}

func snapshotMessage(script simulation.Script, s simulation.Snapshot) Message {
	return Message{
		Type:      MessageTypeSnapshot,
		Snapshot:  &s,
		Phase:     phaseInfo(script, s.Phase),
		Timestamp: time.Now(),
	}
}
