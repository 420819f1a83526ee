package simulation

import (
	"context"
	"strings"
	"sync"
	"time"

	"growthai/portal/pkg/scheduling"
)

// DefaultTypingInterval is the delay between revealed characters
const DefaultTypingInterval = 18 * time.Millisecond

// FrameKind tells the client how to apply a frame
type FrameKind string

const (
	FrameChar    FrameKind = "char"
	FrameBlock   FrameKind = "block"
	FrameDone    FrameKind = "done"
	FramePreview FrameKind = "preview"
)

// PreviewState tracks the embedded page preview. Key changes whenever the
// frame must be reloaded.
type PreviewState struct {
	Loading bool `json:"loading"`
	Errored bool `json:"errored"`
	Key     int  `json:"key"`
}

// Frame is one step of script playback
type Frame struct {
	Kind    FrameKind    `json:"kind"`
	Text    string       `json:"text,omitempty"`
	Block   int          `json:"block"`
	Phase   int          `json:"phase"`
	Preview PreviewState `json:"preview"`
}

// Snapshot is the full playback state at a point in time
type Snapshot struct {
	Typed   string       `json:"typed"`
	Block   int          `json:"block"`
	Phase   int          `json:"phase"`
	Preview PreviewState `json:"preview"`
	Done    bool         `json:"done"`
}

// Player reveals a Script one character at a time
type Player struct {
	script Script
	blocks [][]rune

	mu      sync.Mutex
	block   int
	char    int
	phase   int
	typed   strings.Builder
	preview PreviewState
	done    bool
}

// NewPlayer creates a player positioned at the start of the script
func NewPlayer(script Script) *Player {
	blocks := make([][]rune, len(script.Blocks))
	for i, b := range script.Blocks {
		blocks[i] = []rune(b)
	}
	return &Player{
		script:  script,
		blocks:  blocks,
		preview: PreviewState{Loading: true},
	}
}

// Advance performs one playback tick. The boolean is false once the script
// is exhausted; the frame returned alongside it is the FrameDone marker.
func (p *Player) Advance() (Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done || p.block >= len(p.blocks) {
		p.done = true
		return p.frame(FrameDone, ""), false
	}

	current := p.blocks[p.block]
	if p.char < len(current) {
		r := current[p.char]
		p.char++
		p.typed.WriteRune(r)
		return p.frame(FrameChar, string(r)), true
	}

	if p.block < len(p.blocks)-1 {
		p.typed.WriteString("\n")
		p.block++
		p.char = 0
		if p.phase < len(p.script.Phases)-1 {
			p.phase++
		}
		p.preview = PreviewState{Loading: true, Errored: false, Key: p.preview.Key + 1}
		return p.frame(FrameBlock, "\n"), true
	}

	p.done = true
	return p.frame(FrameDone, ""), false
}

// PreviewLoaded records that the embedded page finished loading
func (p *Player) PreviewLoaded() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.preview.Loading = false
	return p.frame(FramePreview, "")
}

// PreviewFailed records that the target refused to be embedded
func (p *Player) PreviewFailed() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.preview.Loading = false
	p.preview.Errored = true
	return p.frame(FramePreview, "")
}

// Snapshot returns the current playback state
func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Typed:   p.typed.String(),
		Block:   p.block,
		Phase:   p.phase,
		Preview: p.preview,
		Done:    p.done,
	}
}

// Run advances the player every interval and hands each frame to emit.
// It returns nil after the FrameDone frame has been emitted, or ctx.Err()
// if ctx is cancelled first. emit is never called after Run returns.
func (p *Player) Run(ctx context.Context, interval time.Duration, emit func(Frame)) error {
	if interval <= 0 {
		interval = DefaultTypingInterval
	}

	scope := scheduling.NewScope(ctx)
	defer scope.Close()

	task := scope.Every(interval, func() bool {
		frame, more := p.Advance()
		if emit != nil {
			emit(frame)
		}
		return more
	})

	select {
	case <-task.Done():
		if err := scope.Err(); err != nil {
			return err
		}
		return nil
	case <-scope.Done():
		return scope.Err()
	}
}

// must hold p.mu
func (p *Player) frame(kind FrameKind, text string) Frame {
	return Frame{
		Kind:    kind,
		Text:    text,
		Block:   p.block,
		Phase:   p.phase,
		Preview: p.preview,
	}
}
