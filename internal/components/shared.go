package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Routes the views post to
const (
	StartPath          = "/onboarding/start"
	OnboardingPath     = "/onboarding"
	AnalysisPath       = "/onboarding/analysis"
	AnalysisStreamPath = "/onboarding/analysis/stream"
	SummaryPath        = "/onboarding/summary"
	WorkspacePath      = "/workspace"
	WorkspaceWSPath    = "/workspace/ws"
)

func Logo(size string) g.Node {
	return Div(
		Class("flex items-center space-x-3"),
		Div(Class(fmt.Sprintf("%s bg-white rotate-45 transform", size))),
		Span(Class("text-xl font-bold text-white tracking-widest tech-font"), g.Text("GROWTHAI")),
	)
}

func Icon(name, classes string) g.Node {
	return Span(
		Class("iconify "+classes),
		g.Attr("data-icon", name),
		g.Attr("aria-hidden", "true"),
	)
}

// StartButton opens the onboarding wizard
func StartButton(label, classes string) g.Node {
	return Form(
		Method("post"),
		Action(StartPath),
		Class("contents"),
		Button(Type("submit"), Class(classes), g.Text(label)),
	)
}

func ProgressBar(percent float64, fillClass string) g.Node {
	return Div(
		Class("h-2 w-full rounded-full bg-white/10 overflow-hidden"),
		Div(
			Class("h-full rounded-full transition-all duration-300 "+fillClass),
			Style(fmt.Sprintf("width: %.0f%%", percent)),
		),
	)
}
