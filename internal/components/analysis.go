package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"growthai/portal/internal/catalog"
)

// Analysis renders the analysis progress modal. The page subscribes to the
// progress stream and moves on to the workspace once analysis completes.
func Analysis(progress int) g.Node {
	current := catalog.CurrentAnalysisPhase(progress)

	return Layout(
		PageConfig{Title: "GrowthAI - AI Analysis"},
		Div(
			Class("fixed inset-0 z-[60] flex items-center justify-center bg-black/50 backdrop-blur-sm"),
			Div(
				Class("bg-white rounded-2xl shadow-2xl max-w-lg w-full mx-4 overflow-hidden"),
				Div(
					Class("bg-black p-6"),
					H3(Class("text-2xl font-bold text-white"), g.Text("AI Analysis in Progress")),
					P(Class("text-gray-400"), g.Text("Please wait while we analyze your data...")),
				),
				Div(
					Class("p-6"),
					ID("analysis-phases"),
					g.Group(analysisPhases(current)),
					Div(
						Class("mt-6"),
						Div(
							Class("h-2 bg-gray-200 rounded-full overflow-hidden"),
							Div(
								ID("analysis-bar"),
								Class("h-full bg-indigo-500 rounded-full transition-all duration-300"),
								Style(fmt.Sprintf("width: %d%%", progress)),
							),
						),
						Div(
							ID("analysis-percent"),
							Class("text-center mt-2 text-sm text-gray-500"),
							g.Textf("%d%% Complete", progress),
						),
					),
				),
			),
		),
		Script(g.Raw(analysisScript)),
	)
}

func analysisPhases(current int) []g.Node {
	nodes := make([]g.Node, len(catalog.AnalysisPhases))
	for i, phase := range catalog.AnalysisPhases {
		row := "flex items-center gap-4 mb-4 transition-all opacity-30"
		badge := "w-12 h-12 rounded-full flex items-center justify-center bg-gray-200"
		icon := phase.Icon
		iconClass := "text-xl text-gray-400"
		title := "font-semibold text-gray-400"

		switch {
		case i < current:
			row = "flex items-center gap-4 mb-4 transition-all opacity-100"
			badge = "w-12 h-12 rounded-full flex items-center justify-center bg-green-500"
			icon = "mdi:check"
		case i == current:
			row = "flex items-center gap-4 mb-4 transition-all opacity-100"
			badge = "w-12 h-12 rounded-full flex items-center justify-center bg-indigo-500 animate-pulse"
		}
		if i <= current {
			iconClass = "text-xl text-white"
			title = "font-semibold text-gray-900"
		}

		nodes[i] = Div(
			Class(row),
			g.Attr("data-phase", fmt.Sprint(i)),
			Div(Class(badge), Icon(icon, iconClass)),
			Div(
				Div(Class(title), g.Text(phase.Name)),
				Div(Class("text-sm text-gray-500"), g.Text(phase.Desc)),
			),
		)
	}
	return nodes
}

var analysisScript = fmt.Sprintf(`
(function () {
  var source = new EventSource(%q);
  var phases = document.querySelectorAll("[data-phase]");
  function render(progress) {
    document.getElementById("analysis-bar").style.width = progress + "%%";
    document.getElementById("analysis-percent").textContent = progress + "%% Complete";
    var current = Math.floor(progress / 100 * phases.length);
    phases.forEach(function (row, i) {
      row.classList.toggle("opacity-30", i > current);
      row.classList.toggle("opacity-100", i <= current);
    });
  }
  source.addEventListener("progress", function (e) {
    render(JSON.parse(e.data).analysis_progress);
  });
  source.addEventListener("complete", function () {
    source.close();
    window.location.assign(%q);
  });
  source.addEventListener("failure", function () {
    source.close();
    window.location.assign(%q);
  });
})();
`, AnalysisStreamPath, WorkspacePath, OnboardingPath)
