package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"growthai/portal/internal/simulation"
)

// Workspace renders the agent workspace shell. Typed output, phase and
// preview state arrive over the workspace socket.
func Workspace(script simulation.Script) g.Node {
	return Layout(
		PageConfig{Title: "GrowthAI - Agent Workspace", BodyClass: "min-h-screen bg-[#030305] text-gray-300"},
		Nav(
			Class("fixed top-0 w-full z-50 border-b border-white/10 bg-[#030305]/95 backdrop-blur-md"),
			Div(
				Class("max-w-[1800px] mx-auto px-4 py-3 flex items-center justify-between"),
				Div(
					Class("flex items-center gap-3"),
					Div(Class("w-7 h-7 bg-white rotate-45 transform")),
					Span(Class("text-sm md:text-lg text-white tech-font tracking-widest"), g.Text("GROWTHAI AGENT WORKSPACE")),
				),
				Div(
					ID("phase-label"),
					Class("hidden md:block text-xs text-cyan-400 tech-font uppercase tracking-wider"),
					g.Text(script.Phase(0)),
				),
			),
		),
		Div(
			Class("pt-16 px-3 md:px-4 pb-4"),
			Div(
				Class("grid grid-cols-1 xl:grid-cols-2 gap-3 h-[calc(100vh-80px)]"),
				outputPanel(),
				previewPanel(script),
			),
		),
		Script(g.Raw(workspaceScript)),
	)
}

func panelHeader(title string, badge g.Node) g.Node {
	return Div(
		Class("px-4 py-3 border-b border-white/10 flex items-center justify-between"),
		H3(Class("text-xs uppercase tracking-widest text-gray-400 tech-font"), g.Text(title)),
		badge,
	)
}

func outputPanel() g.Node {
	return Section(
		Class("rounded-xl border border-white/10 bg-[#09090b] overflow-hidden flex flex-col min-h-[360px]"),
		panelHeader("Agent Output", Span(Class("text-[10px] text-green-400 font-mono"), g.Text("streaming"))),
		Div(
			Class("flex-1 overflow-auto p-4 font-mono text-xs md:text-sm leading-6"),
			Pre(ID("agent-output"), Class("whitespace-pre-wrap text-gray-200 caret")),
		),
	)
}

func previewPanel(script simulation.Script) g.Node {
	return Section(
		Class("rounded-xl border border-white/10 bg-[#09090b] overflow-hidden flex flex-col min-h-[360px]"),
		panelHeader("Live Preview", Span(Class("text-[10px] text-cyan-400 font-mono truncate max-w-[55%]"), g.Text(script.TargetURL))),
		Div(
			Class("px-4 py-3 border-b border-white/10 space-y-2"),
			Div(
				Class("h-1.5 bg-white/10 rounded overflow-hidden"),
				Div(
					ID("phase-bar"),
					Class("h-full bg-gradient-to-r from-cyan-500 to-blue-500 transition-all duration-700"),
					Style(fmt.Sprintf("width: %.0f%%", script.PhasePercent(0))),
				),
			),
			Div(
				ID("planned-changes"),
				Class("grid grid-cols-1 md:grid-cols-2 gap-2"),
				g.Map(script.Changes(0), plannedChange),
			),
		),
		Div(
			Class("relative flex-1 bg-black"),
			Div(
				ID("preview-loading"),
				Class("absolute inset-0 z-10 bg-black/70 flex items-center justify-center"),
				Div(
					Class("text-center"),
					Div(Class("w-8 h-8 border-2 border-cyan-400 border-t-transparent rounded-full animate-spin mx-auto mb-2")),
					Div(Class("text-xs text-cyan-300"), g.Text("Applying changes to preview...")),
				),
			),
			Div(
				ID("preview-error"),
				Class("absolute inset-0 hidden items-center justify-center text-center p-6"),
				Div(
					Div(Class("text-sm text-red-400 mb-2"), g.Text("Preview blocked by target site headers")),
					Div(Class("text-xs text-gray-500"), g.Text("Some websites do not allow iframe rendering. Agent pipeline is still running.")),
				),
			),
			g.El("iframe",
				ID("preview-frame"),
				Src(script.TargetURL),
				Class("w-full h-full"),
				g.Attr("title", "Live Site Preview"),
			),
		),
	)
}

func plannedChange(c simulation.PlannedChange) g.Node {
	dot, text := "bg-gray-600", "text-gray-500"
	if c.Done {
		dot, text = "bg-green-400", "text-gray-200"
	}
	return Div(
		Class("flex items-center gap-2 text-xs"),
		g.Attr("data-change", c.Item),
		Span(Class("w-1.5 h-1.5 rounded-full "+dot)),
		Span(Class(text), g.Text(c.Item)),
	)
}

var workspaceScript = fmt.Sprintf(`
(function () {
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var socket = new WebSocket(scheme + location.host + %q);
  var output = document.getElementById("agent-output");
  var frame = document.getElementById("preview-frame");
  var loading = document.getElementById("preview-loading");
  var blocked = document.getElementById("preview-error");
  var previewKey = 0;

  function send(type) {
    if (socket.readyState === WebSocket.OPEN) socket.send(JSON.stringify({ type: type }));
  }
  frame.addEventListener("load", function () { send("preview_loaded"); });
  frame.addEventListener("error", function () { send("preview_error"); });

  function phase(p) {
    if (!p) return;
    document.getElementById("phase-label").textContent = p.label;
    document.getElementById("phase-bar").style.width = p.percent + "%%";
    document.querySelectorAll("[data-change]").forEach(function (row, i) {
      var done = p.changes[i] && p.changes[i].done;
      row.children[0].className = "w-1.5 h-1.5 rounded-full " + (done ? "bg-green-400" : "bg-gray-600");
      row.children[1].className = done ? "text-gray-200" : "text-gray-500";
    });
  }
  function preview(s) {
    loading.style.display = s.loading ? "flex" : "none";
    blocked.style.display = s.errored ? "flex" : "none";
    frame.style.display = s.errored ? "none" : "block";
    if (s.key !== previewKey) {
      previewKey = s.key;
      frame.src = frame.src;
    }
  }

  socket.addEventListener("message", function (e) {
    var msg = JSON.parse(e.data);
    if (msg.type === "snapshot") {
      output.textContent = msg.snapshot.typed;
      output.classList.toggle("caret", !msg.snapshot.done);
      preview(msg.snapshot.preview);
    } else if (msg.type === "frame") {
      var f = msg.frame;
      if (f.text) output.textContent += f.text;
      if (f.kind === "done") output.classList.remove("caret");
      preview(f.preview);
    }
    phase(msg.phase);
  });
})();
`, WorkspaceWSPath)
