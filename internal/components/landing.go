package components

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"growthai/portal/internal/catalog"
)

// Landing renders the marketing page. openFAQ is the index of the expanded
// FAQ entry, or -1 when all entries are collapsed.
func Landing(openFAQ int) g.Node {
	return Layout(
		PageConfig{},
		landingNav(),
		hero(),
		capabilities(),
		pricing(openFAQ),
		landingFooter(),
	)
}

func landingNav() g.Node {
	return Nav(
		Class("fixed top-0 w-full z-50 border-b border-white/10 bg-[#030305]/80 backdrop-blur-md"),
		Div(
			Class("max-w-7xl mx-auto px-4 md:px-6 py-3 md:py-4 flex justify-between items-center"),
			Logo("w-8 h-8"),
			Div(
				Class("hidden md:flex items-center space-x-8 text-xs tracking-widest uppercase text-gray-400"),
				A(Href("#systems"), Class("hover:text-white transition"), g.Text("Systems")),
				A(Href("#velocity"), Class("hover:text-white transition"), g.Text("Velocity")),
				A(Href("#mission"), Class("hover:text-white transition"), g.Text("Mission")),
			),
			StartButton("Access Terminal", "border border-white/20 text-white text-[10px] md:text-xs px-3 md:px-6 py-2 uppercase tracking-widest hover:bg-white hover:text-black transition-all tech-font"),
		),
	)
}

func hero() g.Node {
	return Section(
		Class("relative min-h-screen flex items-center justify-center pt-24 md:pt-20 pb-10 md:pb-0 overflow-hidden"),
		ID("mission"),
		Div(
			Class("relative z-10 grid md:grid-cols-2 gap-8 md:gap-12 max-w-7xl mx-auto px-4 md:px-6 items-center"),
			Div(
				Div(
					Class("flex items-center space-x-2 mb-4 text-xs tracking-widest text-cyan-400 uppercase"),
					Span(Class("w-2 h-2 bg-cyan-400 rounded-full animate-ping")),
					Span(g.Text("System Status: Online")),
				),
				H1(
					Class("text-4xl sm:text-5xl md:text-7xl font-bold text-white leading-none mb-6 tech-font"),
					g.Text("AUTONOMOUS"), Br(), g.Text("GROWTH"),
				),
				P(
					Class("text-gray-400 text-base md:text-lg mb-8 max-w-md border-l-2 border-cyan-500/50 pl-4"),
					g.Text("Shifting human operations to machine precision. One engine for SEO, SMO, GMB, Web Dev, CRO & Content."),
				),
				Div(
					Class("flex flex-col sm:flex-row sm:flex-wrap gap-3 sm:gap-4"),
					StartButton("Initialize Engine", "w-full sm:w-auto bg-white text-black px-8 py-3 font-bold uppercase tracking-widest text-sm hover:bg-cyan-400 transition-all tech-font"),
					A(
						Href("#velocity"),
						Class("w-full sm:w-auto text-center border border-white/30 text-white px-8 py-3 uppercase tracking-widest text-sm hover:bg-white/5 transition-all tech-font"),
						g.Text("View Specs"),
					),
				),
			),
			Div(
				Class("relative h-[320px] sm:h-[420px] md:h-[500px] flex items-center justify-center"),
				Div(
					Class("w-24 h-24 bg-black border border-white/20 rounded-lg flex items-center justify-center shadow-2xl shadow-cyan-500/20 z-10"),
					Icon("mdi:brain", "text-4xl text-white"),
				),
			),
		),
	)
}

func capabilities() g.Node {
	return Section(
		ID("systems"),
		Class("py-16 md:py-24 relative"),
		Div(
			Class("max-w-7xl mx-auto px-4 md:px-6"),
			Div(
				Class("text-center mb-10 md:mb-16"),
				H2(Class("text-3xl md:text-4xl font-bold text-white tech-font mb-2"), g.Text("SYSTEM MODULES")),
				P(Class("text-gray-500 text-sm uppercase tracking-widest"), g.Text("All-in-one Automation Architecture")),
			),
			Div(
				Class("grid grid-cols-1 sm:grid-cols-2 md:grid-cols-4 gap-2 md:gap-1"),
				g.Map(catalog.Capabilities, func(c catalog.Capability) g.Node {
					classes := "group bg-[#0a0a0a] border border-white/5 p-6 transition-all duration-300"
					if c.Future {
						classes += " bg-gradient-to-br from-[#0a0a0a] to-blue-900/10"
					}
					return Div(
						Class(classes),
						Div(Class(fmt.Sprintf("text-%s-400 mb-4", c.Color)), Icon(c.Icon, "text-3xl")),
						H3(Class("text-white font-bold uppercase tracking-wide tech-font"), g.Text(c.Title)),
						P(Class("text-gray-500 text-xs mt-2 border-t border-white/10 pt-2"), g.Text(c.Desc)),
					)
				}),
			),
		),
	)
}

func pricing(openFAQ int) g.Node {
	return Section(
		ID("velocity"),
		Class("py-16 md:py-24 bg-[#050507]"),
		Div(
			Class("max-w-6xl mx-auto px-4 md:px-6"),
			Div(
				Class("text-center mb-12"),
				H2(Class("text-3xl md:text-4xl font-bold text-white tech-font mb-2"), g.Text("SELECT COMPUTE VELOCITY")),
				P(
					Class("text-gray-500 text-sm max-w-2xl mx-auto tracking-wide"),
					g.Text("Scale your AI operations. Upgrade from standard processing to our hyperscale ProModel architecture."),
				),
			),
			Div(
				Class("grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-3 gap-6"),
				g.Map(catalog.Plans, planCard),
			),
			faqList(openFAQ),
		),
	)
}

func planCard(p catalog.Plan) g.Node {
	card := "border bg-[#0a0a0a] p-6 flex flex-col transition-all border-white/10 hover:border-white/30"
	accent := "text-gray-500"
	check := "mdi:check"
	cta := "border border-white/20 text-white hover:bg-white hover:text-black"
	if p.Featured {
		card = "border bg-[#0a0a0a] p-6 flex flex-col transition-all border-cyan-500/50 shadow-lg shadow-cyan-500/10 lg:-translate-y-4 relative"
		accent = "text-cyan-400"
		check = "mdi:check-circle"
		cta = "bg-white text-black hover:bg-cyan-400 font-bold"
	}

	barClass := "speed-bar-fill"
	if p.Featured {
		barClass += " active"
	}

	return Div(
		Class(card),
		g.If(p.Featured, g.Group([]g.Node{
			Div(Class("absolute top-0 left-0 w-full h-1 bg-gradient-to-r from-cyan-500 to-blue-500")),
			Div(
				Class("absolute -top-3 left-1/2 -translate-x-1/2 bg-cyan-500 text-black text-xs px-3 py-1 uppercase font-bold tech-font"),
				g.Text("High Performance"),
			),
		})),
		H3(
			Class("text-xl text-white tech-font flex items-center gap-2"),
			g.Text(p.Name),
			Icon(p.Icon, accent),
		),
		Div(
			Class("my-4"),
			Span(Class("text-4xl font-bold text-white tech-font"), g.Text(p.Price)),
			Span(Class("text-gray-500"), g.Text("/mo")),
		),
		Div(
			Class("mb-6"),
			Div(
				Class("flex justify-between text-xs mb-1 text-gray-400"),
				Span(g.Text("AI Processing Speed")),
				Span(g.Text(p.Speed)),
			),
			Div(
				Class("speed-bar-bg"),
				Div(Class(barClass), Style(fmt.Sprintf("width: %d%%", p.Percent))),
			),
		),
		Ul(
			Class("space-y-3 text-sm mb-8 text-gray-300 flex-1"),
			g.Map(p.Features, func(f string) g.Node {
				return Li(Class("flex items-start gap-2"), Icon(check, "mt-1 "+accent), g.Text(f))
			}),
		),
		StartButton(p.CTALabel(), "w-full py-3 text-xs uppercase tracking-widest transition tech-font "+cta),
	)
}

func faqList(openFAQ int) g.Node {
	return Div(
		Class("mt-12 md:mt-16 max-w-3xl mx-auto border-t border-white/10 pt-8"),
		H3(Class("text-xl text-white tech-font mb-6 text-center"), g.Text("Technical Specifications")),
		g.Group(faqItems(openFAQ)),
	)
}

func faqItems(openFAQ int) []g.Node {
	items := make([]g.Node, len(catalog.FAQs))
	for i, faq := range catalog.FAQs {
		open := i == openFAQ
		// Clicking the expanded entry collapses it.
		toggle := fmt.Sprintf("/?faq=%d#velocity", i)
		chevron := "transition-transform duration-300"
		if open {
			toggle = "/#velocity"
			chevron += " rotate-180"
		}

		items[i] = Div(
			Class("border-b border-white/10 py-4 group"),
			g.Attr("data-faq", fmt.Sprint(i)),
			A(
				Href(toggle),
				Class("flex justify-between items-center text-white tech-font"),
				g.Attr("aria-expanded", fmt.Sprint(open)),
				Span(g.Text(faq.Question)),
				Icon("mdi:chevron-down", chevron),
			),
			g.If(open, Div(
				Class("mt-4"),
				P(Class("text-gray-400 text-sm pl-4 border-l-2 border-cyan-500"), g.Text(faq.Answer)),
			)),
		)
	}
	return items
}

func landingFooter() g.Node {
	return Footer(
		Class("border-t border-white/10 py-12 bg-[#030305]"),
		Div(
			Class("max-w-7xl mx-auto px-4 md:px-6 text-center"),
			Div(Class("flex justify-center mb-6"), Logo("w-6 h-6")),
			P(
				Class("text-gray-600 text-xs uppercase tracking-widest"),
				g.Text("Shifting Human Operations To Machine Precision © 2023"),
			),
		),
	)
}
