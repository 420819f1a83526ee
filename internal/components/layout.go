package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
	BodyClass   string
}

const pageStyles = `
.bg-grid{background-color:#030305;background-image:linear-gradient(rgba(255,255,255,.03) 1px,transparent 1px),linear-gradient(90deg,rgba(255,255,255,.03) 1px,transparent 1px);background-size:40px 40px}
.tech-font{font-family:"Rajdhani","Inter",sans-serif}
.speed-bar-bg{height:4px;background:rgba(255,255,255,.1);overflow:hidden}
.speed-bar-fill{height:100%;background:#6b7280}
.speed-bar-fill.active{background:linear-gradient(90deg,#06b6d4,#3b82f6)}
.caret::after{content:"_";animation:blink 1s step-end infinite}
@keyframes blink{50%{opacity:0}}
`

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Growthai - Total Autonomous Growth Engine"
	}

	if config.Description == "" {
		config.Description = "Shifting human operations to machine precision. One engine for SEO, SMO, GMB, Web Dev, CRO & Content."
	}

	if config.BodyClass == "" {
		config.BodyClass = "bg-grid min-h-screen text-gray-200 antialiased"
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),

				Script(Src("https://cdn.tailwindcss.com")),
				Script(Src("https://code.iconify.design/1/1.0.7/iconify.min.js")),
				StyleEl(g.Raw(pageStyles)),
			),
			Body(
				Class(config.BodyClass),
				g.Group(content),
			),
		),
	})
}
