package catalog

// Capability is a tile in the "System Modules" grid
type Capability struct {
	Icon   string
	Title  string
	Desc   string
	Color  string
	Future bool
}

var Capabilities = []Capability{
	{Icon: "mdi:magnify", Title: "SEO & Semantics", Desc: "Autonomous Crawling & Ranking", Color: "cyan"},
	{Icon: "mdi:share-variant", Title: "SMO Engine", Desc: "Social Synthesis & Posting", Color: "purple"},
	{Icon: "mdi:map-marker-radius", Title: "GMB Automation", Desc: "Local Visibility Optimization", Color: "blue"},
	{Icon: "mdi:file-document-edit", Title: "Gen-AI Content", Desc: "Human-Like Writing Engine", Color: "red"},
	{Icon: "mdi:code-braces-box", Title: "Web Development", Desc: "Auto-Coded Landing Pages", Color: "green"},
	{Icon: "mdi:email-check", Title: "Email Systems", Desc: "Drip Campaigns & Sequences", Color: "yellow"},
	{Icon: "mdi:funnel", Title: "CRO Logic", Desc: "Conversion Rate Algorithms", Color: "orange"},
	{Icon: "mdi:plus-circle-outline", Title: "Future Module", Desc: "Coming Soon to Fleet", Color: "white", Future: true},
}

// Plan is a pricing tier
type Plan struct {
	Name     string
	Icon     string
	Price    string
	Speed    string
	Percent  int
	Featured bool
	Features []string
}

// CTALabel is the text of the plan's call-to-action button
func (p Plan) CTALabel() string {
	if p.Name == "Enterprise" {
		return "Contact Sales"
	}
	return "Choose " + p.Name
}

var Plans = []Plan{
	{
		Name: "Starter", Icon: "mdi:chip", Price: "$99", Speed: "1x Standard", Percent: 20,
		Features: []string{"Standard AI Language Model", "Linear Content Processing", "Basic SEO keyword matching"},
	},
	{
		Name: "Professional", Icon: "mdi:server", Price: "$199", Speed: "5x Hyper-Velocity", Percent: 60, Featured: true,
		Features: []string{"ProModel X1 Neural Engine (5x Faster)", "Hyperscale Distributed Crawlers", "Multi-threaded Semantic Synthesis", "Real-time SERP Volatility Analysis"},
	},
	{
		Name: "Enterprise", Icon: "mdi:network", Price: "$399", Speed: "Unlimited Cluster", Percent: 100,
		Features: []string{"Dedicated HPC Clusters", "Custom LLM Training on your Data", "Global Edge CDN Inference"},
	},
}

// FAQ is one accordion entry under the pricing table
type FAQ struct {
	Question string
	Answer   string
}

var FAQs = []FAQ{
	{
		Question: "What is the ProModel X1 Engine?",
		Answer:   "The ProModel X1 is our proprietary neural architecture designed specifically for high-volume text generation. It utilizes a mixture-of-experts (MoE) approach to deliver 5x faster inference speeds.",
	},
	{
		Question: "How does the 5x speed scale work?",
		Answer:   "Our Professional tier allocates 5x the GPU compute nodes to your requests, allowing for parallel processing of multiple queries, drastically reducing time for large-scale SEO audits.",
	},
}

// AnalysisPhase is a row in the analysis progress modal
type AnalysisPhase struct {
	Name string
	Desc string
	Icon string
}

var AnalysisPhases = []AnalysisPhase{
	{Name: "Scanning Website", Desc: "Analyzing structure and content", Icon: "mdi:web"},
	{Name: "SEO Analysis", Desc: "Checking search optimization", Icon: "mdi:magnify"},
	{Name: "Social Audit", Desc: "Reviewing social presence", Icon: "mdi:share-variant"},
	{Name: "Competitor Research", Desc: "Analyzing market position", Icon: "mdi:account-search"},
	{Name: "Generating Strategy", Desc: "Creating growth plan", Icon: "mdi:lightbulb-on"},
}

// CurrentAnalysisPhase maps a 0..100 progress value onto AnalysisPhases.
// At 100 it returns len(AnalysisPhases), meaning every phase is finished.
func CurrentAnalysisPhase(progress int) int {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return progress * len(AnalysisPhases) / 100
}

// WorkspacePhases are the headline states of the agent workspace
var WorkspacePhases = []string{
	"Reading target site structure",
	"Generating SEO and content changes",
	"Applying updates to runtime preview",
	"Running validation and preparing release",
}

// PlannedChanges are ticked off as the workspace advances through phases
var PlannedChanges = []string{
	"Hero copy and CTA refreshed",
	"Meta title and description updated",
	"Navigation structure normalized",
	"Page speed assets queued for optimization",
	"Schema markup patch prepared",
}
