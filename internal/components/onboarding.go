package components

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"growthai/portal/internal/catalog"
	"growthai/portal/internal/onboarding"
)

// Form keys posted by the wizard in addition to the onboarding.Field names
const (
	FormActionKey    = "action"
	FormGoals        = "goals"
	FormHasWebsite   = "has_website"
	FormIntegrations = "integrations"
	FormTerms        = "terms"

	ActionNext = "next"
	ActionBack = "back"
	ActionExit = "exit"
)

// CredentialKey is the form key of one integration credential input
func CredentialKey(integrationID, key string) string {
	return "credential_" + integrationID + "_" + key
}

const (
	inputClass    = "w-full rounded-xl border border-white/15 bg-white/[0.04] px-4 py-3 text-white placeholder:text-gray-500 focus:border-cyan-400 focus:outline-none"
	questionClass = "text-2xl md:text-3xl font-bold text-white tech-font leading-tight"
	mutedClass    = "text-sm text-gray-400"
)

func optionClass(selected bool) string {
	if selected {
		return "block cursor-pointer rounded-xl border p-3 text-left transition border-cyan-400/70 bg-cyan-500/10 text-white"
	}
	return "block cursor-pointer rounded-xl border p-3 text-left transition border-white/10 bg-white/[0.03] text-gray-300 hover:border-cyan-400/40 hover:bg-white/[0.06]"
}

// Onboarding renders the wizard at its active step
func Onboarding(state onboarding.State) g.Node {
	step := state.ActiveStep()

	return Layout(
		PageConfig{Title: "GrowthAI - Onboarding"},
		Form(
			Method("post"),
			Action(OnboardingPath),
			ID("onboarding-form"),
			Class("min-h-screen bg-[#030305]"),
			wizardHeader(state),
			Div(
				Class("max-w-3xl mx-auto px-4 md:px-6 py-5 md:py-6"),
				ProgressBar(state.ProgressPercent(), "bg-cyan-400"),
			),
			Div(
				Class("max-w-3xl mx-auto px-4 md:px-6 pb-10 md:pb-12"),
				Div(
					Class("rounded-2xl shadow-2xl border border-white/10 bg-[#0a0a0d] text-white p-5 md:p-8"),
					g.Attr("data-step", string(step.ID)),
					Div(Class("text-xs uppercase tracking-widest text-cyan-300 mb-6 tech-font"), g.Text(step.Label)),
					stepErrors(state.Errors),
					stepContent(step, state.Record),
					wizardControls(state),
				),
			),
		),
	)
}

func wizardHeader(state onboarding.State) g.Node {
	return Div(
		Class("bg-[#030305]/90 border-b border-white/10 sticky top-0 z-10 backdrop-blur-md"),
		Div(
			Class("max-w-3xl mx-auto px-4 md:px-6 py-4 flex items-center justify-between"),
			Div(
				Class("flex items-center space-x-3"),
				Div(
					Class("w-10 h-10 border border-cyan-400/40 rounded-xl flex items-center justify-center bg-cyan-500/10"),
					Icon("mdi:rocket-launch", "text-cyan-300 text-xl"),
				),
				Div(
					Div(Class("text-xl md:text-2xl font-extrabold text-white tech-font tracking-wider"), g.Text("GrowthAI")),
					Div(
						Class("text-xs text-gray-400 uppercase tracking-widest"),
						g.Textf("Step %d of %d", state.Step, state.TotalSteps()),
					),
				),
			),
			Button(
				Type("submit"),
				Name(FormActionKey),
				Value(ActionExit),
				g.Attr("formnovalidate"),
				Aria("label", "Close onboarding"),
				Class("text-gray-300 hover:text-white hover:bg-white/10 rounded-lg p-2"),
				Icon("mdi:close", "text-2xl"),
			),
		),
	)
}

func stepErrors(errors []string) g.Node {
	if len(errors) == 0 {
		return nil
	}
	return Div(
		Role("alert"),
		Class("mb-6 rounded-xl border border-red-500/40 bg-red-500/10 p-4 text-red-200"),
		Div(
			Class("flex items-center gap-2 font-semibold mb-2"),
			Icon("mdi:alert-circle", ""),
			g.Text("Please fix these issues"),
		),
		Ul(Class("list-disc pl-4 text-sm"), g.Map(errors, func(e string) g.Node {
			return Li(g.Text(e))
		})),
	)
}

func wizardControls(state onboarding.State) g.Node {
	next := "Continue"
	if state.IsLastStep() {
		next = "Start AI Analysis"
	}

	return Div(
		Class("flex flex-col-reverse sm:flex-row gap-3 sm:justify-between mt-8 md:mt-10 pt-5 md:pt-6 border-t border-white/10"),
		Button(
			Type("submit"),
			Name(FormActionKey),
			Value(ActionBack),
			g.If(state.Step <= 1, Disabled()),
			Class("w-full sm:w-auto px-6 py-2 rounded-lg border border-white/20 bg-white/5 text-white hover:bg-white/10 disabled:opacity-40"),
			g.Text("Back"),
		),
		Button(
			Type("submit"),
			Name(FormActionKey),
			Value(ActionNext),
			Class("w-full sm:w-auto px-8 py-2 rounded-lg flex items-center gap-2 justify-center bg-cyan-400 text-black hover:bg-cyan-300 tech-font uppercase tracking-wider"),
			g.Text(next),
			Icon("mdi:arrow-right", ""),
		),
	)
}

func question(step onboarding.Step, content ...g.Node) g.Node {
	return Div(
		Class("space-y-4"),
		H2(Class(questionClass), g.Text(step.Question)),
		g.If(step.Note != "", P(Class(mutedClass), g.Text(step.Note))),
		g.Group(content),
	)
}

func stepContent(step onboarding.Step, r onboarding.Record) g.Node {
	switch step.Input {
	case onboarding.InputText:
		return question(step, textInputs(step, r))
	case onboarding.InputTextarea:
		field := step.Fields[0]
		return question(step, g.El("textarea",
			Name(string(field)),
			Rows("4"),
			Class(inputClass),
			Placeholder(step.Placeholder),
			g.Text(fieldValue(r, field)),
		))
	case onboarding.InputSelect:
		return question(step, choiceList(step, r), g.If(step.ID == onboarding.StepCompetitionLevel, budgetInput(r)))
	case onboarding.InputGoals:
		return question(step, goalList(r))
	case onboarding.InputYesNo:
		return question(step, yesNo(r))
	case onboarding.InputIntegrations:
		return question(step, integrationList(r))
	default:
		return review(step, r)
	}
}

func textInputs(step onboarding.Step, r onboarding.Record) g.Node {
	nodes := []g.Node{}
	for i, field := range step.Fields {
		inputType := "text"
		placeholder := step.Placeholder
		switch field {
		case onboarding.FieldWebsiteURL:
			inputType = "url"
		case onboarding.FieldHostingUsername:
			placeholder = "Hosting username (optional)"
		case onboarding.FieldHostingPassword:
			inputType = "password"
			placeholder = "Hosting password (optional)"
		}
		classes := inputClass
		if i > 0 {
			classes += " mt-3"
		}
		nodes = append(nodes, Input(
			Type(inputType),
			Name(string(field)),
			Value(fieldValue(r, field)),
			Placeholder(placeholder),
			Class(classes),
		))
	}
	return g.Group(nodes)
}

func choiceList(step onboarding.Step, r onboarding.Record) g.Node {
	field := step.Fields[0]
	current := fieldValue(r, field)
	grid := "grid grid-cols-1 md:grid-cols-2 gap-3"
	if step.ID == onboarding.StepBusinessSize {
		grid = "grid grid-cols-1 gap-3"
	} else if step.ID == onboarding.StepCompetitionLevel {
		grid = "grid grid-cols-1 sm:grid-cols-3 gap-3"
	}

	return Div(
		Class(grid),
		g.Map(step.Options, func(o catalog.Option) g.Node {
			selected := o.Value == current
			return Label(
				Class(optionClass(selected)),
				Input(Type("radio"), Class("sr-only"), Name(string(field)), Value(o.Value), g.If(selected, Checked())),
				g.Text(o.Label),
			)
		}),
	)
}

func budgetInput(r onboarding.Record) g.Node {
	return Div(
		Class("pt-2"),
		Label(For("monthly_budget"), Class(mutedClass), g.Text("Monthly marketing budget (USD)")),
		Input(
			Type("number"),
			ID("monthly_budget"),
			Name(string(onboarding.FieldMonthlyBudget)),
			g.Attr("min", "0"),
			Value(strconv.Itoa(r.MonthlyBudget)),
			Class(inputClass+" mt-2"),
		),
	)
}

func goalList(r onboarding.Record) g.Node {
	return Div(
		Class("grid grid-cols-1 md:grid-cols-2 gap-3"),
		g.Map(catalog.Goals, func(goal catalog.Goal) g.Node {
			selected := r.HasGoal(goal.ID)
			return Label(
				Class(optionClass(selected)),
				Input(Type("checkbox"), Class("sr-only"), Name(FormGoals), Value(goal.ID), g.If(selected, Checked())),
				Div(Class("font-semibold"), g.Text(goal.Title)),
				Div(Class(mutedClass), g.Text(goal.Description)),
			)
		}),
	)
}

func yesNo(r onboarding.Record) g.Node {
	answer := func(value, label string, selected bool) g.Node {
		return Label(
			Class(optionClass(selected)+" p-4"),
			Input(Type("radio"), Class("sr-only"), Name(FormHasWebsite), Value(value), g.If(selected, Checked())),
			g.Text(label),
		)
	}
	return Div(
		Class("grid grid-cols-1 gap-3"),
		answer("yes", "Yes, I have one", r.HasWebsite == onboarding.Yes),
		answer("no", "No, I need a new website", r.HasWebsite == onboarding.No),
	)
}

func integrationList(r onboarding.Record) g.Node {
	return Div(
		Class("grid grid-cols-1 md:grid-cols-2 gap-3"),
		g.Map(catalog.Integrations, func(integ catalog.Integration) g.Node {
			state := r.Integrations[integ.ID]
			return Div(
				Class(optionClass(state.Enabled)),
				Label(
					Class("flex items-start gap-3 cursor-pointer"),
					Input(Type("checkbox"), Class("mt-1"), Name(FormIntegrations), Value(integ.ID), g.If(state.Enabled, Checked())),
					Div(
						Div(Class("font-semibold flex items-center gap-2"), Icon(integ.Icon, integ.Color), g.Text(integ.Name)),
						Div(Class(mutedClass), g.Text(integ.Description)),
					),
				),
				g.If(state.Enabled, credentialInputs(integ, state)),
			)
		}),
	)
}

func credentialInputs(integ catalog.Integration, state onboarding.Integration) g.Node {
	return Div(
		Class("mt-3 space-y-2"),
		g.Map(integ.Credentials, func(c catalog.CredentialField) g.Node {
			inputType := "text"
			if c.Secret {
				inputType = "password"
			}
			return Input(
				Type(inputType),
				Name(CredentialKey(integ.ID, c.Key)),
				Placeholder(c.Label),
				// Secrets are never written back into the page.
				g.If(!c.Secret, Value(state.Credentials[c.Key])),
				g.Attr("autocomplete", "off"),
				Class(inputClass+" py-2 text-sm"),
			)
		}),
	)
}

func review(step onboarding.Step, r onboarding.Record) g.Node {
	return Div(
		Class("space-y-5"),
		H2(Class(questionClass), g.Text(step.Question)),
		Div(
			Class("rounded-xl border border-white/10 bg-white/[0.03] p-4 text-sm space-y-2 text-gray-300"),
			g.Map(onboarding.ReviewLines(r), func(l onboarding.SummaryLine) g.Node {
				return Div(
					Span(Class("text-gray-500"), g.Textf("%s:", l.Label)),
					g.Text(" "),
					Span(Class("font-medium text-white"), g.Text(l.Value)),
				)
			}),
		),
		Label(
			Class("flex items-start gap-3 rounded-xl border border-cyan-500/30 bg-cyan-500/10 p-4 cursor-pointer"),
			Input(Type("checkbox"), Class("mt-0.5"), Name(FormTerms), Value("on"), g.If(r.TermsAccepted, Checked())),
			Span(
				Class("text-sm text-gray-200"),
				g.Text("I confirm the details are accurate and consent to use this data for onboarding and strategy generation."),
			),
		),
		A(
			Href(SummaryPath+"/pdf"),
			Class("inline-flex items-center gap-2 text-xs uppercase tracking-widest text-cyan-300 hover:text-white"),
			Icon("mdi:file-download", ""),
			g.Text("Download summary"),
		),
	)
}

func fieldValue(r onboarding.Record, field onboarding.Field) string {
	switch field {
	case onboarding.FieldBusinessName:
		return r.BusinessName
	case onboarding.FieldBusinessCategory:
		return r.BusinessCategory
	case onboarding.FieldBusinessSize:
		return r.BusinessSize
	case onboarding.FieldBusinessLocation:
		return r.BusinessLocation
	case onboarding.FieldBusinessDescription:
		return r.BusinessDescription
	case onboarding.FieldCompetitionLevel:
		return r.CompetitionLevel
	case onboarding.FieldMonthlyBudget:
		return fmt.Sprint(r.MonthlyBudget)
	case onboarding.FieldWebsiteURL:
		return r.WebsiteURL
	case onboarding.FieldCMSType:
		return r.CMSType
	case onboarding.FieldHostingType:
		return r.HostingType
	case onboarding.FieldHostingProvider:
		return r.HostingProvider
	case onboarding.FieldHostingUsername:
		return r.HostingUsername
	}
	// Passwords are never echoed back into the page.
	return ""
}
