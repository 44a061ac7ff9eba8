package terminal

import (
	"strconv"
	"strings"

	"folio/internal/content"
)

const (
	arrow  = "->"
	bullet = " • "
)

// DefaultRegistry returns the portfolio command table.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Command{Name: "help", Kind: Render, run: runHelp},
		Command{Name: "ls", Kind: Render, run: runHelp},
		Command{Name: "about", Kind: Render, run: runAbout},
		Command{Name: "projects", Kind: Render, run: runProjects},
		Command{Name: "skills", Kind: Render, run: runSkills},
		Command{Name: "education", Kind: Render, run: runEducation},
		Command{Name: "experience", Kind: Render, run: runExperience},
		Command{Name: "contact", Kind: Render, run: runContact},
		Command{Name: "theme", Usage: "[dark|light|toggle]", Kind: Effect, run: runTheme},
		Command{Name: "setlocale", Usage: "<en|es|ar>", Kind: Effect, run: runSetLocale},
		Command{Name: "goto", Usage: "<section>", Kind: Effect, run: runGoto},
		Command{Name: "open", Usage: "<project-id>", Kind: Effect, run: runOpen},
		Command{Name: "bg", Usage: "[on|off|toggle]", Kind: Effect, run: runBackground},
		Command{Name: "lowpower", Usage: "[on|off|toggle]", Kind: Effect, run: runLowPower},
		Command{Name: "whoami", Kind: Render, run: runWhoami},
		Command{Name: "clear", Kind: Control},
		Command{Name: "cls", Kind: Control},
		Command{Name: "exit", Kind: Control},
	)
	if err != nil {
		panic(err)
	}
	return r
}

func runHelp(c *call) Block {
	width := 0
	for _, cmd := range c.interp.registry.commands {
		width = max(width, len(cmd.Name))
	}

	var b Block
	for _, cmd := range c.interp.registry.commands {
		spans := []Span{
			span(arrow+" ", Muted),
			span(cmd.Name+strings.Repeat(" ", width-len(cmd.Name)), Accepted),
			span("  "+c.t(cmd.DescriptionID(), nil), Muted),
		}
		if cmd.TakesArgs() {
			spans = append(spans, span("  "+cmd.Name+" "+cmd.Usage, Accent))
		}
		b.Add(spans...)
	}
	return b
}

func runAbout(c *call) Block {
	about := c.tree.About
	var b Block
	b.Text(about.Heading, Heading)
	b.Text(about.Subheading, Muted)
	b.Blank()
	b.Text(about.Bio1, Plain)
	b.Text(about.Bio2, Plain)
	if len(about.Technologies) > 0 {
		b.Blank()
		b.Text(strings.Join(about.Technologies, " · "), Accent)
	}
	return b
}

func runProjects(c *call) Block {
	projects := c.tree.Projects
	var b Block
	b.Text(projects.Heading, Heading)
	for _, p := range projects.Items {
		b.Blank()
		spans := []Span{
			span(p.Title, Heading),
			span("  ["+strconv.Itoa(p.ID)+"] "+p.Slug, Muted),
		}
		if p.Featured {
			spans = append(spans, span("  ★ "+c.t("terminal.featured", nil), Accent))
		}
		b.Add(spans...)
		b.Text(p.Description, Muted)
		b.Text(strings.Join(p.Tags, "  "), Accent)
	}
	return b
}

func runSkills(c *call) Block {
	skills := c.tree.Skills
	var b Block
	b.Text(skills.Heading, Heading)
	for _, cat := range skills.Categories {
		b.Blank()
		b.Text(cat.Title, Heading)
		names := make([]string, len(cat.Skills))
		for i, s := range cat.Skills {
			names[i] = s.Name
		}
		b.Text(strings.Join(names, " · "), Accepted)
	}
	return b
}

func runEducation(c *call) Block {
	exp := c.tree.Experience
	var b Block
	b.Text(exp.EducationHeading, Heading)
	for _, ed := range exp.Education {
		b.Blank()
		b.Text(ed.Institution, Heading)
		b.Text(ed.Degree+bullet+ed.Period+bullet+ed.Location, Muted)
		b.Text(ed.Description, Plain)
	}
	return b
}

func runExperience(c *call) Block {
	exp := c.tree.Experience
	var b Block
	b.Text(exp.Heading, Heading)
	for _, job := range exp.Timeline {
		b.Blank()
		b.Text(job.Position+" @ "+job.Company, Heading)
		b.Text(job.Period+bullet+job.Location+bullet+job.Type, Muted)
		b.Text(job.Description, Plain)
	}
	return b
}

func runContact(c *call) Block {
	meta := c.tree.Meta
	var b Block
	b.Text(c.tree.Contact.Heading, Heading)
	b.Text(c.t("terminal.email_label", nil)+": "+meta.Email, Accepted)
	b.Text(c.t("terminal.phone_label", nil)+": "+meta.Phone, Accepted)
	b.Text(c.t("terminal.location_label", nil)+": "+meta.Location, Accent)
	return b
}

func runTheme(c *call) Block {
	arg := "toggle"
	switch len(c.args) {
	case 0:
	case 1:
		arg = c.args[0]
	default:
		return c.usage()
	}
	if arg != "dark" && arg != "light" && arg != "toggle" {
		return c.usage()
	}

	c.env.SetTheme(c.ctx, arg)
	var b Block
	b.Text(c.t("terminal.theme_set", map[string]any{"Theme": c.env.Theme()}), Accepted)
	return b
}

func runSetLocale(c *call) Block {
	if len(c.args) != 1 {
		return c.usage()
	}
	l, ok := content.ParseLocale(c.args[0])
	if !ok {
		return c.usage()
	}

	c.env.SetLocale(c.ctx, l)
	var b Block
	b.Text(c.interp.tr.T(l.String(), "terminal.locale_set", map[string]any{"Locale": l.String()}), Accepted)
	return b
}

func runGoto(c *call) Block {
	if len(c.args) != 1 {
		return c.usage()
	}
	target := strings.TrimPrefix(c.args[0], "#")

	anchors := make([]string, 0, len(c.tree.Nav.Items))
	for _, item := range c.tree.Nav.Items {
		anchor := item.Anchor()
		anchors = append(anchors, anchor)
		if anchor == target {
			c.env.Goto(anchor)
			var b Block
			b.Text(c.t("terminal.goto_done", map[string]any{"Section": item.Label}), Accepted)
			return b
		}
	}

	var b Block
	b.Text(c.t("terminal.goto_unknown", map[string]any{
		"Section":  target,
		"Sections": strings.Join(anchors, ", "),
	}), Error)
	return b
}

func runOpen(c *call) Block {
	if len(c.args) != 1 {
		return c.usage()
	}
	var b Block
	p, ok := c.tree.Projects.FindProject(c.args[0])
	if !ok {
		b.Text(c.t("terminal.open_unknown", map[string]any{"ID": c.args[0]}), Error)
		return b
	}
	c.env.OpenProject(p.Slug)
	b.Text(c.t("terminal.open_done", map[string]any{"Title": p.Title}), Accepted)
	return b
}

func runBackground(c *call) Block {
	on, ok := parseSwitch(c.args, c.env.Background())
	if !ok {
		return c.usage()
	}
	c.env.SetBackground(c.ctx, on)
	var b Block
	b.Text(c.t("terminal.bg_state", map[string]any{"State": c.stateWord(on)}), Accepted)
	return b
}

func runLowPower(c *call) Block {
	on, ok := parseSwitch(c.args, c.env.LowPower())
	if !ok {
		return c.usage()
	}
	c.env.SetLowPower(c.ctx, on)
	var b Block
	b.Text(c.t("terminal.lowpower_state", map[string]any{"State": c.stateWord(on)}), Accepted)
	return b
}

func runWhoami(c *call) Block {
	var b Block
	b.Text(c.t("terminal.whoami", map[string]any{
		"ID":     c.env.Observer(),
		"Locale": c.locale.String(),
		"Theme":  c.env.Theme(),
	}), Accent)
	return b
}

// parseSwitch resolves on|off|toggle against current. No argument toggles.
func parseSwitch(args []string, current bool) (bool, bool) {
	if len(args) == 0 {
		return !current, true
	}
	if len(args) > 1 {
		return false, false
	}
	switch args[0] {
	case "on":
		return true, true
	case "off":
		return false, true
	case "toggle":
		return !current, true
	}
	return false, false
}

func (c *call) stateWord(on bool) string {
	if on {
		return c.t("terminal.state_on", nil)
	}
	return c.t("terminal.state_off", nil)
}
