package tui

import (
	"fmt"
	"strconv"
	"strings"

	"folio/internal/content"
	"folio/internal/terminal"
)

// row is one page line. Highlighted rows belong to the project opened last.
type row struct {
	line      terminal.Line
	highlight bool
}

type page struct {
	rows []row
}

func (p *page) add(spans ...terminal.Span) {
	p.rows = append(p.rows, row{line: terminal.Line{Spans: spans}})
}

func (p *page) text(text string, role terminal.Role) {
	if text == "" {
		return
	}
	p.add(terminal.Span{Text: text, Role: role})
}

func (p *page) blank() { p.rows = append(p.rows, row{}) }

// markFrom flags every row appended since index from.
func (p *page) markFrom(from int) {
	for i := from; i < len(p.rows); i++ {
		p.rows[i].highlight = true
	}
}

func (p *page) heading(title, sub string) {
	p.text(title, terminal.Heading)
	p.text(sub, terminal.Muted)
	p.blank()
}

// renderSection lays out one section of c. Unknown anchors fall back to home.
func renderSection(c *content.Content, anchor, highlight string) []row {
	p := &page{}
	switch anchor {
	case "about":
		aboutSection(p, c)
	case "skills":
		skillsSection(p, c)
	case "projects":
		projectsSection(p, c, highlight)
	case "experience":
		experienceSection(p, c)
	case "contact":
		contactSection(p, c)
	default:
		homeSection(p, c)
	}
	return p.rows
}

func homeSection(p *page, c *content.Content) {
	h := c.Hero
	p.text(h.Greeting, terminal.Muted)
	p.text(h.Name, terminal.Heading)
	p.text(h.Title, terminal.Accent)
	p.blank()
	p.text(h.Description, terminal.Plain)
	p.blank()
	p.add(
		terminal.Span{Text: "[ " + h.CTAs.SeeProjects + " ]", Role: terminal.Accent},
		terminal.Span{Text: "  "},
		terminal.Span{Text: "[ " + h.CTAs.GetInTouch + " ]", Role: terminal.Accent},
	)
	socials(p, c.Socials)
}

func aboutSection(p *page, c *content.Content) {
	a := c.About
	p.heading(a.Heading, a.Subheading)
	p.add(
		terminal.Span{Text: a.Name, Role: terminal.Heading},
		terminal.Span{Text: " · "},
		terminal.Span{Text: a.Role, Role: terminal.Accent},
	)
	p.blank()
	p.text(a.Bio1, terminal.Plain)
	p.blank()
	p.text(a.Bio2, terminal.Plain)
	p.blank()
	for _, v := range a.Values {
		p.add(
			terminal.Span{Text: "▸ " + v.Title, Role: terminal.Accent},
			terminal.Span{Text: "  " + v.Description, Role: terminal.Muted},
		)
	}
	if len(a.Technologies) > 0 {
		p.blank()
		p.text(strings.Join(a.Technologies, " · "), terminal.Muted)
	}
}

func skillsSection(p *page, c *content.Content) {
	s := c.Skills
	p.heading(s.Heading, s.Subheading)
	for _, cat := range s.Categories {
		p.text(cat.Title, terminal.Accent)
		for _, sk := range cat.Skills {
			p.add(
				terminal.Span{Text: fmt.Sprintf("  %-20s ", sk.Name)},
				terminal.Span{Text: levelBar(sk.Level), Role: terminal.Accepted},
				terminal.Span{Text: " " + strconv.Itoa(sk.Level) + "%", Role: terminal.Muted},
			)
		}
		p.blank()
	}
	if len(s.Tools) > 0 {
		p.text(s.ToolsHeading, terminal.Heading)
		for _, tool := range s.Tools {
			p.add(
				terminal.Span{Text: "  " + tool.Name, Role: terminal.Accent},
				terminal.Span{Text: "  " + tool.Description, Role: terminal.Muted},
			)
		}
	}
}

func levelBar(level int) string {
	filled := min(max(level, 0), 100) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func projectsSection(p *page, c *content.Content, highlight string) {
	pr := c.Projects
	p.heading(pr.Heading, pr.Subheading)
	for _, item := range pr.Items {
		from := len(p.rows)
		title := []terminal.Span{
			{Text: "[" + strconv.Itoa(item.ID) + "] ", Role: terminal.Muted},
			{Text: item.Title, Role: terminal.Heading},
		}
		if item.Featured {
			title = append(title, terminal.Span{Text: "  ★", Role: terminal.Accent})
		}
		p.add(title...)
		p.text(item.Description, terminal.Plain)
		if len(item.Tags) > 0 {
			p.text(strings.Join(item.Tags, " · "), terminal.Muted)
		}
		if item.Slug != "" && item.Slug == highlight {
			p.markFrom(from)
		}
		p.blank()
	}
	p.text(pr.CTAAllGithub, terminal.Accent)
}

func experienceSection(p *page, c *content.Content) {
	e := c.Experience
	p.heading(e.Heading, e.Subheading)
	for _, job := range e.Timeline {
		p.add(
			terminal.Span{Text: job.Position, Role: terminal.Heading},
			terminal.Span{Text: " @ " + job.Company, Role: terminal.Accent},
		)
		p.text(job.Period+" · "+job.Location, terminal.Muted)
		p.text(job.Description, terminal.Plain)
		for _, a := range job.Achievements {
			p.text("  • "+a, terminal.Plain)
		}
		p.blank()
	}
	if len(e.Education) > 0 {
		p.text(e.EducationHeading, terminal.Heading)
		for _, ed := range e.Education {
			p.add(
				terminal.Span{Text: ed.Degree, Role: terminal.Accent},
				terminal.Span{Text: " · " + ed.Institution},
			)
			p.text(ed.Period, terminal.Muted)
		}
	}
}

func contactSection(p *page, c *content.Content) {
	ct := c.Contact
	p.heading(ct.Heading, ct.Subheading)
	p.add(terminal.Span{Text: "✉ "}, terminal.Span{Text: c.Meta.Email, Role: terminal.Accent})
	if c.Meta.Phone != "" {
		p.add(terminal.Span{Text: "☎ "}, terminal.Span{Text: c.Meta.Phone, Role: terminal.Accent})
	}
	p.add(terminal.Span{Text: "⌂ "}, terminal.Span{Text: c.Meta.Location, Role: terminal.Accent})
	p.blank()
	p.text(ct.QuickChatHeading, terminal.Heading)
	p.text(ct.QuickChatDesc, terminal.Muted)
	p.blank()
	p.text(ct.ResumeHeading, terminal.Heading)
	p.text(ct.ResumeDesc, terminal.Muted)
	p.text(ct.SocialsHeading, terminal.Heading)
	socials(p, c.Socials)
}

func socials(p *page, list []content.Social) {
	if len(list) == 0 {
		return
	}
	p.blank()
	for _, s := range list {
		p.add(
			terminal.Span{Text: s.Label + "  ", Role: terminal.Muted},
			terminal.Span{Text: s.Href, Role: terminal.Accent},
		)
	}
}

func footerLine(f content.Footer, year int) string {
	return strings.ReplaceAll(f.Rights, "{year}", strconv.Itoa(year))
}

// starLine draws a sparse field of stars shifted by frame.
func starLine(width, frame int) string {
	if width <= 0 {
		return ""
	}
	glyphs := []rune("·  ✦   .    *  ·     ✧  .  ")
	out := make([]rune, width)
	for i := range out {
		out[i] = glyphs[(i+frame)%len(glyphs)]
	}
	return string(out)
}
