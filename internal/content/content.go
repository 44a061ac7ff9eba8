package content

// Content is the complete set of localized copy for one locale. Every locale
// file decodes into the same shape.
type Content struct {
	Meta       Meta       `toml:"meta" json:"meta" yaml:"meta"`
	Nav        Nav        `toml:"nav" json:"nav" yaml:"nav"`
	Hero       Hero       `toml:"hero" json:"hero" yaml:"hero"`
	About      About      `toml:"about" json:"about" yaml:"about"`
	Skills     Skills     `toml:"skills" json:"skills" yaml:"skills"`
	Projects   Projects   `toml:"projects" json:"projects" yaml:"projects"`
	Experience Experience `toml:"experience" json:"experience" yaml:"experience"`
	Contact    Contact    `toml:"contact" json:"contact" yaml:"contact"`
	Footer     Footer     `toml:"footer" json:"footer" yaml:"footer"`
	Socials    []Social   `toml:"socials" json:"socials" yaml:"socials"`
}

type Meta struct {
	SiteName string `toml:"site_name" json:"siteName" yaml:"site_name"`
	Author   string `toml:"author" json:"author" yaml:"author"`
	Location string `toml:"location" json:"location" yaml:"location"`
	Email    string `toml:"email" json:"email" yaml:"email"`
	Phone    string `toml:"phone" json:"phone" yaml:"phone"`
}

type Nav struct {
	Items []NavItem `toml:"items" json:"items" yaml:"items"`
}

type NavItem struct {
	Label string `toml:"label" json:"label" yaml:"label"`
	Href  string `toml:"href" json:"href" yaml:"href"`
}

// Anchor returns the section id an item points at, without the leading '#'.
func (n NavItem) Anchor() string {
	if len(n.Href) > 0 && n.Href[0] == '#' {
		return n.Href[1:]
	}
	return n.Href
}

type Hero struct {
	Greeting    string   `toml:"greeting" json:"greeting" yaml:"greeting"`
	Name        string   `toml:"name" json:"name" yaml:"name"`
	Title       string   `toml:"title" json:"title" yaml:"title"`
	Description string   `toml:"description" json:"description" yaml:"description"`
	CTAs        HeroCTAs `toml:"ctas" json:"ctas" yaml:"ctas"`
}

type HeroCTAs struct {
	SeeProjects string `toml:"see_projects" json:"seeProjects" yaml:"see_projects"`
	GetInTouch  string `toml:"get_in_touch" json:"getInTouch" yaml:"get_in_touch"`
}

type About struct {
	Heading        string   `toml:"heading" json:"heading" yaml:"heading"`
	Subheading     string   `toml:"subheading" json:"subheading" yaml:"subheading"`
	AvatarInitials string   `toml:"avatar_initials" json:"avatarInitials" yaml:"avatar_initials"`
	Name           string   `toml:"name" json:"name" yaml:"name"`
	Role           string   `toml:"role" json:"role" yaml:"role"`
	Bio1           string   `toml:"bio1" json:"bio1" yaml:"bio1"`
	Bio2           string   `toml:"bio2" json:"bio2" yaml:"bio2"`
	Values         []Value  `toml:"values" json:"values" yaml:"values"`
	Technologies   []string `toml:"technologies" json:"technologies" yaml:"technologies"`
}

type Value struct {
	Icon        string `toml:"icon" json:"icon" yaml:"icon"`
	Title       string `toml:"title" json:"title" yaml:"title"`
	Description string `toml:"description" json:"description" yaml:"description"`
}

type Skills struct {
	Heading      string          `toml:"heading" json:"heading" yaml:"heading"`
	Subheading   string          `toml:"subheading" json:"subheading" yaml:"subheading"`
	Categories   []SkillCategory `toml:"categories" json:"categories" yaml:"categories"`
	ToolsHeading string          `toml:"tools_heading" json:"toolsHeading" yaml:"tools_heading"`
	Tools        []Tool          `toml:"tools" json:"tools" yaml:"tools"`
}

type SkillCategory struct {
	Icon   string  `toml:"icon" json:"icon" yaml:"icon"`
	Title  string  `toml:"title" json:"title" yaml:"title"`
	Color  string  `toml:"color" json:"color" yaml:"color"`
	Skills []Skill `toml:"skills" json:"skills" yaml:"skills"`
}

type Skill struct {
	Name  string `toml:"name" json:"name" yaml:"name"`
	Level int    `toml:"level" json:"level" yaml:"level"`
}

type Tool struct {
	Icon        string `toml:"icon" json:"icon" yaml:"icon"`
	Name        string `toml:"name" json:"name" yaml:"name"`
	Description string `toml:"description" json:"description" yaml:"description"`
}

type Projects struct {
	Heading      string    `toml:"heading" json:"heading" yaml:"heading"`
	Subheading   string    `toml:"subheading" json:"subheading" yaml:"subheading"`
	MoreHeading  string    `toml:"more_heading" json:"moreHeading" yaml:"more_heading"`
	CTAAllGithub string    `toml:"cta_all_github" json:"ctaAllGithub" yaml:"cta_all_github"`
	Items        []Project `toml:"items" json:"items" yaml:"items"`
}

type Project struct {
	ID          int          `toml:"id" json:"id" yaml:"id"`
	Slug        string       `toml:"slug" json:"slug" yaml:"slug"`
	Title       string       `toml:"title" json:"title" yaml:"title"`
	Description string       `toml:"description" json:"description" yaml:"description"`
	Image       string       `toml:"image" json:"image" yaml:"image"`
	Tags        []string     `toml:"tags" json:"tags" yaml:"tags"`
	Featured    bool         `toml:"featured" json:"featured" yaml:"featured"`
	Links       ProjectLinks `toml:"links" json:"links" yaml:"links"`
}

type ProjectLinks struct {
	Demo   string `toml:"demo" json:"demo" yaml:"demo"`
	Github string `toml:"github" json:"github" yaml:"github"`
}

// FindProject looks a project up by numeric id or slug.
func (p Projects) FindProject(id string) (Project, bool) {
	for _, item := range p.Items {
		if item.Slug == id || itoa(item.ID) == id {
			return item, true
		}
	}
	return Project{}, false
}

type Experience struct {
	Heading          string      `toml:"heading" json:"heading" yaml:"heading"`
	Subheading       string      `toml:"subheading" json:"subheading" yaml:"subheading"`
	EducationHeading string      `toml:"education_heading" json:"educationHeading" yaml:"education_heading"`
	Timeline         []Job       `toml:"timeline" json:"timeline" yaml:"timeline"`
	Education        []Education `toml:"education" json:"education" yaml:"education"`
}

type Job struct {
	ID           int      `toml:"id" json:"id" yaml:"id"`
	Company      string   `toml:"company" json:"company" yaml:"company"`
	Position     string   `toml:"position" json:"position" yaml:"position"`
	Period       string   `toml:"period" json:"period" yaml:"period"`
	Location     string   `toml:"location" json:"location" yaml:"location"`
	Type         string   `toml:"type" json:"type" yaml:"type"`
	Description  string   `toml:"description" json:"description" yaml:"description"`
	Achievements []string `toml:"achievements" json:"achievements" yaml:"achievements"`
	Technologies []string `toml:"technologies" json:"technologies" yaml:"technologies"`
}

type Education struct {
	Institution string   `toml:"institution" json:"institution" yaml:"institution"`
	Degree      string   `toml:"degree" json:"degree" yaml:"degree"`
	Period      string   `toml:"period" json:"period" yaml:"period"`
	Location    string   `toml:"location" json:"location" yaml:"location"`
	Description string   `toml:"description" json:"description" yaml:"description"`
	Projects    []string `toml:"projects" json:"projects" yaml:"projects"`
}

type Contact struct {
	Heading          string      `toml:"heading" json:"heading" yaml:"heading"`
	Subheading       string      `toml:"subheading" json:"subheading" yaml:"subheading"`
	Form             ContactForm `toml:"form" json:"form" yaml:"form"`
	QuickChatHeading string      `toml:"quick_chat_heading" json:"quickChatHeading" yaml:"quick_chat_heading"`
	QuickChatDesc    string      `toml:"quick_chat_desc" json:"quickChatDesc" yaml:"quick_chat_desc"`
	ScheduleCall     string      `toml:"schedule_call" json:"scheduleCall" yaml:"schedule_call"`
	ResumeHeading    string      `toml:"resume_heading" json:"resumeHeading" yaml:"resume_heading"`
	ResumeDesc       string      `toml:"resume_desc" json:"resumeDesc" yaml:"resume_desc"`
	ResumeCTA        string      `toml:"resume_cta" json:"resumeCta" yaml:"resume_cta"`
	SocialsHeading   string      `toml:"socials_heading" json:"socialsHeading" yaml:"socials_heading"`
}

type ContactForm struct {
	Name         string `toml:"name" json:"name" yaml:"name"`
	Email        string `toml:"email" json:"email" yaml:"email"`
	Subject      string `toml:"subject" json:"subject" yaml:"subject"`
	Message      string `toml:"message" json:"message" yaml:"message"`
	Submit       string `toml:"submit" json:"submit" yaml:"submit"`
	Submitting   string `toml:"submitting" json:"submitting" yaml:"submitting"`
	SuccessTitle string `toml:"success_title" json:"successTitle" yaml:"success_title"`
	SuccessDesc  string `toml:"success_desc" json:"successDesc" yaml:"success_desc"`
	ErrorTitle   string `toml:"error_title" json:"errorTitle" yaml:"error_title"`
	ErrorDesc    string `toml:"error_desc" json:"errorDesc" yaml:"error_desc"`
}

type Footer struct {
	Brand          string `toml:"brand" json:"brand" yaml:"brand"`
	Tagline        string `toml:"tagline" json:"tagline" yaml:"tagline"`
	NavHeading     string `toml:"nav_heading" json:"navHeading" yaml:"nav_heading"`
	ContactHeading string `toml:"contact_heading" json:"contactHeading" yaml:"contact_heading"`
	BuiltWith      string `toml:"built_with" json:"builtWith" yaml:"built_with"`
	Rights         string `toml:"rights" json:"rights" yaml:"rights"`
}

type Social struct {
	Label string `toml:"label" json:"label" yaml:"label"`
	Href  string `toml:"href" json:"href" yaml:"href"`
	Icon  string `toml:"icon" json:"icon" yaml:"icon"`
}
