package content

// Hero is the content document for the landing section.
type Hero struct {
	Name         Value        `json:"name"`
	Role         Value        `json:"role"`
	Descriptions []Value      `json:"descriptions"`
	Buttons      *HeroButtons `json:"buttons,omitempty"`
}

// HeroButtons holds the call-to-action labels.
type HeroButtons struct {
	Contact Value `json:"contact"`
	About   Value `json:"about"`
}

// About is the content document for the about section.
type About struct {
	Title        Value        `json:"title"`
	Descriptions []Value      `json:"descriptions"`
	Stats        []Stat       `json:"stats"`
	Skills       []AboutSkill `json:"skills"`
}

// Stat is a highlighted figure such as years of experience.
type Stat struct {
	Icon  string `json:"icon"`
	Value Value  `json:"value"`
	Label Value  `json:"label"`
}

// AboutSkill is a skill card of the about section.
type AboutSkill struct {
	Icon        string `json:"icon"`
	Title       Value  `json:"title"`
	Description Value  `json:"description"`
}

// ExperienceDoc is the ordered list of positions. A nil slice means the document is absent.
type ExperienceDoc []Experience

// Experience is one position.
type Experience struct {
	Company          Value    `json:"company"`
	Role             Value    `json:"role"`
	Duration         Value    `json:"duration"`
	Context          Value    `json:"context"`
	Type             Value    `json:"type"`
	Responsibilities Value    `json:"responsibilities"`
	Results          Value    `json:"results"`
	TechStack        []string `json:"techStack"`
}

// Education is the content document for the education section.
type Education struct {
	Title    Value           `json:"title"`
	Subtitle Value           `json:"subtitle"`
	Items    []EducationItem `json:"items"`
}

// EducationItem is one degree or certificate.
type EducationItem struct {
	Institution Value    `json:"institution"`
	Degree      Value    `json:"degree"`
	Year        Value    `json:"year"`
	Badges      []string `json:"badges"`
}

// CredentialBadge marks an education item evaluated by World Education Services.
const CredentialBadge = "WES"

// HasBadge reports whether the item carries the given badge marker.
func (e EducationItem) HasBadge(badge string) bool {
	for _, b := range e.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// Languages is the content document for spoken languages.
type Languages struct {
	Title    Value          `json:"title"`
	Subtitle Value          `json:"subtitle"`
	Items    []LanguageItem `json:"items"`
}

// LanguageItem is one spoken language and its level.
type LanguageItem struct {
	Language Value `json:"language"`
	Level    Value `json:"level"`
}

// Skills is the content document for the skills section.
type Skills struct {
	Title         Value          `json:"title"`
	Technical     *SkillCategory `json:"technical,omitempty"`
	Frameworks    *SkillCategory `json:"frameworks,omitempty"`
	Languages     *SkillCategory `json:"languages,omitempty"`
	Databases     *SkillCategory `json:"databases,omitempty"`
	Tools         *SkillCategory `json:"tools,omitempty"`
	Methodologies *SkillCategory `json:"methodologies,omitempty"`
}

// SkillCategory groups skill tags under a heading.
type SkillCategory struct {
	Title Value   `json:"title"`
	Items []Value `json:"items"`
}

// Empty reports whether the category has nothing to render.
func (c *SkillCategory) Empty() bool { return c == nil || len(c.Items) == 0 }

// Navigation maps a section anchor (without '#') to its label.
type Navigation map[string]Value

// Contact is the content document for the contact section.
type Contact struct {
	Title          Value           `json:"title"`
	Subtitle       Value           `json:"subtitle"`
	ContactMethods *ContactMethods `json:"contactMethods,omitempty"`
	Location       Value           `json:"location"`
}

// ContactMethods holds the labels of the four contact cards.
type ContactMethods struct {
	Email    Value `json:"email"`
	Whatsapp Value `json:"whatsapp"`
	Phone    Value `json:"phone"`
	Location Value `json:"location"`
}
