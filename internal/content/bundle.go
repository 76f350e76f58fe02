package content

import (
	"encoding/json"
	"fmt"
)

// Section names one area of the page with its own fragment, document and renderer.
type Section string

const (
	SectionHero       Section = "hero"
	SectionAbout      Section = "about"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionLanguages  Section = "languages"
	SectionSkills     Section = "skills"
	SectionNavigation Section = "navigation"
	SectionContact    Section = "contact"
)

// Sections is the fixed load order of the content documents.
var Sections = []Section{
	SectionHero,
	SectionAbout,
	SectionExperience,
	SectionEducation,
	SectionLanguages,
	SectionSkills,
	SectionNavigation,
	SectionContact,
}

// Bundle aggregates the content documents of one load. A nil field means the
// document is absent.
type Bundle struct {
	Hero       *Hero
	About      *About
	Experience ExperienceDoc
	Education  *Education
	Languages  *Languages
	Skills     *Skills
	Navigation Navigation
	Contact    *Contact
}

// Decode parses raw into the document slot for section.
func (b *Bundle) Decode(section Section, raw []byte) error {
	var target any
	switch section {
	case SectionHero:
		b.Hero = &Hero{}
		target = b.Hero
	case SectionAbout:
		b.About = &About{}
		target = b.About
	case SectionExperience:
		target = &b.Experience
	case SectionEducation:
		b.Education = &Education{}
		target = b.Education
	case SectionLanguages:
		b.Languages = &Languages{}
		target = b.Languages
	case SectionSkills:
		b.Skills = &Skills{}
		target = b.Skills
	case SectionNavigation:
		target = &b.Navigation
	case SectionContact:
		b.Contact = &Contact{}
		target = b.Contact
	default:
		return fmt.Errorf("content: unknown section %q", section)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("content: decode %s: %w", section, err)
	}
	b.dropNull(section, raw)
	return nil
}

// dropNull clears a slot whose document is the JSON literal null.
func (b *Bundle) dropNull(section Section, raw []byte) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil || probe != nil {
		return
	}
	switch section {
	case SectionHero:
		b.Hero = nil
	case SectionAbout:
		b.About = nil
	case SectionEducation:
		b.Education = nil
	case SectionLanguages:
		b.Languages = nil
	case SectionSkills:
		b.Skills = nil
	case SectionContact:
		b.Contact = nil
	}
}
