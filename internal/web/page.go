package web

import (
	"html/template"
	"time"

	"github.com/hybridzdynamics/portfolio/internal/contact"
	"github.com/hybridzdynamics/portfolio/internal/content"
	"github.com/hybridzdynamics/portfolio/internal/effects"
	"github.com/samber/lo"
)

const placeholderImage = "/static/img/placeholder.svg"

// Card is a website or project tile.
type Card struct {
	Reveal      *effects.Reveal
	Title       string
	Description template.HTML
	Tags        []string
	Image       string
	URL         string
}

type SkillCard struct {
	Reveal *effects.Reveal
	Title  string
	Skills []string
}

// ContactView is the state of the contact form fragment.
type ContactView struct {
	Action       string
	HTMX         bool
	Static       bool
	Fields       contact.Message
	Notification *contact.Notification
}

// Page is everything index.html renders.
type Page struct {
	Site          *content.Site
	BaseURL       string
	Year          int
	Static        bool
	DocumentAttrs template.HTMLAttr
	Cursor        effects.Cursor
	HeroOpacity   float64

	Hero            *effects.Reveal
	HeroImage       *effects.Reveal
	WebsitesHeading *effects.Reveal
	ProjectsHeading *effects.Reveal
	SkillsHeading   *effects.Reveal
	ContactHeading  *effects.Reveal
	ContactReveal   *effects.Reveal

	Websites []Card
	Projects []Card
	Skills   []SkillCard
	Contact  ContactView
}

// NewPage lays out the site with every block hidden, ready for the browser
// observer to reveal.
func NewPage(site *content.Site, form ContactView, now time.Time) Page {
	return Page{
		Site:          site,
		Year:          now.Year(),
		Static:        form.Static,
		DocumentAttrs: effects.DocumentAttrs(),
		HeroOpacity:   effects.HeroOpacity(0),

		Hero:            effects.NewReveal(0),
		HeroImage:       effects.NewReveal(300 * time.Millisecond),
		WebsitesHeading: effects.NewReveal(0),
		ProjectsHeading: effects.NewReveal(0),
		SkillsHeading:   effects.NewReveal(0),
		ContactHeading:  effects.NewReveal(0),
		ContactReveal:   effects.NewReveal(200 * time.Millisecond),

		Websites: lo.Map(site.Websites, func(w content.Website, i int) Card {
			return Card{
				Reveal:      effects.Staggered(i),
				Title:       w.Title,
				Description: w.DescriptionHTML,
				Tags:        w.Tags,
				Image:       imageOrPlaceholder(w.Image),
				URL:         w.URL,
			}
		}),
		Projects: lo.Map(site.Projects, func(p content.Project, i int) Card {
			return Card{
				Reveal:      effects.Staggered(i),
				Title:       p.Title,
				Description: p.DescriptionHTML,
				Tags:        p.Tags,
				Image:       imageOrPlaceholder(p.Image),
			}
		}),
		Skills: lo.Map(site.Skills, func(s content.SkillGroup, i int) SkillCard {
			return SkillCard{Reveal: effects.Staggered(i), Title: s.Title, Skills: s.Skills}
		}),
		Contact: form,
	}
}

func imageOrPlaceholder(src string) string {
	if src == "" {
		return placeholderImage
	}
	return src
}
