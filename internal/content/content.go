// Package content holds the site's static records. They are compiled into the
// binary from site.yaml and never change at runtime.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var siteYAML []byte

var validate = validator.New()

var (
	markdown = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))
	policy   = bluemonday.UGCPolicy()
)

type Meta struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description"`
	Favicon     string `yaml:"favicon"`
}

type Profile struct {
	Brand     string `yaml:"brand" validate:"required"`
	Name      string `yaml:"name" validate:"required"`
	Owner     string `yaml:"owner" validate:"required"`
	Avatar    string `yaml:"avatar"`
	AvatarAlt string `yaml:"avatar_alt"`
	Intro     string `yaml:"intro" validate:"required"`

	IntroHTML template.HTML `yaml:"-"`
}

type SocialLink struct {
	Label string `yaml:"label" validate:"required"`
	Icon  string `yaml:"icon"`
	Href  string `yaml:"href" validate:"required,uri"`
}

// External reports whether the link leaves the site in a new tab.
func (s SocialLink) External() bool {
	return !strings.HasPrefix(s.Href, "mailto:")
}

// Website is a live site built for someone, linked out from its card.
type Website struct {
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description" validate:"required"`
	Tags        []string `yaml:"tags" validate:"dive,required"`
	Image       string   `yaml:"image"`
	URL         string   `yaml:"url" validate:"required,url"`

	DescriptionHTML template.HTML `yaml:"-"`
}

// Project is a showcase card without an outbound link.
type Project struct {
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description" validate:"required"`
	Tags        []string `yaml:"tags" validate:"dive,required"`
	Image       string   `yaml:"image"`

	DescriptionHTML template.HTML `yaml:"-"`
}

type SkillGroup struct {
	Title  string   `yaml:"title" validate:"required"`
	Skills []string `yaml:"skills" validate:"min=1,dive,required"`
}

// Site is the whole page's content.
type Site struct {
	Meta     Meta         `yaml:"meta"`
	Profile  Profile      `yaml:"profile"`
	Socials  []SocialLink `yaml:"socials" validate:"dive"`
	Websites []Website    `yaml:"websites" validate:"dive"`
	Projects []Project    `yaml:"projects" validate:"dive"`
	Skills   []SkillGroup `yaml:"skills" validate:"dive"`
}

// Load parses the embedded site document.
func Load() (*Site, error) {
	return Parse(siteYAML)
}

// Parse decodes, validates and renders a site document.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("decoding site content: %w", err)
	}
	if err := validate.Struct(&site); err != nil {
		return nil, fmt.Errorf("validating site content: %w", err)
	}

	var err error
	if site.Profile.IntroHTML, err = Render(site.Profile.Intro); err != nil {
		return nil, fmt.Errorf("rendering profile intro: %w", err)
	}
	for i := range site.Websites {
		w := &site.Websites[i]
		w.Title = strings.TrimSpace(w.Title)
		if w.DescriptionHTML, err = Render(w.Description); err != nil {
			return nil, fmt.Errorf("rendering website %q: %w", w.Title, err)
		}
	}
	for i := range site.Projects {
		p := &site.Projects[i]
		p.Title = strings.TrimSpace(p.Title)
		if p.DescriptionHTML, err = Render(p.Description); err != nil {
			return nil, fmt.Errorf("rendering project %q: %w", p.Title, err)
		}
	}

	return &site, nil
}

// Render converts Markdown to sanitized HTML.
func Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(strings.TrimSpace(src)), &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

// Tags returns every website and project tag once, in first-seen order.
func (s *Site) Tags() []string {
	websiteTags := lo.FlatMap(s.Websites, func(w Website, _ int) []string { return w.Tags })
	projectTags := lo.FlatMap(s.Projects, func(p Project, _ int) []string { return p.Tags })
	return lo.Uniq(append(websiteTags, projectTags...))
}
