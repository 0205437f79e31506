package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"tool-portal/notes"
	"tool-portal/registry"
)

const addToolLabel = "+ Add Tool"

// Link is one rendered tool.
type Link struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Hidden bool   `json:"hidden"`
}

// AddButton is a section's add affordance.
type AddButton struct {
	Disabled bool   `json:"disabled"`
	Label    string `json:"label"`
}

// Section is the rendered form of one category.
type Section struct {
	Category Category  `json:"category"`
	Links    []Link    `json:"links"`
	Hidden   bool      `json:"hidden"`
	Add      AddButton `json:"add"`
}

type SearchBox struct {
	Term     string `json:"term"`
	Disabled bool   `json:"disabled"`
}

type Toggle struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// AddDialog collects a new tool for Category.
type AddDialog struct {
	Open     bool   `json:"open"`
	Category string `json:"category"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

// EditDialog edits the URL of the tool called Name.
type EditDialog struct {
	Open bool   `json:"open"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// View is everything the dashboard shows. It is rebuilt from the registry on
// every change.
type View struct {
	Mode       Mode        `json:"mode"`
	Search     SearchBox   `json:"search"`
	Toggle     Toggle      `json:"toggle"`
	Sections   []Section   `json:"sections"`
	AddDialog  AddDialog   `json:"add_dialog"`
	EditDialog EditDialog  `json:"edit_dialog"`
	Notes      notes.Notes `json:"notes"`
}

// Section returns the section rendered for category id.
func (v *View) Section(id string) (*Section, bool) {
	for i := range v.Sections {
		if v.Sections[i].Category.ID == id {
			return &v.Sections[i], true
		}
	}
	return nil, false
}

func (v View) clone() View {
	out := v
	out.Sections = make([]Section, len(v.Sections))
	for i, s := range v.Sections {
		s.Links = append([]Link(nil), s.Links...)
		out.Sections[i] = s
	}
	return out
}

func newSections(layout []Category) []Section {
	sections := make([]Section, len(layout))
	for i, c := range layout {
		sections[i] = Section{Category: c}
	}
	return sections
}

// renderSections clears every section and puts one link per tool into the
// section of its category. Tools whose category has no section are dropped.
func renderSections(sections []Section, tools []registry.Tool) {
	index := make(map[string]int, len(sections))
	for i := range sections {
		sections[i].Links = nil
		index[sections[i].Category.ID] = i
	}
	for _, t := range tools {
		i, ok := index[t.Category]
		if !ok {
			continue
		}
		sections[i].Links = append(sections[i].Links, Link{Name: t.Name, URL: t.URL})
	}
	for i := range sections {
		links := sections[i].Links
		sort.SliceStable(links, func(a, b int) bool {
			return strings.ToLower(links[a].Name) < strings.ToLower(links[b].Name)
		})
	}
}

// checkLimits disables a section's add button once its rendered link count
// reaches the category maximum.
func checkLimits(sections []Section) {
	for i := range sections {
		s := &sections[i]
		max := s.Category.MaxTools
		if max > 0 && len(s.Links) >= max {
			s.Add = AddButton{Disabled: true, Label: fmt.Sprintf("Limit (%d) Reached", max)}
		} else {
			s.Add = AddButton{Label: addToolLabel}
		}
	}
}

// filterSections hides links whose name does not contain term, ignoring case.
// With a non-empty term, sections without a visible link are hidden too.
func filterSections(sections []Section, term string) {
	needle := strings.ToLower(term)
	for i := range sections {
		s := &sections[i]
		visible := 0
		for j := range s.Links {
			match := strings.Contains(strings.ToLower(s.Links[j].Name), needle)
			s.Links[j].Hidden = !match
			if match {
				visible++
			}
		}
		s.Hidden = term != "" && visible == 0
	}
}
