package aas

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

//go:embed templates
var templateFS embed.FS

// Template is one embedded submodel template package. The category is the
// directory the template file lives in.
type Template struct {
	ID          string
	Name        string
	Category    string
	IDShort     string
	Version     string
	Description string

	raw []byte
}

// Raw returns the template's JSON document.
func (t *Template) Raw() []byte { return t.raw }

// TemplateRegistry holds the embedded submodel templates, keyed by their
// template id.
type TemplateRegistry struct {
	templates map[string]*Template
}

// LoadTemplates scans the embedded template tree and builds the registry.
// A template file that fails to parse is reported, not skipped silently:
// the embedded set is part of the build and must be sound.
func LoadTemplates() (*TemplateRegistry, error) {
	reg := &TemplateRegistry{templates: make(map[string]*Template)}

	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		data, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		sm, err := DecodeSubmodel(data)
		if err != nil {
			return fmt.Errorf("template %s: %w", p, err)
		}
		tmpl := &Template{
			ID:       sm.ID,
			Name:     path.Base(p),
			Category: path.Base(path.Dir(p)),
			IDShort:  sm.IDShort,
			raw:      data,
		}
		if sm.Administration != nil {
			tmpl.Version = sm.Administration.Version
		}
		for _, d := range sm.Description {
			if d.Language == "en" {
				tmpl.Description = d.Text
				break
			}
		}
		reg.templates[tmpl.ID] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// List returns all templates sorted by category then idShort.
func (r *TemplateRegistry) List() []*Template {
	out := make([]*Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].IDShort < out[j].IDShort
	})
	return out
}

// Get returns the template with the given template id.
func (r *TemplateRegistry) Get(id string) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// ResolveToken resolves a template token of the form <idShort> or
// <idShort>@<version-or-range> to a template. The name part matches the
// template's idShort case-insensitively; the version part, when present,
// is matched semver-aware against the template version (exact versions
// compare for equality, anything else is treated as a constraint).
func (r *TemplateRegistry) ResolveToken(token string) (*Template, error) {
	name, ver := splitTemplateToken(token)
	if name == "" {
		return nil, fmt.Errorf("empty template token")
	}

	var candidates []*Template
	for _, t := range r.templates {
		if strings.EqualFold(t.IDShort, name) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		// Fall back to a full template id match.
		if t, ok := r.templates[token]; ok {
			return t, nil
		}
		return nil, fmt.Errorf("no template named %q", name)
	}

	if ver == "" {
		// Highest version wins when several are embedded.
		sort.Slice(candidates, func(i, j int) bool {
			return compareTemplateVersions(candidates[i].Version, candidates[j].Version) > 0
		})
		return candidates[0], nil
	}

	for _, t := range candidates {
		if templateVersionMatches(t.Version, ver) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("template %q has no version matching %q", name, ver)
}

func splitTemplateToken(s string) (name, ver string) {
	s = strings.TrimSpace(s)
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return s, ""
	}
	return strings.TrimSpace(s[:at]), strings.TrimSpace(s[at+1:])
}

func templateVersionMatches(have, want string) bool {
	hv, err := semver.NewVersion(have)
	if err != nil {
		return have == want
	}
	if wv, err := semver.NewVersion(want); err == nil {
		return hv.Equal(wv)
	}
	c, err := semver.NewConstraint(want)
	if err != nil {
		return false
	}
	return c.Check(hv)
}

func compareTemplateVersions(a, b string) int {
	av, aerr := semver.NewVersion(a)
	bv, berr := semver.NewVersion(b)
	if aerr != nil || berr != nil {
		return strings.Compare(a, b)
	}
	return av.Compare(bv)
}

// Instantiate produces a fresh submodel instance document from the
// template: a newly generated urn:uuid identifier, kind switched to
// Instance, and the source template id recorded in
// administration.templateId. The returned document is a decoded JSON map
// ready for submission to the repository.
func (t *Template) Instantiate() (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(t.raw, &doc); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", t.Name, err)
	}

	doc["id"] = "urn:uuid:" + uuid.NewString()
	doc["kind"] = KindInstance

	admin, _ := doc["administration"].(map[string]any)
	if admin == nil {
		admin = make(map[string]any)
	}
	admin["templateId"] = t.ID
	doc["administration"] = admin

	return doc, nil
}
