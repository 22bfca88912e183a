// Package catalog renders localized message templates loaded from YAML.
//
// The file maps a locale tag to a set of keyed templates:
//
//	en:
//	  menu.main: "Huddle"
//	  notify.created: "{creator} scheduled {label} for {when}"
//
// Placeholders are written {name} and filled from the vars passed to Render.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultMessages []byte

// Catalog holds templates per locale. It is immutable after construction
// and safe for concurrent use.
type Catalog struct {
	messages map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	fallback string
}

// Load reads the catalog from path, or the embedded default when path is empty.
func Load(path, fallback string) (*Catalog, error) {
	data := defaultMessages
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}
	return Parse(data, fallback)
}

// Parse builds a catalog from YAML. The fallback locale must be present.
func Parse(data []byte, fallback string) (*Catalog, error) {
	raw := make(map[string]map[string]string)
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if _, ok := raw[fallback]; !ok {
		return nil, fmt.Errorf("catalog: fallback locale %q missing", fallback)
	}

	locales := make([]string, 0, len(raw))
	for loc := range raw {
		locales = append(locales, loc)
	}
	// Fallback first so the matcher prefers it on a tie.
	sort.Slice(locales, func(i, j int) bool {
		if locales[i] == fallback || locales[j] == fallback {
			return locales[i] == fallback
		}
		return locales[i] < locales[j]
	})

	tags := make([]language.Tag, len(locales))
	messages := make(map[string]map[string]string, len(locales))
	for i, loc := range locales {
		tag, err := language.Parse(loc)
		if err != nil {
			return nil, fmt.Errorf("catalog: locale %q: %w", loc, err)
		}
		tags[i] = tag
		messages[tag.String()] = raw[loc]
	}

	return &Catalog{
		messages: messages,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
		fallback: tags[0].String(),
	}, nil
}

// Locales returns the supported locale tags, fallback first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = t.String()
	}
	return out
}

// Render returns the template for key in the closest supported locale with
// placeholders substituted. Missing keys fall back to the fallback locale,
// then to the key itself.
func (c *Catalog) Render(locale, key string, vars map[string]string) string {
	tmpl, ok := c.messages[c.match(locale)][key]
	if !ok {
		tmpl, ok = c.messages[c.fallback][key]
	}
	if !ok {
		return key
	}
	if len(vars) == 0 {
		return tmpl
	}

	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func (c *Catalog) match(locale string) string {
	if locale == "" {
		return c.fallback
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx].String()
}
