package menu

import (
	"fmt"
	"net/url"
	"strings"
)

// inSuffix marks the locator a free-text answer is submitted against.
const inSuffix = ":in"

// Locator names a menu step and the entity IDs it needs, written
// "step?key=value&...". Parameters are url query encoded so the encoding is
// stable for a given set of values.
type Locator struct {
	Step   string
	Params url.Values
}

// At builds a locator from a step and alternating key, value pairs.
func At(step string, kv ...string) Locator {
	p := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}
	return Locator{Step: step, Params: p}
}

// ParseLocator reads a locator produced by Locator.String.
func ParseLocator(raw string) (Locator, error) {
	step, query, _ := strings.Cut(strings.TrimSpace(raw), "?")
	if step == "" {
		return Locator{}, fmt.Errorf("empty locator step")
	}
	params, err := url.ParseQuery(query)
	if err != nil {
		return Locator{}, fmt.Errorf("parse locator %q: %w", raw, err)
	}
	return Locator{Step: step, Params: params}, nil
}

// Submit returns the locator free text for this step is posted to.
func (l Locator) Submit() Locator {
	return Locator{Step: l.Step + inSuffix, Params: l.Params}
}

func (l Locator) String() string {
	if len(l.Params) == 0 {
		return l.Step
	}
	return l.Step + "?" + l.Params.Encode()
}
