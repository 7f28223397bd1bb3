package resourcepack

import (
	"encoding/json"
	"strings"
)

// BlockstateDefinition is the parsed contents of a blockstates/*.json
// file: either a set of variants keyed by property string, or a list
// of multipart cases. A well-formed file has exactly one of the two
// populated.
type BlockstateDefinition struct {
	Variants  map[string]VariantList `json:"variants,omitempty"`
	Multipart []MultipartCase        `json:"multipart,omitempty"`
}

// ModelRef is one candidate model applied by a variant or multipart
// case, with its placement transform.
type ModelRef struct {
	Model  string `json:"model"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	UVLock bool   `json:"uvlock,omitempty"`
	Weight int    `json:"weight,omitempty"`
}

// VariantList handles the blockstate-JSON quirk where a variant value
// is either a single model object or an array of weighted alternatives.
type VariantList []ModelRef

func (v *VariantList) UnmarshalJSON(data []byte) error {
	var list []ModelRef
	if err := json.Unmarshal(data, &list); err == nil {
		*v = list
		return nil
	}
	var single ModelRef
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*v = VariantList{single}
	return nil
}

type MultipartCase struct {
	When  *MultipartWhen `json:"when,omitempty"`
	Apply VariantList    `json:"apply"`
}

// MultipartWhen is either a flat set of property=value constraints
// (all must match, pipe-separated alternatives within a value are an
// OR), or an explicit {"OR": [...]} / {"AND": [...]} of nested
// constraint sets.
type MultipartWhen struct {
	Simple map[string]string
	Or     []map[string]string
	And    []map[string]string
}

func (w *MultipartWhen) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if orRaw, ok := raw["OR"]; ok {
		var conds []map[string]string
		if err := json.Unmarshal(orRaw, &conds); err != nil {
			return err
		}
		w.Or = conds
		return nil
	}
	if andRaw, ok := raw["AND"]; ok {
		var conds []map[string]string
		if err := json.Unmarshal(andRaw, &conds); err != nil {
			return err
		}
		w.And = conds
		return nil
	}
	simple := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		simple[k] = s
	}
	w.Simple = simple
	return nil
}

// Matches reports whether the given canonical properties satisfy this
// constraint set. Missing properties fall back through a fixed list of
// default values before the match fails.
func (w *MultipartWhen) Matches(props map[string]string) bool {
	if w == nil {
		return true
	}
	if len(w.Or) > 0 {
		for _, cond := range w.Or {
			if matchAll(cond, props) {
				return true
			}
		}
		return false
	}
	if len(w.And) > 0 {
		for _, cond := range w.And {
			if !matchAll(cond, props) {
				return false
			}
		}
		return true
	}
	return matchAll(w.Simple, props)
}

var defaultPropertyValues = []string{"false", "none", "0", "normal", "bottom", "floor"}

func matchAll(cond map[string]string, props map[string]string) bool {
	for key, wantRaw := range cond {
		actual, present := props[key]
		if !present {
			if !matchesAnyDefault(wantRaw) {
				return false
			}
			continue
		}
		if !matchesAlternatives(wantRaw, actual) {
			return false
		}
	}
	return true
}

func matchesAlternatives(wantRaw, actual string) bool {
	for _, alt := range strings.Split(wantRaw, "|") {
		if alt == actual {
			return true
		}
	}
	return false
}

func matchesAnyDefault(wantRaw string) bool {
	for _, alt := range strings.Split(wantRaw, "|") {
		for _, def := range defaultPropertyValues {
			if alt == def {
				return true
			}
		}
	}
	return false
}
