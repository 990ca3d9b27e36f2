// Package roadmap holds the bundled study plan and the per-day note
// identity rules. The plan itself is static and not user-editable; only
// the notes cross-referencing it live in the store.
package roadmap

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

//go:embed plan.json
var planJSON []byte

// DayKeyLayout is the day key format used by plan dates and note ids.
const DayKeyLayout = "02-01-2006"

type Topic struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

type Week struct {
	Label  string   `json:"label"`
	Dates  []string `json:"dates"` // day keys, DD-MM-YYYY
	Topics []Topic  `json:"topics"`
}

type Phase struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Weeks []Week `json:"weeks"`
}

type Plan struct {
	Phases []Phase `json:"phases"`
}

// Load parses the bundled plan.
func Load() (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(planJSON, &p); err != nil {
		return nil, fmt.Errorf("parse bundled study plan: %w", err)
	}
	return &p, nil
}

// Phase returns the phase with the given key, or nil.
func (p *Plan) Phase(key string) *Phase {
	for i := range p.Phases {
		if p.Phases[i].Key == key {
			return &p.Phases[i]
		}
	}
	return nil
}

// Week returns the week with the given label, or nil.
func (ph *Phase) Week(label string) *Week {
	for i := range ph.Weeks {
		if ph.Weeks[i].Label == label {
			return &ph.Weeks[i]
		}
	}
	return nil
}

// Selection is a resolved position in the plan.
type Selection struct {
	Phase string `json:"phase"`
	Week  string `json:"week"`
	Day   string `json:"day"`
}

// Locate finds the phase/week containing the given day key.
func (p *Plan) Locate(day string) (Selection, bool) {
	for _, ph := range p.Phases {
		for _, wk := range ph.Weeks {
			for _, d := range wk.Dates {
				if d == day {
					return Selection{Phase: ph.Key, Week: wk.Label, Day: day}, true
				}
			}
		}
	}
	return Selection{}, false
}

// Select resolves the view for "now": the phase/week/day containing the
// current calendar date, falling back to the start of the plan when today
// is outside it.
func (p *Plan) Select(now time.Time) Selection {
	if sel, ok := p.Locate(DayKey(now)); ok {
		return sel
	}
	if len(p.Phases) == 0 {
		return Selection{}
	}
	ph := p.Phases[0]
	sel := Selection{Phase: ph.Key}
	if len(ph.Weeks) > 0 {
		sel.Week = ph.Weeks[0].Label
		if len(ph.Weeks[0].Dates) > 0 {
			sel.Day = ph.Weeks[0].Dates[0]
		}
	}
	return sel
}

// DayKey formats a time as a plan day key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ValidDayKey reports whether the string parses as a day key.
func ValidDayKey(s string) bool {
	_, err := time.Parse(DayKeyLayout, s)
	return err == nil
}

var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// NoteID derives the deterministic document id for (owner email, day key):
// at most one note per user per day, two saves land on the same document.
func NoteID(email, day string) string {
	return unsafeIDChars.ReplaceAllString(email, "_") + "_" + day
}
