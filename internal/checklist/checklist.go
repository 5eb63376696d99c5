// Package checklist stores per-platform publishing progress in a task
// description.
package checklist

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrUnknownChecklist = errors.New("unknown checklist")
	ErrUnknownPlatform  = errors.New("unknown platform")
)

type Definition struct {
	Key       string
	Label     string
	Platforms []string
}

// Definitions are fixed; State keys outside of them are kept but ignored.
var Definitions = []Definition{
	{
		Key:       "reel",
		Label:     "Checklist for reel",
		Platforms: []string{"Facebook", "Instagram", "TikTok", "YouTube", "LinkedIn", "Threads"},
	},
	{
		Key:       "image",
		Label:     "Checklist for image",
		Platforms: []string{"Facebook", "Instagram", "LinkedIn", "Google Business", "Threads"},
	},
}

func Lookup(key string) (Definition, bool) {
	for _, d := range Definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

func (d Definition) has(platform string) bool {
	for _, p := range d.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// State maps a checklist key to its checked platforms.
type State map[string][]string

// Parse reads a description. Empty or malformed input yields an empty state.
func Parse(description string) State {
	s := State{}
	if description == "" {
		return s
	}
	if err := json.Unmarshal([]byte(description), &s); err != nil || s == nil {
		return State{}
	}
	return s
}

func (s State) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode checklist: %w", err)
	}
	return string(b), nil
}

func (s State) Checked(key, platform string) bool {
	for _, p := range s[key] {
		if p == platform {
			return true
		}
	}
	return false
}

// Toggle flips one platform and returns the new state. s is not modified.
func (s State) Toggle(key, platform string) (State, error) {
	def, ok := Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChecklist, key)
	}
	if !def.has(platform) {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownPlatform, platform, key)
	}

	out := make(State, len(s)+1)
	for k, v := range s {
		out[k] = append([]string(nil), v...)
	}
	checked := out[key]
	if s.Checked(key, platform) {
		kept := checked[:0]
		for _, p := range checked {
			if p != platform {
				kept = append(kept, p)
			}
		}
		out[key] = kept
	} else {
		out[key] = append(checked, platform)
	}
	return out, nil
}

// Progress is the rounded share of checked platforms, 0..100.
func (s State) Progress(key string) int {
	def, ok := Lookup(key)
	if !ok || len(def.Platforms) == 0 {
		return 0
	}
	done := 0
	for _, p := range def.Platforms {
		if s.Checked(key, p) {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(def.Platforms)) * 100))
}

// Keys returns the state's keys in stable order.
func (s State) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
