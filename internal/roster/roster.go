// Package roster matches recognized character and outfit names against the
// character roster and derives a race strategy from style aptitudes.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"uma-scanner/internal/skills"
)

// Outfit is one visual variant of a character. Order matters: the first
// listed outfit is the fallback pick when only the character name matched.
type Outfit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Character is one roster entry.
type Character struct {
	ID      string
	Name    string   `json:"name"`
	Outfits []Outfit `json:"outfits"`
}

// Roster is the read-only character table, loaded once at process start.
type Roster struct {
	characters []Character
}

// New builds a roster from identifier-to-character entries. Characters
// without outfits are rejected.
func New(entries map[string]Character) (*Roster, error) {
	characters := make([]Character, 0, len(entries))
	for id, c := range entries {
		if len(c.Outfits) == 0 {
			return nil, fmt.Errorf("character %s has no outfits", id)
		}
		c.ID = id
		characters = append(characters, c)
	}

	sort.Slice(characters, func(i, j int) bool { return characters[i].ID < characters[j].ID })
	return &Roster{characters: characters}, nil
}

// Load reads a roster catalog from a JSON file.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var entries map[string]Character
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	return New(entries)
}

// Len returns the number of roster entries.
func (r *Roster) Len() int {
	return len(r.characters)
}

// ResolveOutfit matches recognized outfit and name text against the roster.
// Outfit display names are searched first; when none matches, the base
// character name is tried and that character's first-listed outfit is
// selected. Returns the outfit identifier and the owning character's
// display name, or ok=false when neither text matches anything.
//
// threshold is the minimum similarity for a match; containment of one
// normalized string in the other always matches.
func (r *Roster) ResolveOutfit(outfitText, nameText string, threshold float64) (outfitID, characterName string, ok bool) {
	bestScore := threshold
	for _, c := range r.characters {
		for _, o := range c.Outfits {
			if s := skills.Similarity(outfitText, o.Name); s > bestScore {
				bestScore = s
				outfitID, characterName = o.ID, c.Name
			}
		}
	}
	if outfitID != "" {
		return outfitID, characterName, true
	}

	for _, c := range r.characters {
		if s := skills.Similarity(nameText, c.Name); s > bestScore {
			bestScore = s
			outfitID, characterName = c.Outfits[0].ID, c.Name
		}
	}
	if outfitID != "" {
		return outfitID, characterName, true
	}
	return "", "", false
}
