// Package skills resolves recognized skill-line text against the skill name
// catalog using fuzzy matching with tier-glyph disambiguation.
package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Partition identifies which matching pool a skill belongs to. The primary
// skill slot on screen only ever holds a character's own unique skill;
// every other slot holds inherited-unique or regular skills. The two pools
// are mutually exclusive.
type Partition int

const (
	PartitionUnique Partition = iota
	PartitionRegular
)

// Names holds a skill's display names per language.
type Names struct {
	JA string `json:"ja"`
	EN string `json:"en"`
}

// Skill is one catalog entry with its partition resolved at load time.
type Skill struct {
	ID        string
	Names     []string
	Partition Partition
}

// Catalog is the read-only skill name table, loaded once at process start
// and shared across extraction runs without synchronization.
type Catalog struct {
	skills []Skill
}

// Original unique skills carry a "9"-prefixed identifier; inherited-unique
// variants and regular skills do not.
func partitionOf(id string) Partition {
	if strings.HasPrefix(id, "9") {
		return PartitionUnique
	}
	return PartitionRegular
}

// New builds a catalog from identifier-to-names entries. Entries without
// any display name are rejected.
func New(entries map[string]Names) (*Catalog, error) {
	skills := make([]Skill, 0, len(entries))
	for id, n := range entries {
		var names []string
		if n.JA != "" {
			names = append(names, n.JA)
		}
		if n.EN != "" {
			names = append(names, n.EN)
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("skill %s has no display names", id)
		}
		skills = append(skills, Skill{ID: id, Names: names, Partition: partitionOf(id)})
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].ID < skills[j].ID })
	return &Catalog{skills: skills}, nil
}

// Load reads a skill catalog from a JSON file mapping identifiers to
// per-language display names.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skill catalog: %w", err)
	}

	var entries map[string]Names
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse skill catalog %s: %w", path, err)
	}
	return New(entries)
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.skills)
}

// InPartition returns the catalog entries belonging to one matching pool.
func (c *Catalog) InPartition(p Partition) []Skill {
	var out []Skill
	for _, s := range c.skills {
		if s.Partition == p {
			out = append(out, s)
		}
	}
	return out
}
