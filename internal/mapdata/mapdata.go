// Package mapdata loads the static map and metadata the engine is seeded
// from: counties, kingdoms, playable characters and the adjacency graph.
// Identifiers are normalized to upper case; malformed records are skipped.
package mapdata

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/duncanmcewan/marchlands/internal/common"
)

// CountyRecord is one county definition from the map file.
type CountyRecord struct {
	ID         string
	Name       string
	Prosperity int
	Population int
	Buildings  map[string]int
	RoadLevel  int
}

// KingdomRecord is one kingdom definition.
type KingdomRecord struct {
	ID        string
	Name      string
	Color     string
	CountyIDs []string
}

// CharacterRecord is one playable starting character.
type CharacterRecord struct {
	ID            string
	Name          string
	StartCountyID string
}

// MapData is the loaded, normalized static map.
type MapData struct {
	Counties   []CountyRecord
	Kingdoms   []KingdomRecord
	Characters []CharacterRecord

	adjacency map[string][]string
}

// Neighbors returns the sorted neighbor ids of a county, satisfying the
// engine's adjacency provider interface.
func (m *MapData) Neighbors(countyID string) []string {
	return m.adjacency[strings.ToUpper(countyID)]
}

// yaml wire schema
type mapFile struct {
	Counties []struct {
		ID         string         `yaml:"id"`
		Name       string         `yaml:"name"`
		Prosperity int            `yaml:"prosperity"`
		Population int            `yaml:"population"`
		RoadLevel  int            `yaml:"road_level"`
		Buildings  map[string]int `yaml:"buildings"`
		Neighbors  []string       `yaml:"neighbors"`
	} `yaml:"counties"`
	Kingdoms []struct {
		ID       string   `yaml:"id"`
		Name     string   `yaml:"name"`
		Color    string   `yaml:"color"`
		Counties []string `yaml:"counties"`
	} `yaml:"kingdoms"`
	Characters []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		StartCounty string `yaml:"start_county"`
	} `yaml:"characters"`
	// ExtraEdges are manual adjacency overrides for borders the polygon data
	// misses (fords, bridges, sea lanes).
	ExtraEdges [][]string `yaml:"extra_edges"`
}

// Load reads and parses a map file.
func Load(path string) (*MapData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	return Parse(raw)
}

// Parse builds MapData from raw YAML.
func Parse(raw []byte) (*MapData, error) {
	var f mapFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing map file: %w", err)
	}

	logger := log.With().Str("component", "mapdata").Logger()
	m := &MapData{adjacency: make(map[string][]string)}
	known := make(map[string]bool)

	for _, c := range f.Counties {
		id := normalizeID(c.ID)
		if !common.IsValidID(id) || c.Name == "" {
			logger.Debug().Str("id", c.ID).Msg("Skipping malformed county record")
			continue
		}
		if known[id] {
			logger.Debug().Str("id", id).Msg("Skipping duplicate county record")
			continue
		}
		known[id] = true
		rec := CountyRecord{
			ID:         id,
			Name:       c.Name,
			Prosperity: clampProsperity(c.Prosperity),
			Population: c.Population,
			RoadLevel:  c.RoadLevel,
		}
		if len(c.Buildings) > 0 {
			rec.Buildings = make(map[string]int, len(c.Buildings))
			for bt, lvl := range c.Buildings {
				rec.Buildings[normalizeID(bt)] = lvl
			}
		}
		m.Counties = append(m.Counties, rec)
	}

	// Adjacency from declared neighbor lists plus manual override edges,
	// kept symmetric and pruned to known counties.
	for _, c := range f.Counties {
		id := normalizeID(c.ID)
		if !known[id] {
			continue
		}
		for _, n := range c.Neighbors {
			m.addEdge(known, id, normalizeID(n))
		}
	}
	for _, edge := range f.ExtraEdges {
		if len(edge) != 2 {
			logger.Debug().Strs("edge", edge).Msg("Skipping malformed extra edge")
			continue
		}
		m.addEdge(known, normalizeID(edge[0]), normalizeID(edge[1]))
	}
	for id := range m.adjacency {
		sort.Strings(m.adjacency[id])
	}

	for _, k := range f.Kingdoms {
		id := normalizeID(k.ID)
		if !common.IsValidID(id) || k.Name == "" {
			logger.Debug().Str("id", k.ID).Msg("Skipping malformed kingdom record")
			continue
		}
		rec := KingdomRecord{ID: id, Name: k.Name, Color: k.Color}
		for _, cid := range k.Counties {
			cid = normalizeID(cid)
			if known[cid] {
				rec.CountyIDs = append(rec.CountyIDs, cid)
			}
		}
		m.Kingdoms = append(m.Kingdoms, rec)
	}

	for _, ch := range f.Characters {
		id := normalizeID(ch.ID)
		start := normalizeID(ch.StartCounty)
		if !common.IsValidID(id) || ch.Name == "" || !known[start] {
			logger.Debug().Str("id", ch.ID).Msg("Skipping malformed character record")
			continue
		}
		m.Characters = append(m.Characters, CharacterRecord{
			ID:            id,
			Name:          ch.Name,
			StartCountyID: start,
		})
	}

	sort.Slice(m.Counties, func(i, j int) bool { return m.Counties[i].ID < m.Counties[j].ID })
	return m, nil
}

func (m *MapData) addEdge(known map[string]bool, a, b string) {
	if a == b || !known[a] || !known[b] {
		return
	}
	if !contains(m.adjacency[a], b) {
		m.adjacency[a] = append(m.adjacency[a], b)
	}
	if !contains(m.adjacency[b], a) {
		m.adjacency[b] = append(m.adjacency[b], a)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func normalizeID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func clampProsperity(p int) int {
	if p < 0 {
		return 0
	}
	if p > 5 {
		return 5
	}
	return p
}
