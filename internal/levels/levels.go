package levels

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"orthoview.app/internal/ortho"
)

// Catalog is the static level library loaded at startup. Level content is
// treated as opaque ground truth: beyond id/resolution checks, cells are not
// validated here — the projection engine silently drops out-of-range cells.
type Catalog struct {
	ByID   map[string]Level
	Order  []string // level ids in catalog order (difficulty, then id)
	Digest string   // sha256 over the concatenated source files
}

// Level supplies a resolution and a ground-truth cell set (cubes only).
type Level struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Difficulty int      `json:"difficulty"`
	Resolution int      `json:"resolution"`
	Cells      [][3]int `json:"cells"`
}

// Solid returns the level's ground truth as engine cells.
func (l Level) Solid() []ortho.Cell {
	out := make([]ortho.Cell, 0, len(l.Cells))
	for _, c := range l.Cells {
		out = append(out, ortho.Cell{X: c[0], Y: c[1], Z: c[2], Kind: ortho.Full})
	}
	return out
}

// Load reads every *.json level file under dir in sorted filename order.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".json") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	c := &Catalog{ByID: map[string]Level{}}
	var concat bytes.Buffer
	for _, p := range files {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		concat.Write(raw)
		concat.WriteByte('\n')

		var lv Level
		if err := json.Unmarshal(raw, &lv); err != nil {
			return nil, fmt.Errorf("level %s: %w", filepath.Base(p), err)
		}
		if lv.ID == "" {
			return nil, fmt.Errorf("level %s: missing id", filepath.Base(p))
		}
		if lv.Resolution <= 0 {
			return nil, fmt.Errorf("level %s: bad resolution %d", lv.ID, lv.Resolution)
		}
		if _, dup := c.ByID[lv.ID]; dup {
			return nil, fmt.Errorf("level %s: duplicate id", lv.ID)
		}
		c.ByID[lv.ID] = lv
	}

	c.Order = make([]string, 0, len(c.ByID))
	for id := range c.ByID {
		c.Order = append(c.Order, id)
	}
	sort.Slice(c.Order, func(i, j int) bool {
		a, b := c.ByID[c.Order[i]], c.ByID[c.Order[j]]
		if a.Difficulty != b.Difficulty {
			return a.Difficulty < b.Difficulty
		}
		return a.ID < b.ID
	})

	sum := sha256.Sum256(concat.Bytes())
	c.Digest = hex.EncodeToString(sum[:])
	return c, nil
}
