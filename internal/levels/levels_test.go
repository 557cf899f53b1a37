package levels

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLevel(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_OrderAndDigest(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "b.json", `{"id":"lv_b","name":"B","difficulty":1,"resolution":2,"cells":[[0,0,0]]}`)
	writeLevel(t, dir, "a.json", `{"id":"lv_a","name":"A","difficulty":2,"resolution":3,"cells":[[1,1,1]]}`)
	writeLevel(t, dir, "notes.txt", "ignored")

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.ByID) != 2 {
		t.Fatalf("levels: got %d want 2", len(c.ByID))
	}
	// Difficulty sorts before id.
	if c.Order[0] != "lv_b" || c.Order[1] != "lv_a" {
		t.Fatalf("order: %v", c.Order)
	}
	if c.Digest == "" {
		t.Fatalf("missing digest")
	}

	c2, err := Load(dir)
	if err != nil {
		t.Fatalf("Load again: %v", err)
	}
	if c2.Digest != c.Digest {
		t.Fatalf("digest not deterministic")
	}
}

func TestLoad_Solid(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "a.json", `{"id":"lv_a","name":"A","difficulty":1,"resolution":2,"cells":[[0,0,0],[1,0,1]]}`)
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	solid := c.ByID["lv_a"].Solid()
	if len(solid) != 2 {
		t.Fatalf("solid: got %d cells", len(solid))
	}
	if solid[1].X != 1 || solid[1].Z != 1 {
		t.Fatalf("solid[1]: %+v", solid[1])
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing id", `{"name":"X","difficulty":1,"resolution":2,"cells":[]}`},
		{"bad resolution", `{"id":"lv_x","resolution":0,"cells":[]}`},
		{"bad json", `{`},
	}
	for _, tc := range cases {
		dir := t.TempDir()
		writeLevel(t, dir, "x.json", tc.body)
		if _, err := Load(dir); err == nil {
			t.Fatalf("%s: accepted", tc.name)
		}
	}

	// Duplicate ids across files.
	dir := t.TempDir()
	writeLevel(t, dir, "a.json", `{"id":"lv_dup","resolution":2,"cells":[]}`)
	writeLevel(t, dir, "b.json", `{"id":"lv_dup","resolution":2,"cells":[]}`)
	if _, err := Load(dir); err == nil {
		t.Fatalf("duplicate id accepted")
	}
}
