package skills

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	data := `{
		"900101": {"ja": "紅焔ギア/LP1211-M", "en": "Red Shift/LP1211-M"},
		"201161": {"ja": "直線回復"},
		"202051": {"en": "Concentration"}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if got := c.InPartition(PartitionUnique); len(got) != 1 || got[0].ID != "900101" {
		t.Errorf("unique partition = %v", got)
	}
}

func TestLoadCatalogRejectsNamelessEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.json")
	if err := os.WriteFile(path, []byte(`{"200001": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for entry without display names")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
