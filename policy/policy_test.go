package policy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinLibrary(t *testing.T) {
	lib := Builtin()
	if lib.Len() != 5 {
		t.Fatalf("expected 5 builtin policies, got %d", lib.Len())
	}

	p, ok := lib.Get("SCP-001")
	if !ok {
		t.Fatal("SCP-001 missing")
	}
	if p.Name != "Clawback and Recovery Policy" || len(p.Provisions) != 4 {
		t.Errorf("unexpected policy: %+v", p)
	}

	if _, ok := lib.Get("SCP-999"); ok {
		t.Error("unknown code should miss")
	}
}

func TestSearchKeywords(t *testing.T) {
	p := Policy{
		Name:           "Clawback and Recovery Policy",
		GovernanceArea: "Financial Controls",
		Keywords:       []string{"Clawback", "chargeback"},
	}
	kws := SearchKeywords(p)

	want := map[string]bool{
		"clawback": true, "chargeback": true,
		"recovery": true, "policy": true,
		"financial": true, "controls": true,
	}
	if len(kws) != len(want) {
		t.Fatalf("expected %d keywords, got %d: %v", len(want), len(kws), kws)
	}
	for _, kw := range kws {
		if !want[kw] {
			t.Errorf("unexpected keyword %q", kw)
		}
	}
	// "and" is too short, "Clawback" must not duplicate "clawback".
}

func TestLoadLibrary(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(`policies:
  - code: XP-001
    name: Example Policy
    category: Compliance
    governance_area: Legal Compliance
    summary: An example.
    keywords: [example]
`), 0644)
	os.WriteFile(filepath.Join(dir, "b.yml"), []byte(`policies:
  - code: XP-002
    name: Second Policy
    summary: Another.
`), 0644)
	os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("not yaml"), 0644)

	lib, err := LoadLibrary(dir)
	if err != nil {
		t.Fatal(err)
	}
	if lib.Len() != 2 {
		t.Fatalf("expected 2 policies, got %d", lib.Len())
	}
	if p, ok := lib.Get("XP-001"); !ok || p.Category != CategoryCompliance {
		t.Errorf("unexpected policy: %+v", p)
	}
}

func TestLoadLibraryRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dup.yaml")
	os.WriteFile(path, []byte(`policies:
  - {code: XP-001, name: A}
  - {code: XP-001, name: B}
`), 0644)

	if _, err := LoadLibrary(path); err == nil {
		t.Fatal("expected duplicate code error")
	}
}
