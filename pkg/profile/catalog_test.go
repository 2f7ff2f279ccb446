package profile

import "testing"

func TestCatalogSize(t *testing.T) {
	catalog := Catalog()

	if len(catalog) < 80 || len(catalog) > 120 {
		t.Errorf("Generated %d profiles, expected 80-120", len(catalog))
	}
}

func TestCatalogIsDeterministic(t *testing.T) {
	first := Catalog()
	second := Catalog()

	if len(first) != len(second) {
		t.Fatal("Catalog size varies between calls")
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Catalog differs at index %d: %s vs %s", i, first[i].Name, second[i].Name)
		}
	}
}

func TestCatalogNamesUnique(t *testing.T) {
	seen := make(map[string]bool)

	for _, p := range Catalog() {
		if seen[p.Name] {
			t.Errorf("Duplicate profile name %s", p.Name)
		}
		seen[p.Name] = true
	}
}

func TestCatalogContainsAnchors(t *testing.T) {
	byName := make(map[string]Profile)
	for _, p := range Catalog() {
		byName[p.Name] = p
	}

	for _, anchor := range []string{"baseline", "standard-release", "min-opt", "max-opt", "size-ultra", "perf-ultra"} {
		if _, found := byName[anchor]; !found {
			t.Errorf("Catalog missing anchor profile %s", anchor)
		}
	}

	if byName["baseline"].OptLevel != O0 {
		t.Error("Catalog baseline is not the unoptimized build")
	}
	if byName["max-opt"].PGO != PGOOn || byName["max-opt"].TargetCPU != CPUNative {
		t.Error("max-opt must enable every optimization dimension")
	}
}

func TestCatalogCoversEveryDimension(t *testing.T) {
	var sawThin, sawFat, sawPGO, sawSizeLevel, sawAbort bool
	units := make(map[CodegenUnits]bool)

	for _, p := range Catalog() {
		switch p.LTO {
		case LTOThin:
			sawThin = true
		case LTOFat:
			sawFat = true
		}
		if p.PGO == PGOOn {
			sawPGO = true
		}
		if p.OptLevel == Os || p.OptLevel == Oz {
			sawSizeLevel = true
		}
		if p.PanicAbort {
			sawAbort = true
		}
		units[p.CodegenUnits] = true
	}

	if !sawThin || !sawFat {
		t.Error("Catalog must exercise both LTO modes")
	}
	if !sawPGO {
		t.Error("Catalog must exercise PGO")
	}
	if !sawSizeLevel {
		t.Error("Catalog must exercise the size opt levels")
	}
	if !sawAbort {
		t.Error("Catalog must exercise panic=abort")
	}
	for _, u := range []CodegenUnits{CodegenOne, CodegenFour, CodegenSixteen, CodegenTwoFiftySix} {
		if !units[u] {
			t.Errorf("Catalog never uses codegen-units=%d", int(u))
		}
	}
}

func TestCatalogProfilesAreWellFormed(t *testing.T) {
	for _, p := range Catalog() {
		if p.Name == "" {
			t.Error("Catalog contains an unnamed profile")
		}

		switch p.CodegenUnits {
		case CodegenOne, CodegenFour, CodegenSixteen, CodegenTwoFiftySix:
		default:
			t.Errorf("Profile %s has invalid codegen units %d", p.Name, int(p.CodegenUnits))
		}
	}
}
