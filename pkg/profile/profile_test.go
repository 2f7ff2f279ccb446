package profile

import (
	"strings"
	"testing"
)

func TestOptLevelValues(t *testing.T) {
	tests := []struct {
		level    OptLevel
		expected string
	}{
		{O0, "0"},
		{O1, "1"},
		{O2, "2"},
		{O3, "3"},
		{Os, "s"},
		{Oz, "z"},
	}

	for _, test := range tests {
		if got := test.level.Value(); got != test.expected {
			t.Errorf("Unexpected opt level value - expected: %s; got: %s", test.expected, got)
		}
	}
}

func TestManifestValues(t *testing.T) {
	if LTOOff.ManifestValue() != "false" ||
		LTOThin.ManifestValue() != `"thin"` ||
		LTOFat.ManifestValue() != `"fat"` {
		t.Error("Unexpected LTO manifest rendering")
	}

	if StripNone.ManifestValue() != "false" ||
		StripSymbols.ManifestValue() != `"symbols"` ||
		StripDebuginfo.ManifestValue() != `"debuginfo"` {
		t.Error("Unexpected strip manifest rendering")
	}
}

func TestTargetCPUFlags(t *testing.T) {
	if CPUGeneric.Flag() != "generic" ||
		CPUNative.Flag() != "native" ||
		CPUSpecific.Flag() != "haswell" {
		t.Error("Unexpected target CPU flag rendering")
	}
}

func TestBaselineProfile(t *testing.T) {
	base := Baseline()

	if base.Name != "baseline" {
		t.Errorf("Unexpected baseline name: %s", base.Name)
	}
	if base.OptLevel != O0 || base.LTO != LTOOff || base.PGO != PGOOff {
		t.Error("Baseline must be fully unoptimized")
	}
	if base.CodegenUnits != CodegenSixteen {
		t.Errorf("Unexpected baseline codegen units: %d", base.CodegenUnits)
	}
}

func TestStandardReleaseProfile(t *testing.T) {
	release := StandardRelease()

	if release.Name != "standard-release" {
		t.Errorf("Unexpected release name: %s", release.Name)
	}
	if release.OptLevel != O3 || release.LTO != LTOOff {
		t.Error("Standard release must be O3 without LTO")
	}
}

func TestManifestSection(t *testing.T) {
	section := StandardRelease().ManifestSection()

	for _, expected := range []string{
		"[profile.standard-release]",
		"opt-level = 3",
		"lto = false",
		"codegen-units = 16",
		"strip = false",
	} {
		if !strings.Contains(section, expected) {
			t.Errorf("Manifest section missing %q:\n%s", expected, section)
		}
	}

	if strings.Contains(section, "panic") {
		t.Error("Unwind profiles must not emit a panic setting")
	}

	sizeUltra := Profile{
		Name:         "size-ultra",
		OptLevel:     Oz,
		LTO:          LTOFat,
		CodegenUnits: CodegenOne,
		Strip:        StripDebuginfo,
		PanicAbort:   true,
	}
	section = sizeUltra.ManifestSection()

	if !strings.Contains(section, `opt-level = "z"`) {
		t.Error("Size opt levels must be quoted in the manifest")
	}
	if !strings.Contains(section, `panic = "abort"`) {
		t.Error("Abort profiles must emit the panic setting")
	}
}

func TestRustcFlags(t *testing.T) {
	if flags := StandardRelease().RustcFlags(); len(flags) != 0 {
		t.Errorf("Generic non-PGO profile should need no rustc flags, got %v", flags)
	}

	native := StandardRelease()
	native.TargetCPU = CPUNative
	native.PGO = PGOOn

	flags := strings.Join(native.RustcFlags(), " ")
	if !strings.Contains(flags, "target-cpu=native") {
		t.Errorf("Missing target-cpu flag in %q", flags)
	}
	if !strings.Contains(flags, "profile-use") {
		t.Errorf("Missing PGO flag in %q", flags)
	}
}

func TestParametersAreOrdered(t *testing.T) {
	params := Baseline().Parameters()

	expectedKeys := []string{"opt-level", "lto", "codegen-units", "pgo", "target-cpu", "strip", "panic"}
	if len(params) != len(expectedKeys) {
		t.Fatalf("Unexpected parameter count - expected: %d; got: %d", len(expectedKeys), len(params))
	}

	for i, key := range expectedKeys {
		if params[i].Key != key {
			t.Errorf("Parameter %d out of order - expected: %s; got: %s", i, key, params[i].Key)
		}
	}
}
