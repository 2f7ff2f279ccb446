// Package profile models compiler optimization profiles: the named,
// ordered set of build parameters one artifact is compiled with. Profile
// names are stable identifiers and act as join keys through the whole
// pipeline, from job generation to analysis output.
package profile

import (
	"fmt"
	"strings"
)

type OptLevel int

const (
	O0 OptLevel = iota
	O1
	O2
	O3
	Os
	Oz
)

// Value renders the level the way the build manifest expects it.
func (o OptLevel) Value() string {
	switch o {
	case O0:
		return "0"
	case O1:
		return "1"
	case O2:
		return "2"
	case O3:
		return "3"
	case Os:
		return "s"
	case Oz:
		return "z"
	default:
		return "0"
	}
}

type LTOMode int

const (
	LTOOff LTOMode = iota
	LTOThin
	LTOFat
)

func (l LTOMode) Name() string {
	switch l {
	case LTOThin:
		return "thin"
	case LTOFat:
		return "fat"
	default:
		return "off"
	}
}

func (l LTOMode) ManifestValue() string {
	switch l {
	case LTOThin:
		return `"thin"`
	case LTOFat:
		return `"fat"`
	default:
		return "false"
	}
}

// CodegenUnits trades parallel code generation against cross-unit
// optimization. Only the four values below are meaningful.
type CodegenUnits int

const (
	CodegenOne         CodegenUnits = 1
	CodegenFour        CodegenUnits = 4
	CodegenSixteen     CodegenUnits = 16
	CodegenTwoFiftySix CodegenUnits = 256
)

type PGOMode int

const (
	PGOOff PGOMode = iota
	PGOOn
)

func (p PGOMode) Name() string {
	if p == PGOOn {
		return "on"
	}
	return "off"
}

type TargetCPU int

const (
	CPUGeneric TargetCPU = iota
	CPUNative
	// CPUSpecific pins one concrete microarchitecture so results are
	// comparable across hosts that share it.
	CPUSpecific
)

func (t TargetCPU) Flag() string {
	switch t {
	case CPUNative:
		return "native"
	case CPUSpecific:
		return "haswell"
	default:
		return "generic"
	}
}

func (t TargetCPU) Name() string {
	switch t {
	case CPUNative:
		return "native"
	case CPUSpecific:
		return "specific"
	default:
		return "generic"
	}
}

type StripMode int

const (
	StripNone StripMode = iota
	StripSymbols
	StripDebuginfo
)

func (s StripMode) Name() string {
	switch s {
	case StripSymbols:
		return "symbols"
	case StripDebuginfo:
		return "debuginfo"
	default:
		return "none"
	}
}

func (s StripMode) ManifestValue() string {
	switch s {
	case StripSymbols:
		return `"symbols"`
	case StripDebuginfo:
		return `"debuginfo"`
	default:
		return "false"
	}
}

// Profile is one complete optimization configuration.
type Profile struct {
	Name         string       `json:"Name"`
	OptLevel     OptLevel     `json:"OptLevel"`
	LTO          LTOMode      `json:"LTO"`
	CodegenUnits CodegenUnits `json:"CodegenUnits"`
	PGO          PGOMode      `json:"PGO"`
	TargetCPU    TargetCPU    `json:"TargetCPU"`
	Strip        StripMode    `json:"Strip"`
	PanicAbort   bool         `json:"PanicAbort"`
}

// Baseline is the unoptimized debug build every speedup is measured
// against.
func Baseline() Profile {
	return Profile{
		Name:         "baseline",
		OptLevel:     O0,
		LTO:          LTOOff,
		CodegenUnits: CodegenSixteen,
		PGO:          PGOOff,
		TargetCPU:    CPUGeneric,
		Strip:        StripNone,
	}
}

// StandardRelease is the stock production build most projects ship.
func StandardRelease() Profile {
	return Profile{
		Name:         "standard-release",
		OptLevel:     O3,
		LTO:          LTOOff,
		CodegenUnits: CodegenSixteen,
		PGO:          PGOOff,
		TargetCPU:    CPUGeneric,
		Strip:        StripNone,
	}
}

// Parameter is one named build setting. Parameters flattens a profile
// into this ordered key/value view for records and logs.
type Parameter struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

func (p Profile) Parameters() []Parameter {
	panicMode := "unwind"
	if p.PanicAbort {
		panicMode = "abort"
	}

	return []Parameter{
		{Key: "opt-level", Value: p.OptLevel.Value()},
		{Key: "lto", Value: p.LTO.Name()},
		{Key: "codegen-units", Value: fmt.Sprintf("%d", int(p.CodegenUnits))},
		{Key: "pgo", Value: p.PGO.Name()},
		{Key: "target-cpu", Value: p.TargetCPU.Name()},
		{Key: "strip", Value: p.Strip.Name()},
		{Key: "panic", Value: panicMode},
	}
}

// ManifestSection renders the build-manifest profile block the
// toolchain reads. PGO and target CPU are not manifest settings; they
// travel through RustcFlags instead.
func (p Profile) ManifestSection() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[profile.%s]\n", p.Name)
	fmt.Fprintf(&sb, "opt-level = %s\n", manifestOptLevel(p.OptLevel))
	fmt.Fprintf(&sb, "lto = %s\n", p.LTO.ManifestValue())
	fmt.Fprintf(&sb, "codegen-units = %d\n", int(p.CodegenUnits))
	fmt.Fprintf(&sb, "strip = %s\n", p.Strip.ManifestValue())
	if p.PanicAbort {
		sb.WriteString("panic = \"abort\"\n")
	}

	return sb.String()
}

// Numeric levels are bare, size levels are quoted in the manifest.
func manifestOptLevel(o OptLevel) string {
	switch o {
	case Os, Oz:
		return `"` + o.Value() + `"`
	default:
		return o.Value()
	}
}

// RustcFlags holds the per-profile compiler flags passed through the
// RUSTFLAGS environment variable.
func (p Profile) RustcFlags() []string {
	var flags []string

	if p.TargetCPU != CPUGeneric {
		flags = append(flags, "-C", "target-cpu="+p.TargetCPU.Flag())
	}
	if p.PGO == PGOOn {
		flags = append(flags, "-C", "profile-use=pgo-data/merged.profdata")
	}

	return flags
}

func (p Profile) Describe() string {
	parts := make([]string, 0, 7)
	for _, param := range p.Parameters() {
		parts = append(parts, param.Key+"="+param.Value)
	}
	return p.Name + " (" + strings.Join(parts, " ") + ")"
}
