/*
 * MIT License
 *
 * Copyright (c) 2025 The optbench authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package profile

import "fmt"

// Catalog generates the full profile family with a fractional factorial
// design: instead of the complete 1296-point parameter space, it keeps
// the baselines, every single-factor main effect, and the two-factor
// interactions that matter for the speed/size trade-off. The result is
// deterministic, duplicate-free, and ordered.
func Catalog() []Profile {
	b := catalogBuilder{}

	b.addBaselines()
	b.addSingleFactorVariations()
	b.addLTOVariations()
	b.addSizeOptimizations()
	b.addPerformanceOptimizations()
	b.addPGOVariations()
	b.addCodegenVariations()
	b.addCPUVariations()
	b.addStripVariations()
	b.addExtremes()
	b.addTwoFactorInteractions()

	return b.profiles
}

type catalogBuilder struct {
	profiles []Profile
}

func (b *catalogBuilder) add(p Profile) {
	b.profiles = append(b.profiles, p)
}

func (b *catalogBuilder) addBaselines() {
	b.add(Baseline())
	b.add(StandardRelease())
}

// Single-factor variations hold everything at standard-release and move
// one dimension at a time, isolating each main effect.
func (b *catalogBuilder) addSingleFactorVariations() {
	base := StandardRelease()

	for _, level := range []OptLevel{O0, O1, O2, Os, Oz} {
		p := base
		p.Name = "opt-" + level.Value()
		p.OptLevel = level
		b.add(p)
	}

	for _, lto := range []LTOMode{LTOThin, LTOFat} {
		p := base
		p.Name = "lto-" + lto.Name()
		p.LTO = lto
		b.add(p)
	}

	for _, units := range []CodegenUnits{CodegenOne, CodegenFour, CodegenTwoFiftySix} {
		p := base
		p.Name = fmt.Sprintf("codegen-%d", int(units))
		p.CodegenUnits = units
		b.add(p)
	}

	for _, cpu := range []TargetCPU{CPUNative, CPUSpecific} {
		p := base
		p.Name = "cpu-" + cpu.Name()
		p.TargetCPU = cpu
		b.add(p)
	}

	for _, strip := range []StripMode{StripSymbols, StripDebuginfo} {
		p := base
		p.Name = "strip-" + strip.Name()
		p.Strip = strip
		b.add(p)
	}

	abort := base
	abort.Name = "panic-abort"
	abort.PanicAbort = true
	b.add(abort)
}

func (b *catalogBuilder) addLTOVariations() {
	for _, level := range []OptLevel{O2, O3} {
		for _, lto := range []LTOMode{LTOThin, LTOFat} {
			b.add(Profile{
				Name:         fmt.Sprintf("lto-%s-opt%s", lto.Name(), level.Value()),
				OptLevel:     level,
				LTO:          lto,
				CodegenUnits: CodegenSixteen,
				TargetCPU:    CPUGeneric,
			})
		}
	}

	// LTO works across codegen units, so the interaction with a low
	// unit count is the interesting one.
	for _, lto := range []LTOMode{LTOThin, LTOFat} {
		for _, units := range []CodegenUnits{CodegenOne, CodegenFour} {
			b.add(Profile{
				Name:         fmt.Sprintf("lto-%s-cg%d", lto.Name(), int(units)),
				OptLevel:     O3,
				LTO:          lto,
				CodegenUnits: units,
			})
		}
	}
}

func (b *catalogBuilder) addSizeOptimizations() {
	for _, level := range []OptLevel{Os, Oz} {
		b.add(Profile{
			Name:         fmt.Sprintf("size-%s-lto", level.Value()),
			OptLevel:     level,
			LTO:          LTOFat,
			CodegenUnits: CodegenOne,
			Strip:        StripSymbols,
		})

		b.add(Profile{
			Name:         fmt.Sprintf("size-%s-strip", level.Value()),
			OptLevel:     level,
			LTO:          LTOThin,
			CodegenUnits: CodegenSixteen,
			Strip:        StripDebuginfo,
		})
	}

	b.add(Profile{
		Name:         "size-ultra",
		OptLevel:     Oz,
		LTO:          LTOFat,
		CodegenUnits: CodegenOne,
		Strip:        StripDebuginfo,
	})
}

func (b *catalogBuilder) addPerformanceOptimizations() {
	b.add(Profile{
		Name:         "perf-ultra",
		OptLevel:     O3,
		LTO:          LTOFat,
		CodegenUnits: CodegenOne,
		TargetCPU:    CPUNative,
		Strip:        StripSymbols,
	})

	for _, lto := range []LTOMode{LTOThin, LTOFat} {
		b.add(Profile{
			Name:         "perf-native-lto-" + lto.Name(),
			OptLevel:     O3,
			LTO:          lto,
			CodegenUnits: CodegenOne,
			TargetCPU:    CPUNative,
		})
	}

	b.add(Profile{
		Name:         "perf-balanced",
		OptLevel:     O3,
		LTO:          LTOThin,
		CodegenUnits: CodegenFour,
	})
}

func (b *catalogBuilder) addPGOVariations() {
	for _, level := range []OptLevel{O2, O3} {
		b.add(Profile{
			Name:         "pgo-opt" + level.Value(),
			OptLevel:     level,
			CodegenUnits: CodegenSixteen,
			PGO:          PGOOn,
		})
	}

	for _, lto := range []LTOMode{LTOThin, LTOFat} {
		b.add(Profile{
			Name:         "pgo-lto-" + lto.Name(),
			OptLevel:     O3,
			LTO:          lto,
			CodegenUnits: CodegenSixteen,
			PGO:          PGOOn,
		})
	}

	b.add(Profile{
		Name:         "pgo-native",
		OptLevel:     O3,
		LTO:          LTOFat,
		CodegenUnits: CodegenOne,
		PGO:          PGOOn,
		TargetCPU:    CPUNative,
		Strip:        StripSymbols,
	})
}

func (b *catalogBuilder) addCodegenVariations() {
	for _, units := range []CodegenUnits{CodegenOne, CodegenFour, CodegenSixteen} {
		for _, level := range []OptLevel{O2, O3} {
			b.add(Profile{
				Name:         fmt.Sprintf("cg%d-opt%s", int(units), level.Value()),
				OptLevel:     level,
				CodegenUnits: units,
			})
		}
	}

	for _, units := range []CodegenUnits{CodegenOne, CodegenSixteen} {
		b.add(Profile{
			Name:         fmt.Sprintf("cg%d-strip", int(units)),
			OptLevel:     O3,
			LTO:          LTOThin,
			CodegenUnits: units,
			Strip:        StripSymbols,
		})
	}
}

func (b *catalogBuilder) addCPUVariations() {
	for _, cpu := range []TargetCPU{CPUNative, CPUSpecific} {
		for _, level := range []OptLevel{O2, O3} {
			b.add(Profile{
				Name:         fmt.Sprintf("cpu-%s-opt%s", cpu.Name(), level.Value()),
				OptLevel:     level,
				CodegenUnits: CodegenSixteen,
				TargetCPU:    cpu,
			})
		}
	}

	for _, units := range []CodegenUnits{CodegenOne, CodegenFour} {
		b.add(Profile{
			Name:         fmt.Sprintf("cpu-native-cg%d", int(units)),
			OptLevel:     O3,
			CodegenUnits: units,
			TargetCPU:    CPUNative,
		})
	}
}

func (b *catalogBuilder) addStripVariations() {
	for _, strip := range []StripMode{StripSymbols, StripDebuginfo} {
		for _, level := range []OptLevel{O2, O3, Os} {
			b.add(Profile{
				Name:         fmt.Sprintf("strip-%s-opt%s", strip.Name(), level.Value()),
				OptLevel:     level,
				CodegenUnits: CodegenSixteen,
				Strip:        strip,
			})
		}
	}

	for _, strip := range []StripMode{StripSymbols, StripDebuginfo} {
		b.add(Profile{
			Name:         fmt.Sprintf("strip-%s-lto", strip.Name()),
			OptLevel:     O3,
			LTO:          LTOFat,
			CodegenUnits: CodegenOne,
			Strip:        strip,
		})
	}
}

func (b *catalogBuilder) addExtremes() {
	b.add(Profile{
		Name:         "min-opt",
		OptLevel:     O0,
		CodegenUnits: CodegenTwoFiftySix,
	})

	b.add(Profile{
		Name:         "max-opt",
		OptLevel:     O3,
		LTO:          LTOFat,
		CodegenUnits: CodegenOne,
		PGO:          PGOOn,
		TargetCPU:    CPUNative,
		Strip:        StripDebuginfo,
		PanicAbort:   true,
	})

	b.add(Profile{
		Name:         "fast-compile",
		OptLevel:     O1,
		CodegenUnits: CodegenTwoFiftySix,
	})
}

func (b *catalogBuilder) addTwoFactorInteractions() {
	for _, level := range []OptLevel{O1, O2} {
		for _, strip := range []StripMode{StripSymbols, StripDebuginfo} {
			b.add(Profile{
				Name:         fmt.Sprintf("opt%s-strip-%s", level.Value(), strip.Name()),
				OptLevel:     level,
				CodegenUnits: CodegenSixteen,
				Strip:        strip,
			})
		}
	}

	for _, units := range []CodegenUnits{CodegenOne, CodegenFour, CodegenSixteen} {
		b.add(Profile{
			Name:         fmt.Sprintf("cg%d-native", int(units)),
			OptLevel:     O3,
			CodegenUnits: units,
			TargetCPU:    CPUNative,
		})
	}

	for _, units := range []CodegenUnits{CodegenOne, CodegenFour} {
		b.add(Profile{
			Name:         fmt.Sprintf("pgo-cg%d", int(units)),
			OptLevel:     O3,
			CodegenUnits: units,
			PGO:          PGOOn,
		})
	}

	for _, strip := range []StripMode{StripSymbols, StripDebuginfo} {
		b.add(Profile{
			Name:         "pgo-strip-" + strip.Name(),
			OptLevel:     O3,
			LTO:          LTOThin,
			CodegenUnits: CodegenSixteen,
			PGO:          PGOOn,
			Strip:        strip,
		})
	}

	for _, level := range []OptLevel{Os, Oz} {
		b.add(Profile{
			Name:         fmt.Sprintf("size-%s-native", level.Value()),
			OptLevel:     level,
			LTO:          LTOThin,
			CodegenUnits: CodegenOne,
			TargetCPU:    CPUNative,
			Strip:        StripSymbols,
		})
	}

	// Abort-on-panic drops landing pads; measure it against the two
	// size-focused anchors it helps most.
	b.add(Profile{
		Name:         "size-z-abort",
		OptLevel:     Oz,
		LTO:          LTOFat,
		CodegenUnits: CodegenOne,
		Strip:        StripDebuginfo,
		PanicAbort:   true,
	})

	b.add(Profile{
		Name:         "balanced-perf",
		OptLevel:     O3,
		LTO:          LTOThin,
		CodegenUnits: CodegenFour,
		TargetCPU:    CPUNative,
		Strip:        StripSymbols,
	})

	b.add(Profile{
		Name:         "balanced-size",
		OptLevel:     Os,
		LTO:          LTOFat,
		CodegenUnits: CodegenOne,
		Strip:        StripDebuginfo,
	})

	b.add(Profile{
		Name:         "pgo-perf-ultra",
		OptLevel:     O3,
		LTO:          LTOFat,
		CodegenUnits: CodegenOne,
		PGO:          PGOOn,
		TargetCPU:    CPUNative,
		Strip:        StripSymbols,
	})

	b.add(Profile{
		Name:         "default-dev",
		OptLevel:     O1,
		CodegenUnits: CodegenSixteen,
	})
}
