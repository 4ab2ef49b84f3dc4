package saver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kestrelkit/kestrel/internal/modules"
	"github.com/kestrelkit/kestrel/internal/project"
)

// The renderers below are pure functions of their inputs. That is what
// lets the Writer's byte comparison do its job: identical project state
// always renders to identical bytes, so an unchanged header is never
// rewritten.

const sectionRule = "//=============================================================================="

func autoGenWarning(b *strings.Builder) {
	b.WriteString("/*\n\n")
	b.WriteString("    IMPORTANT! This file is auto-generated each time you save your\n")
	b.WriteString("    project - if you alter its contents, your changes may be overwritten!\n\n")
}

// RenderConfigHeader renders the generated configuration header: one
// availability macro per module, column-aligned, followed by each
// module's flags in declared order with the project's tri-state value.
// extra is an optional verbatim block appended before the guard closes.
func RenderConfigHeader(p *project.Project, mods []*modules.Module, extra string) []byte {
	var b strings.Builder

	autoGenWarning(&b)
	b.WriteString("    If you want to change any of these values, use kestrel to do so,\n")
	b.WriteString("    rather than editing this file directly!\n\n")
	b.WriteString("    Any commented-out settings will assume their default values.\n\n")
	b.WriteString("*/\n\n")

	guard := "APPCONFIG_" + p.UID() + "_H_INCLUDED"
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guard, guard)
	b.WriteString(sectionRule + "\n")

	longest := 0
	for _, m := range mods {
		if len(m.ID) > longest {
			longest = len(m.ID)
		}
	}

	for _, m := range mods {
		pad := strings.Repeat(" ", longest+5-len(m.ID))
		fmt.Fprintf(&b, "#define MODULE_AVAILABLE_%s%s 1\n", m.ID, pad)
	}

	b.WriteString("\n")

	for i, m := range mods {
		if len(m.Flags) == 0 {
			continue
		}

		b.WriteString(sectionRule + "\n")
		fmt.Fprintf(&b, "// %s flags:\n\n", m.ID)

		for _, f := range m.Flags {
			switch p.ConfigFlag(f.Symbol) {
			case project.FlagEnabled:
				fmt.Fprintf(&b, "#define    %s 1\n", f.Symbol)
			case project.FlagDisabled:
				fmt.Fprintf(&b, "#define    %s 0\n", f.Symbol)
			default:
				fmt.Fprintf(&b, "//#define  %s\n", f.Symbol)
			}
		}

		if i < len(mods)-1 {
			b.WriteString("\n")
		}
	}

	if trimmed := strings.TrimRight(extra, " \t\n"); trimmed != "" {
		b.WriteString("\n" + trimmed + "\n")
	}

	fmt.Fprintf(&b, "\n#endif  // %s\n", guard)

	return []byte(b.String())
}

// RenderUmbrellaHeader renders the single header user code includes: the
// config header, every module's own include in module order, the
// resource header when a resource pair exists, and a project-info block
// with literal name/version constants.
func RenderUmbrellaHeader(p *project.Project, mods []*modules.Module, hasConfig, hasResources bool) []byte {
	var b strings.Builder

	autoGenWarning(&b)
	b.WriteString("    This is the header file that your source should include to pick up\n")
	b.WriteString("    every module header together with the project's configuration options.\n\n")
	b.WriteString("*/\n\n")

	guard := "APPHEADER_" + p.UID() + "_H_INCLUDED"
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guard, guard)

	if hasConfig {
		fmt.Fprintf(&b, "#include %q\n", p.ConfigHeaderName())
	}

	for _, m := range mods {
		b.WriteString(m.IncludeStatement() + "\n")
	}

	if hasResources {
		b.WriteString("#include \"BinaryData.h\"\n")
	}

	b.WriteString("\n")
	b.WriteString("namespace ProjectInfo\n{\n")
	fmt.Fprintf(&b, "    const char* const  projectName    = %s;\n", strconv.Quote(p.Name))
	fmt.Fprintf(&b, "    const char* const  versionString  = %s;\n", strconv.Quote(p.Version))
	fmt.Fprintf(&b, "    const int          versionNumber  = %s;\n", p.VersionHex())
	b.WriteString("}\n")

	fmt.Fprintf(&b, "\n#endif  // %s\n", guard)

	return []byte(b.String())
}
