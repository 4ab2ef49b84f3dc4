// Package resources packs binary asset files into a generated C++
// source/header pair, exposing each asset as a named byte array.
package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kestrelkit/kestrel/internal/project"
)

// Pack holds the assets to embed. The saver asks for the file count and,
// when non-zero, has the pack write the BinaryData pair through the
// stable writer.
type Pack struct {
	ClassName string
	files     []string
}

// NewPack creates a pack for the given asset paths, resolved against
// baseDir when relative.
func NewPack(assets []string, baseDir string) *Pack {
	files := make([]string, len(assets))
	for i, a := range assets {
		if filepath.IsAbs(a) {
			files[i] = a
		} else {
			files[i] = filepath.Join(baseDir, a)
		}
	}
	return &Pack{ClassName: "BinaryData", files: files}
}

// FileCount returns the number of assets to embed.
func (p *Pack) FileCount() int { return len(p.files) }

// Pack renders the source/header pair and hands both to write. An
// unreadable asset or failed write aborts with an error; the caller
// records it and carries on with the rest of the save.
func (p *Pack) Pack(cppPath, headerPath string, write func(path string, content []byte) error) error {
	names := p.symbolNames()

	var h, cpp strings.Builder

	h.WriteString("/* (Auto-generated binary data file). */\n\n")
	guard := "BINARYDATA_H_" + strings.ToUpper(project.SanitizeIdentifier(p.ClassName)) + "_INCLUDED"
	fmt.Fprintf(&h, "#ifndef %s\n#define %s\n\n", guard, guard)
	fmt.Fprintf(&h, "namespace %s\n{\n", p.ClassName)

	cpp.WriteString("/* (Auto-generated binary data file). */\n\n")
	fmt.Fprintf(&cpp, "#include %q\n\n", filepath.Base(headerPath))

	for i, file := range p.files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read resource %s: %w", file, err)
		}

		fmt.Fprintf(&h, "    extern const char*   %s;\n", names[i])
		fmt.Fprintf(&h, "    const int            %sSize = %d;\n\n", names[i], len(data))

		fmt.Fprintf(&cpp, "static const unsigned char temp_binary_data_%d[] =\n{ ", i)
		for j, bval := range data {
			if j > 0 {
				cpp.WriteString(",")
				if j%32 == 0 {
					cpp.WriteString("\n  ")
				}
			}
			fmt.Fprintf(&cpp, "%d", bval)
		}
		cpp.WriteString(" };\n\n")
		fmt.Fprintf(&cpp, "const char* %s::%s = (const char*) temp_binary_data_%d;\n\n", p.ClassName, names[i], i)
	}

	fmt.Fprintf(&h, "}\n\n#endif  // %s\n", guard)

	if err := write(cppPath, []byte(cpp.String())); err != nil {
		return err
	}
	return write(headerPath, []byte(h.String()))
}

// symbolNames derives a unique C identifier per asset from its filename.
func (p *Pack) symbolNames() []string {
	names := make([]string, len(p.files))
	used := make(map[string]int)

	for i, file := range p.files {
		name := project.SanitizeIdentifier(filepath.Base(file))
		if name != "" && name[0] >= '0' && name[0] <= '9' {
			name = "_" + name
		}
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = fmt.Sprintf("%s%d", name, n+1)
		} else {
			used[name] = 1
		}
		names[i] = name
	}

	return names
}
