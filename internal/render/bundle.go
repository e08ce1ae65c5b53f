package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteBundle concatenates every listed file into the output: folder path,
// file name, then the complete source, separated by a wide rule. Files that
// vanish between discovery and writing are skipped with a placeholder note
// rather than failing the whole bundle.
func WriteBundle(paths []string, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	var b strings.Builder
	for _, path := range paths {
		fmt.Fprintf(&b, "Folder Path: %s\n", filepath.Dir(path))
		fmt.Fprintf(&b, "File Name: %s\n\n", filepath.Base(path))

		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(&b, "(unreadable: %v)\n", err)
		} else {
			b.Write(source)
		}
		fmt.Fprintf(&b, "\n%s\n\n", ruleWide)
	}

	if _, err := out.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
