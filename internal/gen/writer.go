package gen

import (
	"fmt"
	"os"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into its package directory,
// creating directories as needed. A non-empty outputDir overrides the
// directory of every file.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	for _, file := range files {
		if outputDir != "" {
			file.Dir = outputDir
		}

		if file.Dir == "" {
			return fmt.Errorf("no output directory for %s", file.Filename)
		}

		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(file.Path(), file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
