package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Stdout is the destination name that writes to standard output.
const Stdout = "-"

type Options struct {
	Append bool // append to an existing file instead of truncating it
}

// WriteLines writes each line followed by '\n' to path, in order. Paths
// ending in .gz are gzip-compressed; appending to one adds a new gzip member.
// It returns the path written.
func WriteLines(path string, lines []string, opts Options) (string, error) {
	if path == Stdout {
		if err := writeTo(os.Stdout, lines); err != nil {
			return "", fmt.Errorf("failed to write to stdout: %w", err)
		}
		return path, nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if opts.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open output file %s: %w", path, err)
	}

	if err := writeFile(file, path, lines); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close output file %s: %w", path, err)
	}
	return path, nil
}

func writeFile(file *os.File, path string, lines []string) error {
	if !strings.HasSuffix(path, ".gz") {
		if err := writeTo(file, lines); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", path, err)
		}
		return nil
	}

	zw := gzip.NewWriter(file)
	if err := writeTo(zw, lines); err != nil {
		zw.Close()
		return fmt.Errorf("failed to write compressed output %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish compressed output %s: %w", path, err)
	}
	return nil
}

func writeTo(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
