package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spendscope-dev/spendscope/internal/loader"
)

// ErrNoSourceFiles is returned when discovery finds nothing to analyze.
var ErrNoSourceFiles = errors.New("no source files found")

// discoverSource picks the input when none was named. A single match is used
// as is; several are offered as a numbered list.
func discoverSource(in io.Reader, out io.Writer, dir, pattern string) (string, error) {
	files, err := loader.Scan(dir, pattern)
	if err != nil {
		return "", err
	}
	switch len(files) {
	case 0:
		return "", fmt.Errorf("%w matching %q in %s", ErrNoSourceFiles, pattern, dir)
	case 1:
		slog.Info("using discovered source", "path", files[0].Path)
		return files[0].Path, nil
	}
	return promptChoice(in, out, files)
}

func promptChoice(in io.Reader, out io.Writer, files []loader.FileInfo) (string, error) {
	fmt.Fprintln(out, "Multiple spend files found:")
	for i, f := range files {
		fmt.Fprintf(out, "  %d. %s\n", i+1, f.Name)
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Select a file [1-%d]: ", len(files))
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("reading selection: %w", err)
			}
			return "", errors.New("no file selected")
		}
		n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil || n < 1 || n > len(files) {
			fmt.Fprintf(out, "Please enter a number between 1 and %d.\n", len(files))
			continue
		}
		return files[n-1].Path, nil
	}
}
