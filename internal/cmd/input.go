package cmd

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/namelens/handlescan/internal/core"
)

var errNoQueries = errors.New("you must specify either at least one query or an input file")

// resolveQueries merges positional queries with those read from inputFile
// ("-" reads stdin), trimming and dropping duplicates while keeping order.
func resolveQueries(positional []string, inputFile string, stdin io.Reader) ([]string, error) {
	queries := append([]string(nil), positional...)

	if path := strings.TrimSpace(inputFile); path != "" {
		var reader io.Reader
		if path == "-" {
			reader = stdin
		} else {
			file, err := os.Open(path)
			if err != nil {
				return nil, &ConfigError{Err: err}
			}
			defer file.Close() // nolint:errcheck
			reader = file
		}

		lines, err := readQueries(reader)
		if err != nil {
			return nil, &ConfigError{Err: err}
		}
		queries = append(queries, lines...)
	}

	queries = core.NormalizeQueries(queries)
	if len(queries) == 0 {
		return nil, &ConfigError{Err: errNoQueries}
	}
	return queries, nil
}

func readQueries(reader io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		queries = append(queries, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return queries, nil
}
