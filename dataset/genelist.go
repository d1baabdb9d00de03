package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

/*
ReadGeneList takes an io.Reader for a plain-text stream with one gene
identifier per row and a header row, and returns the deduplicated
slice of identifiers in first-occurrence order, skipping the header
and blank rows.
*/
func ReadGeneList(reader io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(reader)
	var genes []string
	seen := make(map[string]bool)
	header := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if header {
			header = false
			continue
		}
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		genes = append(genes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading gene list: %v", err)
	}
	return genes, nil
}

/*
ReadGeneListFromFilePath takes a filepath string, opens the file it
points to and uses ReadGeneList to return the gene identifiers read
from it or an error.
*/
func ReadGeneListFromFilePath(filepath string) ([]string, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading gene list: %v", err)
	}
	defer f.Close()
	genes, err := ReadGeneList(f)
	if err != nil {
		err = fmt.Errorf("parsing gene list %s: %v", filepath, err)
	}
	return genes, err
}
