package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/mcsim/internal/experiment"
)

// ErrEmptySequence is returned when the input holds no sequence lines.
var ErrEmptySequence = errors.New("fasta: no sequence data")

const maxLine = 16 << 20

// ReadSequence reads every sequence line from r, skipping blank lines and
// '>' headers, and returns the concatenation normalized to RNA.
func ReadSequence(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	var b strings.Builder
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		b.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("fasta: read: %w", err)
	}
	if b.Len() == 0 {
		return "", ErrEmptySequence
	}
	return experiment.NormalizeRNA(b.String()), nil
}

// LoadRNA opens path and reads its sequence.
func LoadRNA(path string) (string, error) {
	rc, err := Open(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	seq, err := ReadSequence(rc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}
