// Package loader provides program image loading for the simulator.
//
// A program image is a sequence of whitespace-separated hexadecimal 32-bit
// values, read until end of input and stored as consecutive words starting
// at address 0.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MaxWords is the input cap: at most this many words are accepted.
const MaxWords = 256

// ErrTooManyWords is returned when the input exceeds MaxWords.
var ErrTooManyWords = errors.New("too many words loaded")

// Program represents a loaded image ready for execution.
type Program struct {
	// Words holds the image, one entry per word address from 0.
	Words []uint32
}

// Load reads a hex word image. Tokens may carry an optional 0x prefix.
func Load(r io.Reader) (*Program, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	prog := &Program{}
	for scanner.Scan() {
		token := scanner.Text()
		digits := strings.TrimPrefix(strings.TrimPrefix(token, "0x"), "0X")

		word, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad input word %q: %w", token, err)
		}

		if len(prog.Words) >= MaxWords {
			return nil, ErrTooManyWords
		}
		prog.Words = append(prog.Words, uint32(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return prog, nil
}

// LoadFile reads a hex word image from a file.
func LoadFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}
