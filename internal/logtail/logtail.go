package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// maxLineBytes bounds a single log line; slog text records stay far below it.
const maxLineBytes = 1024 * 1024

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	lines, err := Tail(file, maxLines)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

// Tail returns the last maxLines lines of r in order, or all of them when
// maxLines is not positive.
func Tail(r io.Reader, maxLines int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		return lines, scanner.Err()
	}

	ring := make([]string, maxLines)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	lines := make([]string, count)
	if count < maxLines {
		copy(lines, ring[:count])
		return lines, nil
	}
	// Full ring: the oldest kept line sits at next.
	for i := range count {
		lines[i] = ring[(next+i)%maxLines]
	}
	return lines, nil
}
