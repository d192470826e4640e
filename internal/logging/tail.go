package logging

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// maxLineBytes bounds a single log line; zap JSON entries stay well below it.
const maxLineBytes = 1024 * 1024

// Tail returns at most n lines from the end of the log file at path, oldest
// first. A missing file yields no lines.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, n)
	next, count := 0, 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % n
		count = min(count+1, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	start := 0
	if count == n {
		start = next
	}
	lines := make([]string, count)
	for i := range lines {
		lines[i] = ring[(start+i)%n]
	}
	return lines, nil
}
