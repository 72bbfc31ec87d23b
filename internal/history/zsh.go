package history

import "strings"

// zshKey returns the text after the last ':' of a zsh history line, trimmed.
// Lines without a colon are keyed by the whole trimmed line.
//
// Extended history lines look like ": 1616420000:0;ls -la", which keys as
// "0;ls -la": the elapsed-time field stays in the key, so the same command
// recorded with different durations is not collapsed.
//
// Commands containing a literal ':' are keyed by the text after their own
// last colon, so "scp a:notes.txt ." and "scp b:notes.txt ." collide.
// This approximation is intentional and must not be tightened.
func zshKey(line string) string {
	if i := strings.LastIndexByte(line, ':'); i >= 0 {
		line = line[i+1:]
	}
	return strings.TrimSpace(line)
}
