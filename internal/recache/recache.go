// Package recache memoizes compiled regular expressions keyed by pattern
// text. Entries are created lazily on first use and live for the whole
// process; the driver checks files in parallel, so the map is guarded.
package recache

import (
	"regexp"
	"sync"
)

var (
	mu    sync.RWMutex
	cache = make(map[string]*regexp.Regexp)
)

// compiled returns the cached regexp for pattern, compiling it on first use.
// All patterns are fixed literals internal to the checks, so a malformed
// pattern is a programmer error and panics.
func compiled(pattern string) *regexp.Regexp {
	mu.RLock()
	re, ok := cache[pattern]
	mu.RUnlock()
	if ok {
		return re
	}

	re = regexp.MustCompile(pattern)

	mu.Lock()
	// Another goroutine may have raced the compile; last write wins, the
	// compiled objects are equivalent.
	cache[pattern] = re
	mu.Unlock()
	return re
}

// Match applies pattern anchored at the start of text and returns the
// matched groups, or nil when there is no match. Group 0 is the full match.
func Match(pattern, text string) []string {
	if len(pattern) == 0 || pattern[0] != '^' {
		pattern = "^(?:" + pattern + ")"
	}
	return compiled(pattern).FindStringSubmatch(text)
}

// Search applies pattern anywhere in text and returns the matched groups, or
// nil when there is no match.
func Search(pattern, text string) []string {
	return compiled(pattern).FindStringSubmatch(text)
}

// Size reports the number of compiled patterns currently cached.
func Size() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(cache)
}
