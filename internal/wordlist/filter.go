// Package wordlist provides word list filtering helpers.
package wordlist

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Typeable keeps non-empty words made only of a..z, the keys an exercise accepts.
func Typeable(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
