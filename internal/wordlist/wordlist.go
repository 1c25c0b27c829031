// Package wordlist holds the fixed practice collection.
package wordlist

import "fmt"

var collection = []string{
	"apple",
	"dad",
	"mom",
	"ruby",
	"lennox",
}

// Words returns a copy of the practice collection.
func Words() []string {
	return append([]string(nil), collection...)
}

// Validate checks that words is non-empty and every entry passes keep.
func Validate(words []string, keep FilterFunc) error {
	if len(words) == 0 {
		return fmt.Errorf("word list is empty")
	}
	for _, word := range words {
		if !keep(word) {
			return fmt.Errorf("word %q is not typeable", word)
		}
	}
	return nil
}
