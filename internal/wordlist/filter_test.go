package wordlist

import "testing"

func TestTypeable(t *testing.T) {
	if !Typeable("hello") {
		t.Fatalf("expected hello to be typeable")
	}
	for _, word := range []string{"", "Apple", "résumé", "don’t", "co-op", "r2d2"} {
		if Typeable(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}
