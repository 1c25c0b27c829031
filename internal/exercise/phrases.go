package exercise

// consolationPhrases are spoken after MistakeThreshold consecutive misses.
var consolationPhrases = []string{
	"Keep trying, you can do it",
	"Take your time",
	"Almost there, try again",
	"Look at the next letter",
}

// completionPhrases are spoken once a word is fully typed.
var completionPhrases = []string{
	"Great job!",
	"Well done!",
	"You did it!",
	"Awesome spelling!",
}

// ConsolationPhrases returns a copy of the consolation set.
func ConsolationPhrases() []string {
	return append([]string(nil), consolationPhrases...)
}

// CompletionPhrases returns a copy of the completion set.
func CompletionPhrases() []string {
	return append([]string(nil), completionPhrases...)
}
