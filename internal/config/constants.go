// Package config holds the small set of constants shared across the
// tokenizer, parser, evaluator and REPL driver.
package config

// Prompt is the primary REPL prompt.
const Prompt = "scm> "

// ContinuationPrompt pads to the same width as Prompt so continuation
// lines of a multi-line form line up under the first line.
var ContinuationPrompt = buildContinuationPrompt()

func buildContinuationPrompt() string {
	pad := make([]byte, len(Prompt))
	for i := range pad {
		pad[i] = ' '
	}
	return string(pad)
}

// MaxTokenLength is the token length above which the tokenizer emits a
// non-fatal warning.
const MaxTokenLength = 50

// ScmSuffix is the suffix `load` appends when the bare filename does not
// open.
const ScmSuffix = ".scm"

// DefaultRecursionLimit bounds non-tail call depth before the evaluator
// raises a RecursionLimit error instead of letting the host stack grow
// without end.
const DefaultRecursionLimit = 10000
