package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/general.txt
	generalRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	General string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// This is safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		General: strings.TrimSpace(generalRaw),
	}
}
