package translator

import (
	"log"
	"os"
	"path/filepath"
)

const defaultCanonicalizePrompt = `You normalize place names for a GIS system.
Reply with the canonical English name of the place below and nothing else.
If it is already canonical, repeat it unchanged.

Place: %s`

// PromptManager loads prompt templates from a directory, falling back to the
// builtin text when a file is absent. Lets deployments tune model phrasing
// without a rebuild.
type PromptManager struct {
	Directory string
}

func NewPromptManager(dir string) *PromptManager {
	return &PromptManager{Directory: dir}
}

// CanonicalizePrompt returns the fmt template used to normalize an extracted
// place name. The template takes one %s: the raw place name.
func (pm *PromptManager) CanonicalizePrompt() string {
	if pm == nil || pm.Directory == "" {
		return defaultCanonicalizePrompt
	}
	path := filepath.Join(pm.Directory, "canonicalize.md")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Failed to read prompt file %s: %v", path, err)
		}
		return defaultCanonicalizePrompt
	}
	return string(data)
}
