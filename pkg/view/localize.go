package view

import (
	"path"

	"golang.org/x/text/language"
)

// localizedDirs lists the directories searched for a view, most specific
// first: basePath/pt-BR, basePath/pt, basePath.
func localizedDirs(basePath string, tag language.Tag) []string {
	if basePath == "" {
		basePath = "."
	}
	if tag == language.Und {
		return []string{basePath}
	}

	var dirs []string
	seen := make(map[string]struct{})
	for t := tag; t != language.Und; t = t.Parent() {
		name := t.String()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		dirs = append(dirs, path.Join(basePath, name))
	}
	return append(dirs, basePath)
}
