package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/diillson/vbls/config"
	"github.com/diillson/vbls/shell"
)

// completer autocompleta a primeira palavra da linha com builtins e
// executáveis do PATH. Argumentos não são completados.
func (cli *ShellCLI) completer(line string) []string {
	if strings.ContainsAny(line, " \t") {
		return nil
	}

	seen := make(map[string]struct{})
	var matches []string

	// Builtins têm prioridade
	for _, name := range shell.BuiltinNames() {
		if strings.HasPrefix(name, line) {
			matches = append(matches, name)
			seen[name] = struct{}{}
		}
	}

	pathVar := cli.shell.Getenv("PATH")
	if pathVar == "" {
		pathVar = config.DefaultPath
	}

	for _, dir := range strings.Split(pathVar, ":") {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasPrefix(name, line) {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			if info, err := entry.Info(); err == nil && info.Mode()&0111 != 0 {
				matches = append(matches, name)
				seen[name] = struct{}{}
			}
		}
	}

	sort.Strings(matches)
	return matches
}
