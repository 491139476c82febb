/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expande o caractere ~ no início de um caminho para o diretório home do usuário.
// Se o caminho não começar com ~, ele é retornado sem modificações.
// A função não suporta a expansão de ~username, retornando um erro nesse caso.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("não foi possível obter o diretório home: %w", err)
		}

		// Se o caminho for apenas ~, retorna o diretório home
		if len(path) == 1 {
			return home, nil
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			path = filepath.Join(home, path[2:])
		} else {
			return "", fmt.Errorf("expansão de ~username não é suportada, apenas ~ para o diretório home do usuário atual")
		}
	}

	return path, nil
}

// AbbreviateHome substitui um prefixo $HOME por ~ em um caminho.
// É o inverso de ExpandPath, usado na renderização do prompt.
func AbbreviateHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+"/") {
		return "~" + path[len(home):]
	}
	return path
}
