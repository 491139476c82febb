/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/vbls/config"
	"github.com/diillson/vbls/utils"
	"github.com/diillson/vbls/version"
)

// Definindo variáveis para as funções que queremos mockar
var (
	osHostname = os.Hostname
	osGetwd    = os.Getwd
)

// RenderPrompt expande os escapes do PS1:
//
//	\W  basename do diretório corrente, com $HOME abreviado para ~
//	\w  diretório corrente completo, com $HOME abreviado
//	\h  nome do host
//	\v  versão do shell
//	\s  o literal "vbls"
//	\u  usuário (de USER)
func RenderPrompt(ps1, cwd, home, host, user string) string {
	var sb strings.Builder

	abbrev := utils.AbbreviateHome(cwd, home)

	for i := 0; i < len(ps1); i++ {
		c := ps1[i]
		if c != '\\' || i+1 >= len(ps1) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch ps1[i] {
		case 'W':
			sb.WriteString(filepath.Base(abbrev))
		case 'w':
			sb.WriteString(abbrev)
		case 'h':
			sb.WriteString(host)
		case 'v':
			sb.WriteString(version.GetVersion())
		case 's':
			sb.WriteString(config.ShellName)
		case 'u':
			sb.WriteString(user)
		default:
			sb.WriteByte('\\')
			sb.WriteByte(ps1[i])
		}
	}

	return sb.String()
}

// renderPrompt monta o prompt da sessão a partir do estado corrente.
func (cli *ShellCLI) renderPrompt() string {
	ps1 := cli.shell.Getenv("PS1")
	if ps1 == "" {
		ps1 = config.DefaultPS1
	}

	cwd := cli.shell.Getenv("PWD")
	if cwd == "" {
		if wd, err := osGetwd(); err == nil {
			cwd = wd
		}
	}

	host, err := osHostname()
	if err != nil {
		host = "localhost"
	}

	return RenderPrompt(ps1, cwd, cli.shell.Getenv("HOME"), host, cli.shell.Getenv("USER"))
}
