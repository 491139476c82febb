/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package shell

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/diillson/vbls/platform"
	"go.uber.org/zap"
)

// Options são as flags mutáveis do shell, inicializadas pelas opções de
// linha de comando (-e/-x) e alteradas pelo builtin set. O nome da opção
// de cache é "cachepaths", consistentemente — leitor e escritor usam a
// mesma chave.
type Options struct {
	Errexit      bool
	ShowCommands bool
	CachePaths   bool
}

// Shell é o estado completo do interpretador: ambiente, aliases, opções,
// cache de PATH e o adaptador de plataforma. Um único valor, passado
// explicitamente — nada de globais. A visibilidade process-wide que os
// filhos precisam vem do Setenv real da plataforma.
type Shell struct {
	platform    platform.Platform
	logger      *zap.Logger
	opts        Options
	aliases     map[string]string
	pathCache   map[string]string
	interactive bool
	npos        int

	// stdout/stderr são os destinos default dos builtins e das mensagens
	// de erro; injetáveis nos testes.
	stdout io.Writer
	stderr io.Writer

	// exitFunc é chamada por exit e por errexit; a camada interativa a
	// substitui para salvar o histórico antes de sair.
	exitFunc func(int)
}

func New(p platform.Platform, logger *zap.Logger, opts Options) *Shell {
	return &Shell{
		platform:  p,
		logger:    logger,
		opts:      opts,
		aliases:   make(map[string]string),
		pathCache: make(map[string]string),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		exitFunc:  os.Exit,
	}
}

// SetInteractive marca a sessão como interativa: filhos passam a receber
// o foreground do terminal.
func (s *Shell) SetInteractive(v bool) { s.interactive = v }

// SetExitFunc substitui a rotina de término do processo.
func (s *Shell) SetExitFunc(f func(int)) { s.exitFunc = f }

// Options devolve uma cópia das opções vigentes.
func (s *Shell) Options() Options { return s.opts }

// Getenv consulta o ambiente do processo.
func (s *Shell) Getenv(key string) string {
	return s.platform.Getenv(key)
}

// Setenv grava no ambiente real do processo, para que filhos herdem.
func (s *Shell) Setenv(key, value string) {
	if err := s.platform.Setenv(key, value); err != nil {
		s.logger.Warn("falha ao definir variável de ambiente",
			zap.String("key", key), zap.Error(err))
	}
}

// SetArgs grava os parâmetros posicionais $0, $1, ... no ambiente.
func (s *Shell) SetArgs(args []string) {
	for i, a := range args {
		s.Setenv(strconv.Itoa(i), a)
	}
	if len(args) > s.npos {
		s.npos = len(args)
	}
}

// savePositionals captura $0..$n para restauração posterior (source).
func (s *Shell) savePositionals() []string {
	saved := make([]string, s.npos)
	for i := range saved {
		saved[i] = s.Getenv(strconv.Itoa(i))
	}
	return saved
}

func (s *Shell) restorePositionals(saved []string) {
	for i, v := range saved {
		s.Setenv(strconv.Itoa(i), v)
	}
}

// Alias consulta a tabela de aliases.
func (s *Shell) Alias(name string) (string, bool) {
	v, ok := s.aliases[name]
	return v, ok
}

func (s *Shell) setAlias(name, value string) { s.aliases[name] = value }
func (s *Shell) unsetAlias(name string)      { delete(s.aliases, name) }

func (s *Shell) sortedAliasNames() []string {
	names := make([]string, 0, len(s.aliases))
	for n := range s.aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// reportf escreve uma mensagem de erro visível ao usuário, sempre com o
// prefixo do shell e terminada por LF.
func (s *Shell) reportf(format string, args ...interface{}) {
	fmt.Fprintf(s.stderr, "vbls: "+format+"\n", args...)
}

// EvalChunk avalia um chunk de entrada (uma linha interativa, o argumento
// de -c ou o conteúdo de um arquivo). Retorna true em conclusão limpa.
func (s *Shell) EvalChunk(chunk string) bool {
	for len(chunk) > 0 && chunk[0] == ' ' {
		chunk = chunk[1:]
	}
	if chunk == "" {
		return true
	}

	tokens, err := Tokenize(chunk)
	if err != nil {
		s.reportf("%s", err.Error())
		return false
	}

	ok, _ := s.evalTokens(tokens, false)
	return ok
}

// evalCapture avalia um texto com captura da saída, para substituição de
// comando e iteração de for.
func (s *Shell) evalCapture(text string) (bool, string) {
	tokens, err := Tokenize(text)
	if err != nil {
		s.reportf("%s", err.Error())
		return false, ""
	}
	return s.evalTokens(tokens, true)
}

// SourceFile lê e avalia um arquivo, restaurando os parâmetros
// posicionais do chamador ao final.
func (s *Shell) SourceFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		s.reportf("%s: %s", path, s.platform.ErrnoName(err))
		return false
	}

	saved := s.savePositionals()
	defer s.restorePositionals(saved)

	return s.EvalChunk(string(data))
}
