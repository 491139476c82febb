/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/diillson/vbls/config"
	"go.uber.org/zap"
)

// Command é um comando expandido pronto para despachar: argv mais as
// pontas de pipe opcionais. As pontas pertencem ao executor da cadeia,
// que as fecha depois do despacho.
type Command struct {
	Args []string
	In   *os.File
	Out  *os.File
}

// runCommand despacha um comando: builtin no processo pai, ou um filho
// via plataforma. Retorna o status de saída; o erro só é não-nulo para
// falha de resolução (comando não encontrado).
func (s *Shell) runCommand(cmd *Command) (int, error) {
	if len(cmd.Args) == 0 {
		return 0, nil
	}

	if s.opts.ShowCommands {
		fmt.Fprintf(s.stderr, "+ '%s '\n", strings.Join(cmd.Args, " "))
	}

	if fn, ok := builtins[cmd.Args[0]]; ok {
		return fn(s, cmd.Args[1:], cmd.In, cmd.Out), nil
	}

	path, err := s.findCommand(cmd.Args[0])
	if err != nil {
		return 127, err
	}

	proc, err := s.platform.StartProcess(path, cmd.Args, cmd.In, cmd.Out, s.interactive)
	if err != nil {
		s.reportf("%s: %s", path, s.platform.ErrnoName(err))
		return execFailureStatus(err), nil
	}

	status := s.platform.Wait(proc)

	if s.interactive {
		s.platform.ForegroundSelf()
	}

	s.logger.Debug("comando externo concluído",
		zap.String("path", path), zap.Int("status", status))

	return status, nil
}

// findCommand resolve um nome de comando: nomes com '/' são usados como
// estão; os demais são procurados entrada a entrada no PATH, tentando o
// nome puro e o nome com o sufixo de script configurado.
func (s *Shell) findCommand(name string) (string, error) {
	if strings.ContainsRune(name, '/') {
		return name, nil
	}

	if cached, ok := s.pathCache[name]; ok {
		return cached, nil
	}

	pathVar := s.Getenv("PATH")
	if pathVar == "" {
		pathVar = config.DefaultPath
	}

	suffix := s.scriptSuffix()

	for _, entry := range strings.Split(pathVar, ":") {
		if entry == "" {
			continue
		}
		candidate := entry + "/" + name
		if s.platform.FileExists(candidate) {
			s.cachePath(name, candidate)
			return candidate, nil
		}
		if suffix != "" && s.platform.FileExists(candidate+suffix) {
			s.cachePath(name, candidate+suffix)
			return candidate + suffix, nil
		}
	}

	return "", &ResolutionError{Name: name}
}

func (s *Shell) cachePath(name, resolved string) {
	if s.opts.CachePaths {
		s.pathCache[name] = resolved
	}
}

func (s *Shell) scriptSuffix() string {
	if v, ok := s.platform.LookupEnv("VBLS_SCRIPT_SUFFIX"); ok {
		return v
	}
	return config.DefaultScriptSuffix
}

// execFailureStatus extrai o errno de uma falha de exec para usar como
// status de saída do comando.
func execFailureStatus(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 126
}
