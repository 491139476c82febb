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
	"strings"

	"github.com/diillson/vbls/platform"
)

// builtinFunc roda no processo pai, recebendo o argv sem o nome do
// builtin e as pontas de pipe opcionais. Retorna o status (0 = sucesso).
type builtinFunc func(s *Shell, args []string, in, out *os.File) int

var builtins map[string]builtinFunc

// o mapa é montado em init para evitar ciclo de inicialização
// (source avalia chunks, que despacham builtins)
func init() {
	builtins = map[string]builtinFunc{
		"alias":    builtinAlias,
		"unalias":  builtinUnalias,
		"cd":       builtinCd,
		"set":      builtinSet,
		"printf":   builtinPrintf,
		"echo":     builtinEcho,
		"echo_nl":  builtinEchoNl,
		"umask":    builtinUmask,
		"builtins": builtinBuiltins,
		"exit":     builtinExit,
		"source":   builtinSource,
		".":        builtinSource,
		":":        builtinColon,
		"equals":   builtinEquals,
	}
}

// BuiltinNames retorna os nomes dos builtins em ordem alfabética,
// para a listagem do builtin homônimo e para o autocompletar.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// writerFor resolve o destino de escrita de um builtin: a ponta de pipe
// recebida ou o stdout do shell.
func (s *Shell) writerFor(out *os.File) io.Writer {
	if out != nil {
		return out
	}
	return s.stdout
}

func (s *Shell) usage(e *UsageError) int {
	s.reportf("%s", e.Error())
	return 2
}

func builtinAlias(s *Shell, args []string, in, out *os.File) int {
	w := s.writerFor(out)

	switch len(args) {
	case 0:
		for _, name := range s.sortedAliasNames() {
			fmt.Fprintf(w, "%s='%s'\n", name, s.aliases[name])
		}
		return 0
	case 1:
		val, ok := s.Alias(args[0])
		if !ok {
			s.reportf("alias: %s: not found", args[0])
			return 1
		}
		fmt.Fprintf(w, "%s='%s'\n", args[0], val)
		return 0
	case 2:
		s.setAlias(args[0], args[1])
		return 0
	default:
		return s.usage(&UsageError{Builtin: "alias", Usage: "[name [value]]"})
	}
}

func builtinUnalias(s *Shell, args []string, in, out *os.File) int {
	if len(args) != 1 {
		return s.usage(&UsageError{Builtin: "unalias", Usage: "name"})
	}
	s.unsetAlias(args[0])
	return 0
}

func builtinCd(s *Shell, args []string, in, out *os.File) int {
	if len(args) > 1 {
		return s.usage(&UsageError{Builtin: "cd", Usage: "[dir]"})
	}

	requested := s.Getenv("HOME")
	if len(args) == 1 {
		requested = args[0]
		if args[0] == "-" {
			requested = s.Getenv("OLDPWD")
		}
	}

	resolved, err := s.platform.Realpath(requested)
	if err == nil {
		err = s.platform.Chdir(resolved)
	}
	if err != nil {
		// o erro nomeia o caminho pedido, não o resolvido
		s.reportf("cd: %s: %s", requested, s.platform.ErrnoName(err))
		return 1
	}

	// PWD e OLDPWD mudam juntos, e só depois do chdir bem-sucedido
	old := s.Getenv("PWD")
	if old == "" {
		old, _ = s.platform.Getwd()
	}
	s.Setenv("OLDPWD", old)
	s.Setenv("PWD", resolved)
	return 0
}

func builtinSet(s *Shell, args []string, in, out *os.File) int {
	w := s.writerFor(out)

	if len(args) == 0 {
		env := s.platform.Environ()
		sort.Strings(env)
		for _, kv := range env {
			fmt.Fprintf(w, "%s\n", renderControlChars(kv))
		}
		return 0
	}

	invert := false
	var words []string
	for _, a := range args {
		switch a {
		case "-n":
			invert = true
		case "-e", "--errexit":
			s.opts.Errexit = !invert
		case "-x", "--showcommand", "--showcommands":
			s.opts.ShowCommands = !invert
		case "--cachepaths":
			s.opts.CachePaths = !invert
		default:
			words = append(words, a)
		}
	}

	if len(words) == 1 {
		return s.usage(&UsageError{Builtin: "set", Usage: "[-n] [-e|-x|--cachepaths] [name value...]"})
	}
	if len(words) >= 2 {
		s.Setenv(words[0], strings.Join(words[1:], " "))
	}
	return 0
}

// renderControlChars torna caracteres de controle visíveis na listagem
// do ambiente: ESC vira \e, os demais viram \X com X = caractere + 96.
func renderControlChars(kv string) string {
	var sb strings.Builder
	for _, r := range kv {
		switch {
		case r == 0x1b:
			sb.WriteString(`\e`)
		case r < 32 && r >= 0:
			sb.WriteByte('\\')
			sb.WriteRune(r + 96)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func builtinEcho(s *Shell, args []string, in, out *os.File) int {
	fmt.Fprintf(s.writerFor(out), "%s\n", strings.Join(args, " "))
	return 0
}

func builtinEchoNl(s *Shell, args []string, in, out *os.File) int {
	fmt.Fprintf(s.writerFor(out), "%s\n", strings.Join(args, "\n"))
	return 0
}

func builtinPrintf(s *Shell, args []string, in, out *os.File) int {
	if len(args) == 0 {
		return s.usage(&UsageError{Builtin: "printf", Usage: "format [args...]"})
	}
	text, err := formatPrintf(args[0], args[1:])
	if err != nil {
		return s.usage(&UsageError{Builtin: "printf", Usage: "format [args...]"})
	}
	fmt.Fprint(s.writerFor(out), text)
	return 0
}

// formatPrintf aplica um formato no estilo do printf de C sobre
// argumentos string, convertendo cada um conforme o verbo pede.
func formatPrintf(format string, args []string) (string, error) {
	var goFormat strings.Builder
	var fmtArgs []interface{}
	next := 0

	takeArg := func() string {
		if next < len(args) {
			a := args[next]
			next++
			return a
		}
		return ""
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			goFormat.WriteByte(c)
			continue
		}

		j := i + 1
		for j < len(format) && strings.IndexByte("-+ #0123456789.", format[j]) >= 0 {
			j++
		}
		if j >= len(format) {
			return "", fmt.Errorf("formato truncado")
		}

		spec := format[i : j+1]
		verb := format[j]
		switch verb {
		case '%':
			goFormat.WriteString("%%")
		case 's':
			goFormat.WriteString(spec)
			fmtArgs = append(fmtArgs, takeArg())
		case 'c':
			goFormat.WriteString(spec)
			arg := takeArg()
			var r rune
			for _, rr := range arg {
				r = rr
				break
			}
			fmtArgs = append(fmtArgs, r)
		case 'd', 'i', 'o', 'x', 'X', 'u':
			translated := spec
			if verb == 'i' || verb == 'u' {
				translated = spec[:len(spec)-1] + "d"
			}
			goFormat.WriteString(translated)
			n, err := strconv.ParseInt(takeArg(), 10, 64)
			if err != nil {
				return "", err
			}
			fmtArgs = append(fmtArgs, n)
		case 'f', 'e', 'E', 'g', 'G':
			goFormat.WriteString(spec)
			f, err := strconv.ParseFloat(takeArg(), 64)
			if err != nil {
				return "", err
			}
			fmtArgs = append(fmtArgs, f)
		default:
			return "", fmt.Errorf("verbo desconhecido: %%%c", verb)
		}
		i = j
	}

	return fmt.Sprintf(goFormat.String(), fmtArgs...), nil
}

func builtinUmask(s *Shell, args []string, in, out *os.File) int {
	show := false
	if len(args) > 0 && args[0] == "-s" {
		show = true
		args = args[1:]
	}
	if len(args) != 1 {
		return s.usage(&UsageError{Builtin: "umask", Usage: "[-s] mask"})
	}

	current := s.platform.Umask(0)
	mask, err := platform.ParseMask(args[0], current)
	if err != nil {
		s.platform.Umask(current)
		s.reportf("umask: %s", err.Error())
		return 2
	}
	s.platform.Umask(mask)

	if show {
		fmt.Fprintf(s.writerFor(out), "%04o\n", mask)
	}
	return 0
}

func builtinBuiltins(s *Shell, args []string, in, out *os.File) int {
	fmt.Fprintf(s.writerFor(out), "%s\n", strings.Join(BuiltinNames(), "\n"))
	return 0
}

func builtinExit(s *Shell, args []string, in, out *os.File) int {
	status := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return s.usage(&UsageError{Builtin: "exit", Usage: "[status]"})
		}
		status = n
	}
	s.exitFunc(status)
	return status
}

func builtinSource(s *Shell, args []string, in, out *os.File) int {
	if len(args) != 1 {
		return s.usage(&UsageError{Builtin: "source", Usage: "file"})
	}
	if s.SourceFile(args[0]) {
		return 0
	}
	return 1
}

func builtinColon(s *Shell, args []string, in, out *os.File) int {
	return 0
}

func builtinEquals(s *Shell, args []string, in, out *os.File) int {
	if len(args) != 2 {
		return s.usage(&UsageError{Builtin: "equals", Usage: "a b"})
	}
	if args[0] == args[1] {
		return 0
	}
	return 1
}
