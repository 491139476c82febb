package cli

import (
	"flag"
	"fmt"
	"strings"
)

// Options representa as flags suportadas pelo binário
type Options struct {
	// Geral
	Version bool // --version | -v
	Help    bool // --help | -h

	// Modo de execução
	Command         string // -c : avalia a string e sai
	CommandFlagUsed bool   // indica se -c foi passado explicitamente
	Login           bool   // --login : shell de login

	// Opções iniciais do interpretador
	Errexit      bool // -e
	ShowCommands bool // -x
}

// NewFlagSet cria um FlagSet isolado e as Options para parsing
func NewFlagSet() (*flag.FlagSet, *Options) {
	fs := flag.NewFlagSet("vbls", flag.ContinueOnError)
	opts := &Options{}

	fs.BoolVar(&opts.Version, "version", false, "Mostra versão e sai")
	fs.BoolVar(&opts.Version, "v", false, "Mostra versão e sai (alias)")

	fs.BoolVar(&opts.Help, "help", false, "Mostra ajuda e sai")
	fs.BoolVar(&opts.Help, "h", false, "Mostra ajuda e sai (alias)")

	fs.StringVar(&opts.Command, "c", "", "Avalia a string como um chunk e sai")

	fs.BoolVar(&opts.Login, "login", false, "Inicia como shell de login")

	fs.BoolVar(&opts.Errexit, "e", false, "Sai com status 1 em qualquer comando com status != 0 (errexit)")
	fs.BoolVar(&opts.ShowCommands, "x", false, "Imprime cada comando no stderr antes de executar (showcommands)")

	return fs, opts
}

// Parse analisa os args e retorna as Options e os argumentos posicionais
// (script e seus argumentos).
func Parse(args []string) (*Options, []string, error) {
	fs, opts := NewFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	// Detectar se a flag -c foi usada explicitamente (mesmo vazia)
	used := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "c" {
			used = true
		}
	})
	opts.CommandFlagUsed = used

	return opts, fs.Args(), nil
}

// PreprocessArgs normaliza o caso de -c sem valor, convertendo para -c=
// para não quebrar o flag parser.
func PreprocessArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "-c" {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") && args[i+1] != "" {
				out = append(out, a)
				continue
			}
			out = append(out, "-c=")
			continue
		}
		out = append(out, a)
	}
	return out
}

// Usage retorna o texto de ajuda do binário.
func Usage() string {
	var sb strings.Builder
	fmt.Fprintln(&sb, "uso: vbls [opções] [script [argumentos...]]")
	fmt.Fprintln(&sb)
	fmt.Fprintln(&sb, "  -c STRING    avalia STRING e sai")
	fmt.Fprintln(&sb, "  --login      inicia como shell de login")
	fmt.Fprintln(&sb, "  -e           errexit: sai em qualquer status != 0")
	fmt.Fprintln(&sb, "  -x           showcommands: imprime cada comando antes de executar")
	fmt.Fprintln(&sb, "  -h, --help   mostra esta ajuda")
	fmt.Fprintln(&sb, "  -v, --version  mostra a versão")
	return sb.String()
}
