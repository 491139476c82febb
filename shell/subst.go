/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package shell

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	reBraceParam = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)
	reBareParam  = regexp.MustCompile(`\$([A-Za-z0-9_]+)`)
)

// expandWords aplica, palavra a palavra e da esquerda para a direita:
// substituição de comando $(...), remoção de separadores residuais,
// expansão de glob e, por último, expansão de parâmetros. Palavras vindas
// de substituição de comando ou de glob já são finais e não passam pela
// expansão de parâmetros.
func (s *Shell) expandWords(tokens []Token) []string {
	argv := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		// separadores que não foram consumidos pelo avaliador
		// (ex.: o ';' de uma condição de if) somem no nível de argv
		if tok.Kind == TokenSep {
			continue
		}

		w := tok.Text

		if strings.HasPrefix(w, "$(") && strings.HasSuffix(w, ")") {
			inner := w[2 : len(w)-1]
			_, out := s.evalCapture(inner)
			// captura vazia remove o argumento por completo
			argv = append(argv, splitLines(out)...)
			continue
		}

		if hasGlobMeta(w) {
			matches, err := s.platform.Glob(w)
			if err == nil && len(matches) > 0 {
				argv = append(argv, matches...)
				continue
			}
			if err != nil {
				s.logger.Debug("glob falhou", zap.String("pattern", w), zap.Error(err))
			}
			argv = append(argv, w)
			continue
		}

		argv = append(argv, s.expandParams(w))
	}

	return argv
}

// expandParams aplica ${NAME} e depois $NAME textualmente; variáveis não
// definidas expandem para vazio.
func (s *Shell) expandParams(w string) string {
	w = reBraceParam.ReplaceAllStringFunc(w, func(m string) string {
		return s.Getenv(m[2 : len(m)-1])
	})
	w = reBareParam.ReplaceAllStringFunc(w, func(m string) string {
		return s.Getenv(m[1:])
	})
	return w
}

// hasGlobMeta detecta *, ? ou uma expressão de colchetes [x] de um
// caractere.
func hasGlobMeta(w string) bool {
	for i := 0; i < len(w); i++ {
		switch w[i] {
		case '*', '?':
			return true
		case '[':
			if i+2 < len(w) && w[i+2] == ']' {
				return true
			}
		}
	}
	return false
}

// splitLines divide uma captura em linhas, descartando linhas vazias
// (inclusive a vazia final deixada pelo LF terminador).
func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	parts := strings.Split(out, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}
