/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package shell

import (
	"strings"
)

// readTo coleta tokens a partir de start até (sem incluir) a keyword
// indicada, retornando o índice dela.
func readTo(tokens []Token, start int, target string) (int, []Token, error) {
	var collected []Token
	for i := start; i < len(tokens); i++ {
		if tokens[i].Kind == TokenKeyword && tokens[i].Text == target {
			return i, collected, nil
		}
		collected = append(collected, tokens[i])
	}
	return 0, nil, parseErrorf("missing '%s'", target)
}

// balancedSeek avança a partir de start rastreando o nível de aninhamento
// (if/for/while sobem, end desce) e para na primeira keyword-alvo vista
// no nível 1. Retorna o índice da keyword e os tokens pulados, sem ela.
func balancedSeek(tokens []Token, start int, targets ...string) (int, []Token, error) {
	level := 1
	var skipped []Token

	for i := start; i < len(tokens); i++ {
		t := tokens[i]
		if t.Kind == TokenKeyword {
			if level == 1 {
				for _, target := range targets {
					if t.Text == target {
						return i, skipped, nil
					}
				}
			}
			switch t.Text {
			case "if", "for", "while":
				level++
			case "end":
				level--
			}
		}
		skipped = append(skipped, t)
	}

	return 0, nil, parseErrorf("unbalanced block")
}

// evalTokens é o laço principal do avaliador: reconhece o fluxo de
// controle, mantém o buffer do comando corrente (com expansão de alias na
// primeira palavra) e despacha cadeias nos separadores. Retorna ok=true
// em conclusão limpa e a saída acumulada quando capture está ligado.
func (s *Shell) evalTokens(tokens []Token, capture bool) (bool, string) {
	var captured strings.Builder
	var cmd []Token

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		lastTok := i == len(tokens)-1

		if tok.Kind == TokenKeyword {
			switch tok.Text {
			case "if", "elseif":
				j, cond, err := readTo(tokens, i+1, "then")
				if err != nil {
					s.reportf("%s", err.Error())
					return false, captured.String()
				}

				// a condição roda como cadeia com captura; só o status
				// decide o ramo
				status, _, cerr := s.runChain(cond, true)
				if cerr != nil {
					s.reportf("%s", cerr.Error())
				}

				if status == 0 {
					stop, body, err := balancedSeek(tokens, j+1, "else", "elseif", "end")
					if err != nil {
						s.reportf("%s", err.Error())
						return false, captured.String()
					}
					ok, out := s.evalTokens(body, capture)
					captured.WriteString(out)
					if !ok {
						return false, captured.String()
					}
					if tokens[stop].Text == "end" {
						i = stop
					} else {
						// pular o resto do bloco até o end correspondente
						endIdx, _, err := balancedSeek(tokens, stop+1, "end")
						if err != nil {
							s.reportf("%s", err.Error())
							return false, captured.String()
						}
						i = endIdx
					}
				} else {
					stop, _, err := balancedSeek(tokens, j+1, "else", "elseif", "end")
					if err != nil {
						s.reportf("%s", err.Error())
						return false, captured.String()
					}
					switch tokens[stop].Text {
					case "else":
						endIdx, body, err := balancedSeek(tokens, stop+1, "end")
						if err != nil {
							s.reportf("%s", err.Error())
							return false, captured.String()
						}
						ok, out := s.evalTokens(body, capture)
						captured.WriteString(out)
						if !ok {
							return false, captured.String()
						}
						i = endIdx
					case "elseif":
						// recuar uma posição: o laço reentra no elseif
						// como se fosse um if
						i = stop - 1
					case "end":
						i = stop
					}
				}
				continue

			case "for":
				j, header, err := readTo(tokens, i+1, "do")
				if err != nil {
					s.reportf("%s", err.Error())
					return false, captured.String()
				}
				if len(header) < 2 || header[0].Kind != TokenWord ||
					header[1].Kind != TokenKeyword || header[1].Text != "in" {
					s.reportf("missing 'in'")
					return false, captured.String()
				}
				varName := header[0].Text
				chain := header[2:]

				endIdx, body, err := balancedSeek(tokens, j+1, "end")
				if err != nil {
					s.reportf("%s", err.Error())
					return false, captured.String()
				}

				// echo_nl prefixado: listas de palavras também iteram,
				// não só comandos que produzem saída
				capChain := append([]Token{word("echo_nl")}, chain...)
				_, out, cerr := s.runChain(capChain, true)
				if cerr != nil {
					s.reportf("%s", cerr.Error())
				}

				prior, had := s.platform.LookupEnv(varName)
				for _, line := range splitLines(out) {
					s.Setenv(varName, line)
					ok, bout := s.evalTokens(body, capture)
					captured.WriteString(bout)
					if !ok {
						break
					}
				}
				if had {
					s.Setenv(varName, prior)
				} else if err := s.platform.Unsetenv(varName); err != nil {
					s.Setenv(varName, "")
				}

				i = endIdx
				continue

			case "else":
				s.reportf("unexpected 'else'")
				return false, captured.String()

			case "end":
				s.reportf("unexpected 'end'")
				return false, captured.String()

			case "while":
				s.reportf("'while' is not implemented")
				return false, captured.String()
			}
			// then/in/do fora de contexto caem no buffer como palavras
		}

		if tok.Kind == TokenSep || lastTok {
			if tok.Kind == TokenSep && tok.Text == ";" && len(cmd) == 0 {
				s.reportf("unexpected ';'")
				return false, captured.String()
			}
			if tok.Kind != TokenSep {
				s.appendToCommand(&cmd, tok)
			}
			if len(cmd) > 0 {
				status, out, err := s.runChain(cmd, capture)
				if capture {
					captured.WriteString(out)
				}
				if err != nil {
					s.reportf("%s", err.Error())
				}
				if status != 0 {
					if s.opts.Errexit {
						s.exitFunc(1)
					}
					return false, captured.String()
				}
				cmd = nil
			}
			continue
		}

		s.appendToCommand(&cmd, tok)
	}

	return true, captured.String()
}

// appendToCommand acrescenta um token ao comando corrente. A primeira
// palavra passa pela expansão de alias: o valor é re-tokenizado, mas não
// re-expandido.
func (s *Shell) appendToCommand(cmd *[]Token, tok Token) {
	if len(*cmd) == 0 && tok.Kind == TokenWord {
		if val, ok := s.aliases[tok.Text]; ok {
			repl, err := Tokenize(val)
			if err == nil {
				*cmd = append(*cmd, repl...)
				return
			}
			s.reportf("%s", err.Error())
		}
	}
	*cmd = append(*cmd, tok)
}
