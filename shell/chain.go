/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package shell

import (
	"os"
	"strings"

	"github.com/diillson/vbls/config"
)

// splitChain separa os tokens de uma cadeia em elementos e nos operadores
// que os ligam. Um operador logo após um elemento vazio é erro.
func splitChain(tokens []Token) ([][]Token, []string, error) {
	var elems [][]Token
	var ops []string
	var cur []Token

	for _, tok := range tokens {
		if tok.Kind == TokenOp {
			if len(cur) == 0 {
				return nil, nil, parseErrorf("unexpected '%s'", tok.Text)
			}
			elems = append(elems, cur)
			ops = append(ops, tok.Text)
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}

	if len(cur) == 0 && len(ops) > 0 {
		return nil, nil, parseErrorf("unexpected '%s'", ops[len(ops)-1])
	}
	elems = append(elems, cur)

	return elems, ops, nil
}

// runChain executa uma cadeia de comandos ligados por |, && e ||.
// Pipes são alocados sob demanda, apenas para '|'; com capture, um pipe
// extra recolhe o stdout do último elemento. Toda ponta alocada é fechada
// em todos os caminhos — sucesso, erro e curto-circuito.
func (s *Shell) runChain(tokens []Token, capture bool) (int, string, error) {
	elems, ops, err := splitChain(tokens)
	if err != nil {
		return 1, "", err
	}

	var capR, capW *os.File
	if capture {
		capR, capW, err = s.platform.Pipe()
		if err != nil {
			return 1, "", err
		}
	}

	var pendingIn *os.File
	var firstErr error
	last := 0

	for i := range elems {
		// && curto-circuita a cadeia inteira
		if i > 0 && ops[i-1] == "&&" && last != 0 {
			break
		}
		// || com sucesso anterior: o resultado já colapsou para 0,
		// este elemento não executa
		skip := i > 0 && ops[i-1] == "||" && last == 0

		in := pendingIn
		pendingIn = nil

		var out *os.File
		if i < len(ops) && ops[i] == "|" {
			r, w, perr := s.platform.Pipe()
			if perr != nil {
				closeFile(in)
				closeFile(capR)
				closeFile(capW)
				return 1, "", perr
			}
			out = w
			pendingIn = r
		} else if i == len(elems)-1 && capture {
			out = capW
			capW = nil
		}

		if skip {
			// o elemento não roda, mas as pontas alocadas para ele
			// precisam sumir (o leitor seguinte verá EOF)
			closeFile(in)
			closeFile(out)
			continue
		}

		argv := s.expandWords(elems[i])
		status, cerr := s.runCommand(&Command{Args: argv, In: in, Out: out})
		closeFile(in)
		closeFile(out)

		if cerr != nil && firstErr == nil {
			firstErr = cerr
		}
		last = status
	}

	closeFile(pendingIn)
	closeFile(capW)

	captured := ""
	if capR != nil {
		captured = drain(capR)
	}

	return last, captured, firstErr
}

// drain lê a ponta de leitura do pipe de captura em blocos até EOF e a
// fecha.
func drain(r *os.File) string {
	var sb strings.Builder
	buf := make([]byte, config.CaptureChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			sb.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	_ = r.Close()
	return sb.String()
}

func closeFile(f *os.File) {
	if f != nil {
		_ = f.Close()
	}
}
