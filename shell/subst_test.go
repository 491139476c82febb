package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandWords_Params(t *testing.T) {
	s, fp, _, _, _ := newTestShell(t)
	fp.env["NAME"] = "mundo"
	fp.env["A_1"] = "x"

	argv := s.expandWords([]Token{word("ola-$NAME"), word("${A_1}/y"), word("$NAO_DEFINIDA")})
	assert.Equal(t, []string{"ola-mundo", "x/y", ""}, argv)
}

func TestExpandWords_BracesBeforeBare(t *testing.T) {
	s, fp, _, _, _ := newTestShell(t)
	fp.env["AB"] = "curto"
	fp.env["ABC"] = "longo"

	argv := s.expandWords([]Token{word("${AB}C")})
	assert.Equal(t, []string{"curtoC"}, argv)
}

func TestExpandWords_SeparatorStripped(t *testing.T) {
	s, _, _, _, _ := newTestShell(t)

	argv := s.expandWords([]Token{word("echo"), {Kind: TokenSep, Text: ";"}, word("a")})
	assert.Equal(t, []string{"echo", "a"}, argv)
}

func TestExpandWords_Glob(t *testing.T) {
	s, fp, _, _, _ := newTestShell(t)
	fp.globs["*.go"] = []string{"b.go", "a.go"}

	// com matches: resultado ordenado no lugar da palavra
	argv := s.expandWords([]Token{word("*.go")})
	assert.Equal(t, []string{"a.go", "b.go"}, argv)

	// sem matches: a palavra fica como está
	argv = s.expandWords([]Token{word("*.rs")})
	assert.Equal(t, []string{"*.rs"}, argv)

	// expressão de colchetes de um caractere conta como glob
	assert.True(t, hasGlobMeta("file[a]"))
	assert.False(t, hasGlobMeta("file[ab]"))
	assert.False(t, hasGlobMeta("plain"))
}

func TestExpandWords_CommandSubst(t *testing.T) {
	s, _, _, _, _ := newTestShell(t)

	// as linhas capturadas entram no lugar da palavra
	argv := s.expandWords([]Token{word("$(echo_nl one two)"), word("tail")})
	assert.Equal(t, []string{"one", "two", "tail"}, argv)

	// captura vazia remove o argumento
	argv = s.expandWords([]Token{word("antes"), word("$(:)"), word("depois")})
	assert.Equal(t, []string{"antes", "depois"}, argv)
}

func TestExpandWords_NoParamExpansionOnSubstResult(t *testing.T) {
	s, fp, _, _, _ := newTestShell(t)
	fp.env["X"] = "$Y"
	fp.env["Y"] = "nao-deveria-aparecer"

	// $X expande uma única vez; o $Y resultante não é re-expandido
	argv := s.expandWords([]Token{word("$X")})
	assert.Equal(t, []string{"$Y"}, argv)

	// idem para o resultado de substituição de comando
	argv = s.expandWords([]Token{word("$(echo $X)")})
	assert.Equal(t, []string{"$Y"}, argv)
}
