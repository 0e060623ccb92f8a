// Package texto normaliza texto para busca: minúsculas e sem acentos,
// para que "Dipirona Sódica" case com "dipirona sodica".
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// remove as marcas de combinação (acentos) após decompor em NFD.
var semAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar devolve o texto em minúsculas, sem acentos e sem espaços nas
// pontas. É aplicado tanto ao termo buscado quanto à coluna de busca
// mantida pelo repositório, então os dois lados comparam igual.
func Normalizar(s string) string {
	out, _, err := transform.String(semAcentos, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// ChaveBusca concatena os campos pesquisáveis já normalizados.
func ChaveBusca(campos ...string) string {
	partes := make([]string, 0, len(campos))
	for _, c := range campos {
		if n := Normalizar(c); n != "" {
			partes = append(partes, n)
		}
	}
	return strings.Join(partes, " ")
}
