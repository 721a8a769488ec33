package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Se aplica tras reorderLastFirst: las comas sobrantes ("Love, Davis, III") no deben sobrevivir.
	punctuationStripper = strings.NewReplacer(".", "", "-", "", "'", "", ",", "")

	generationalSuffixes = map[string]bool{
		"jr": true, "sr": true, "ii": true, "iii": true, "iv": true,
	}

	// Palabras que abren la frase de outcome en el subtítulo del contrato:
	// "Tiger Woods wins the tournament", "Rory McIlroy finish Top 10".
	outcomePhrase = regexp.MustCompile(`(?i)\s+(?:finish|wins?|top|make|miss)(?:[^a-z].*)?$`)
)

// NormalizeName convierte un nombre raw de cualquiera de las dos fuentes en una clave comparable:
// "Woods, Tiger" → "tiger woods", "J.T. Poston" → "jt poston", "Tiger Woods Jr." → "tiger woods".
// Devuelve "" para entrada vacía; esa clave nunca debe indexarse ni buscarse.
func NormalizeName(raw string) string {
	name := reorderLastFirst(strings.TrimSpace(raw))
	name = strings.ToLower(name)
	name = punctuationStripper.Replace(name)

	tokens := strings.Fields(name)
	for len(tokens) > 1 && generationalSuffixes[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// FuzzyKey deriva la clave de fallback "inicial_apellido" de una clave ya normalizada.
// Devuelve "" si la clave tiene menos de dos tokens.
//
// Es un tier de fallback conocido por dar falsos positivos entre jugadores distintos
// que comparten inicial y apellido; solo se consulta cuando la clave exacta falla.
func FuzzyKey(normalized string) string {
	tokens := strings.Fields(normalized)
	if len(tokens) < 2 {
		return ""
	}
	initial, _ := utf8.DecodeRuneInString(tokens[0])
	return string(initial) + "_" + tokens[len(tokens)-1]
}

// DisplayName reordena "Last, First" a "First Last" sin tocar mayúsculas.
func DisplayName(raw string) string {
	return reorderLastFirst(strings.TrimSpace(raw))
}

// ContractPlayerName extrae el nombre del jugador del subtítulo de un contrato
// cortando la frase de outcome. Requiere al menos dos tokens en el subtítulo;
// ok=false significa "sin nombre", el contrato se salta sin intentar match.
func ContractPlayerName(subtitle string) (string, bool) {
	if len(strings.Fields(subtitle)) < 2 {
		return "", false
	}
	name := strings.TrimSpace(outcomePhrase.ReplaceAllString(subtitle, ""))
	if name == "" {
		return "", false
	}
	return name, true
}

func reorderLastFirst(name string) string {
	last, first, ok := strings.Cut(name, ",")
	if !ok {
		return name
	}
	return strings.TrimSpace(first) + " " + strings.TrimSpace(last)
}
