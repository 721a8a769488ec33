package domain

import "strings"

// UnknownEvent es la etiqueta de un código que no está en la tabla de eventos conocidos.
const UnknownEvent = "Unknown"

// knownEvent asocia un prefijo de código de evento del exchange con el nombre del torneo.
type knownEvent struct {
	code string
	name string
}

// knownEvents se recorre en orden; gana la primera entrada contenida en el código.
var knownEvents = []knownEvent{
	{"ATPBP", "Pebble Beach"},
	{"MAST", "Masters"},
	{"PGAC", "PGA Championship"},
	{"USOP", "US Open"},
	{"OPEN", "The Open"},
	{"PLAY", "Players"},
	{"GENE", "Genesis"},
	{"PHOE", "WM Phoenix"},
	{"FARM", "Farmers"},
	{"MEMO", "Memorial"},
	{"TRAV", "Travelers"},
	{"SENT", "Sentry"},
	{"SONY", "Sony Open"},
	{"WELL", "Wells Fargo"},
	{"RBC", "RBC Heritage"},
}

var majors = map[string]bool{
	"Masters":          true,
	"PGA Championship": true,
	"US Open":          true,
	"The Open":         true,
}

// EventCode extrae el código de evento de un event ticker: el segundo segmento
// separado por guiones, en mayúsculas. "KXPGATOUR-mast25" → "MAST25". "" si no hay segundo segmento.
func EventCode(eventTicker string) string {
	parts := strings.Split(eventTicker, "-")
	if len(parts) < 2 {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(parts[1]))
}

// EventLabel devuelve el nombre del torneo para un código de evento
// ("MAST25" → "Masters") o UnknownEvent si no se reconoce.
func EventLabel(code string) string {
	prefix := strings.TrimRight(strings.ToUpper(code), "0123456789")
	if prefix == "" {
		return UnknownEvent
	}
	for _, ev := range knownEvents {
		if strings.Contains(prefix, ev.code) {
			return ev.name
		}
	}
	return UnknownEvent
}

// IsMajor devuelve true si la etiqueta es uno de los cuatro majors.
func IsMajor(label string) bool {
	return majors[label]
}

// ContractEventLabel es un atajo para EventLabel(EventCode(ticker)).
func ContractEventLabel(c MarketContract) string {
	return EventLabel(c.EventCode())
}
