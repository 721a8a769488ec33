package domain

// MarketContract es un contrato binario listado en el exchange para un jugador y un outcome.
type MarketContract struct {
	Ticker      string `json:"ticker"`
	EventTicker string `json:"event_ticker"` // "<SERIE>-<CODIGO><SECUENCIA>", p.ej. "KXPGATOUR-MAST25"
	Subtitle    string `json:"subtitle"`     // "Scottie Scheffler wins the Masters"
	YesAsk      int    `json:"yes_ask"`      // centavos 1–99; 0 = sin ask
	NoAsk       int    `json:"no_ask"`       // centavos 1–99; 0 = sin ask
	Volume      int64  `json:"volume"`
}

// EventCode devuelve el código de evento embebido en el event ticker.
func (c MarketContract) EventCode() string {
	return EventCode(c.EventTicker)
}
