package kalshi

// marketsResponse es una página de GET /markets.
type marketsResponse struct {
	Markets []market `json:"markets"`
	Cursor  string   `json:"cursor"`
}

// market es un contrato raw. Los asks vienen en centavos; 0 o ausente = sin ask.
type market struct {
	Ticker      string `json:"ticker"`
	EventTicker string `json:"event_ticker"`
	YesSubTitle string `json:"yes_sub_title"`
	Subtitle    string `json:"subtitle"`
	Status      string `json:"status"`
	YesAsk      int    `json:"yes_ask"`
	NoAsk       int    `json:"no_ask"`
	Volume      int64  `json:"volume"`
}
