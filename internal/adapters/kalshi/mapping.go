package kalshi

import "github.com/alejandrodnm/edgefinder/internal/domain"

func mapMarkets(raw []market) []domain.MarketContract {
	out := make([]domain.MarketContract, 0, len(raw))
	for _, m := range raw {
		out = append(out, mapMarket(m))
	}
	return out
}

// mapMarket usa yes_sub_title y cae a subtitle si viene vacío.
func mapMarket(m market) domain.MarketContract {
	subtitle := m.YesSubTitle
	if subtitle == "" {
		subtitle = m.Subtitle
	}
	return domain.MarketContract{
		Ticker:      m.Ticker,
		EventTicker: m.EventTicker,
		Subtitle:    subtitle,
		YesAsk:      clampAsk(m.YesAsk),
		NoAsk:       clampAsk(m.NoAsk),
		Volume:      m.Volume,
	}
}

// clampAsk normaliza asks fuera de rango a 0 (ausente).
func clampAsk(cents int) int {
	if cents < 0 || cents > 100 {
		return 0
	}
	return cents
}
