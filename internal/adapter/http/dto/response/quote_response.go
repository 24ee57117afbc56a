package response

import "homologacion_motos/internal/domain/catalog"

type QuotedElementResponse struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// QuoteResponse is the outcome of a direct tariff computation over catalog
// element codes, with the requested lines echoed back.
type QuoteResponse struct {
	CategoryID string                  `json:"category_id"`
	TierID     string                  `json:"tier_id"`
	TierCode   string                  `json:"tier_code"`
	TierName   string                  `json:"tier_name"`
	Price      float64                 `json:"price"`
	Requested  []QuotedElementResponse `json:"requested"`
}

func FromTariffSelection(categoryID string, requested []catalog.RequestedElement, sel catalog.Selection) QuoteResponse {
	lines := make([]QuotedElementResponse, 0, len(requested))
	for _, r := range requested {
		lines = append(lines, QuotedElementResponse{Code: r.Code, Quantity: r.Quantity})
	}
	return QuoteResponse{
		CategoryID: categoryID,
		TierID:     sel.Tier.ID,
		TierCode:   sel.Tier.Code,
		TierName:   sel.Tier.Name,
		Price:      sel.Tier.Price,
		Requested:  lines,
	}
}
