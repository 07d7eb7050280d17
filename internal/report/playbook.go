package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Thesis is one high-conviction play in the week-ahead section.
type Thesis struct {
	Sector     string
	FocusAreas string
	Catalyst   string
	RiskLevel  string
}

// Allocation is one slice of the monthly cash deployment plan.
type Allocation struct {
	Weight decimal.Decimal
	Label  string
	Notes  []string
}

type RiskFactor struct {
	Name   string
	Detail string
}

var theses = []Thesis{
	{
		Sector:     "Technology Sector",
		FocusAreas: "AI infrastructure, semiconductors, cloud computing",
		Catalyst:   "Continued enterprise AI adoption",
		RiskLevel:  "Medium-High",
	},
	{
		Sector:     "Emerging Markets",
		FocusAreas: "Latin American fintech, Asian e-commerce",
		Catalyst:   "Digital transformation in developing economies",
		RiskLevel:  "High (currency and political risk)",
	},
	{
		Sector:     "Biotech/Healthcare",
		FocusAreas: "Gene therapy, precision medicine",
		Catalyst:   "FDA approvals pipeline, aging demographics",
		RiskLevel:  "Very High (regulatory and clinical trial risk)",
	},
}

var allocations = mustAllocations([]Allocation{
	{
		Weight: decimal.NewFromInt(40),
		Label:  "Core Tech Positions",
		Notes: []string{
			"Dollar-cost average into established tech leaders",
			"Focus on companies with strong cash flow and AI exposure",
		},
	},
	{
		Weight: decimal.NewFromInt(30),
		Label:  "High-Growth Plays",
		Notes: []string{
			"Build positions in companies with 30%+ revenue growth",
			"Look for market leaders in emerging categories",
		},
	},
	{
		Weight: decimal.NewFromInt(20),
		Label:  "Sector Rotation/Opportunistic",
		Notes: []string{
			"Rotate based on weekly news and earnings",
			"Consider undervalued sectors showing momentum",
		},
	},
	{
		Weight: decimal.NewFromInt(10),
		Label:  "Speculative/High-Risk",
		Notes: []string{
			"Small cap stocks with breakthrough potential",
			"Set strict stop-losses (15-20%)",
		},
	},
})

var riskFactors = []RiskFactor{
	{Name: "Geopolitical Tensions", Detail: "Monitor international developments"},
	{Name: "Interest Rate Environment", Detail: "Fed policy impacts valuations"},
	{Name: "Valuation Concerns", Detail: "Growth stocks at premium multiples"},
	{Name: "Market Momentum", Detail: "Watch for technical indicators"},
}

var catalysts = []string{
	"Earnings season developments",
	"Economic data releases (GDP, employment, inflation)",
	"Sector-specific news and M&A activity",
	"Global market correlations",
}

var hundred = decimal.NewFromInt(100)

// TotalWeight sums the allocation weights in percent.
func TotalWeight(as []Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range as {
		total = total.Add(a.Weight)
	}
	return total
}

func mustAllocations(as []Allocation) []Allocation {
	if total := TotalWeight(as); !total.Equal(hundred) {
		panic(fmt.Sprintf("report: allocation weights sum to %s%%, want 100%%", total.String()))
	}
	return as
}

func percent(w decimal.Decimal) string {
	return w.StringFixed(0) + "%"
}
