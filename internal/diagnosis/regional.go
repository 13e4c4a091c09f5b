package diagnosis

import (
	"slices"

	"github.com/autocare/autocare/internal/catalog"
)

// regionalInsights returns the seasonal, climate and local-tip context for a
// region and season. An empty category selects the default tips.
func regionalInsights(cat *catalog.Catalog, region, season, category string) RegionalInsights {
	s, _ := cat.Season(season)
	climate := cat.Climate(region)
	return RegionalInsights{
		Region:           region,
		Season:           season,
		CommonIssues:     slices.Clone(s.CommonIssues),
		SeasonalSeverity: s.Severity,
		Climate:          climate,
		ClimateIssues:    cat.ClimateIssues(climate),
		LocalTips:        cat.Tips(region, category),
	}
}
