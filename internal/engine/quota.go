package engine

// YouTube Data API unit costs: search.list is 100 units per page of 50,
// videos.list is 1 unit per batch of 50. These estimates feed the tool
// outputs so a user can see what a call will burn before repeating it.

func pagesOf50(n int) int {
	if n < 1 {
		n = 1
	}
	return (n + 49) / 50
}

// EstimateSearchUnits is the upper-bound unit cost of one search pipeline run.
func EstimateSearchUnits(fetchTotal int) int {
	if fetchTotal > MaxFetchTotal {
		fetchTotal = MaxFetchTotal
	}
	pages := pagesOf50(fetchTotal)
	return pages*100 + pages*1
}

// EstimateTrendingUnits is the unit cost of paging the mostPopular chart.
func EstimateTrendingUnits(fetchTotal int) int {
	return pagesOf50(fetchTotal)
}

// EstimateBoardUnits is the unit cost of the keyword board: each keyword
// collects 120 results (3 search pages + 3 detail batches).
func EstimateBoardUnits(keywords int) int {
	return keywords * (3*100 + 3*1)
}
