package dto

type ProductFilters struct {
	StoreID     string `json:"store_id"`
	Status      string `json:"status"`
	SearchQuery string `json:"search_query"` // name search (both languages)
	SortBy      string `json:"sort_by"`      // name, price, created_at, sort_order
	SortOrder   string `json:"sort_order"`   // asc, desc
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}
