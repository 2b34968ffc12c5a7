package types

// Filter carries list-query parameters parsed from the URL.
type Filter struct {
	Search         string
	Filter         map[string]interface{}
	Sort           map[string]string
	Limit          int
	Offset         int
	Page           int
	WithPagination bool
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}
