package utils

// PaginationParams holds skip/limit request parameters as exposed by the
// catalog endpoints.
type PaginationParams struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// NormalizePagination clamps skip/limit into a usable range. defaultLimit is
// applied when the caller sent nothing; maxLimit caps oversized requests.
func NormalizePagination(skip, limit, defaultLimit, maxLimit int) PaginationParams {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return PaginationParams{Skip: skip, Limit: limit}
}

// PageMeta holds the pagination echo returned alongside list payloads.
type PageMeta struct {
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

// NewPageMeta builds the response metadata for a paginated listing.
func NewPageMeta(total int64, p PaginationParams) PageMeta {
	return PageMeta{Total: total, Skip: p.Skip, Limit: p.Limit}
}
