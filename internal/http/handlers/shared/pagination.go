package shared

// NormalizePagination clamps paging parameters to sane bounds.
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 9
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
