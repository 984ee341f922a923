package pagination

// CalculateOffset maps a 1-based page onto a SQL OFFSET: page 1 starts
// at row 0, page 2 at row limit, and so on.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages is ceil(total/limit), with an empty result set
// still counting as one page so clients always get a valid last_page.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
