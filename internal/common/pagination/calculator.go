package pagination

// CalculateOffset calculates the database OFFSET value based on page number and limit.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Examples:
//   - Page 1, Limit 6 -> Offset 0
//   - Page 2, Limit 6 -> Offset 6
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total / limit).
// An empty collection has zero pages.
//
// Examples:
//   - Total 0, Limit 6 -> 0 pages
//   - Total 12, Limit 6 -> 2 pages
//   - Total 13, Limit 6 -> 3 pages
//   - Total 12, Limit 1 -> 12 pages
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
