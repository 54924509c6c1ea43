package search

// Pages returns the page count for total rows, never less than one.
func Pages(total int64, take int) int {
	if take < 1 {
		take = 1
	}
	if total <= 0 {
		return 1
	}
	return int((total + int64(take) - 1) / int64(take))
}

// ClampPage bounds page to [1, pages].
func ClampPage(page, pages int) int {
	if pages < 1 {
		pages = 1
	}
	return clamp(page, 1, pages)
}

// Offset is the row offset of page.
func Offset(page, take int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * take
}

// Window returns the slice bounds of page within n ranked rows.
func Window(n, page, take int) (lo, hi int) {
	lo = min(Offset(page, take), n)
	hi = min(lo+take, n)
	return lo, hi
}
