package product

// PageSize is the fixed catalog page size.
const PageSize = 12

type Page struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
}

// Paginate slices one page out of items. page < 1 is treated as 1; a page past
// the end returns no items but keeps the totals.
func Paginate(items []Product, page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = PageSize
	}

	total := len(items)
	totalPages := (total + size - 1) / size

	result := Page{
		Items:      []Product{},
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}

	start := (page - 1) * size
	if start >= total {
		return result
	}
	end := start + size
	if end > total {
		end = total
	}
	result.Items = append(result.Items, items[start:end]...)
	return result
}
