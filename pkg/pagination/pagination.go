package pagination

const (
	// DefaultPageSize is the page size used when a request does not provide one.
	DefaultPageSize = 50
	// MaxPageSize caps how many rows a single page can request.
	MaxPageSize = 200
)

var pageSizeChoices = []int{25, 50, 100, 200}

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// PageSizeChoices returns the page sizes offered to the presentation layer.
func PageSizeChoices() []int {
	out := make([]int, len(pageSizeChoices))
	copy(out, pageSizeChoices)
	return out
}

// TotalPages returns ceil(count/size) with a floor of one page.
func TotalPages(count, size int) int {
	if size <= 0 || count <= 0 {
		return 1
	}
	return (count-1)/size + 1
}

// Bounds returns the half-open [start, end) slice window for the page,
// clipped to count. A page past the end yields start == end == count.
// The page is compared against the last page index before multiplying, so
// arbitrarily large pages cannot overflow.
func Bounds(page, size, count int) (int, int) {
	if page < 1 || size <= 0 || count <= 0 {
		return 0, 0
	}
	if page-1 > (count-1)/size {
		return count, count
	}
	start := (page - 1) * size
	if size >= count-start {
		return start, count
	}
	return start, start + size
}
