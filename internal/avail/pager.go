package avail

// Pager manages the current page over the resource columns. Pages are
// 1-indexed. Manual navigation clamps at the bounds and never wraps;
// the auto-advance path (Advance) wraps from the last page back to the
// first, which is a deliberately different rule.
type Pager struct {
	pageSize int
	count    int
	page     int
}

// NewPager creates a pager with the given page size. Sizes below 1 are
// treated as 1.
func NewPager(pageSize int) *Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Pager{pageSize: pageSize, page: 1}
}

// SetCount records the current resource count and clamps the page if
// the list shrank below it.
func (p *Pager) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	p.count = n
	p.Clamp()
}

// PageSize returns the fixed page size.
func (p *Pager) PageSize() int {
	return p.pageSize
}

// Page returns the current 1-indexed page.
func (p *Pager) Page() int {
	return p.page
}

// TotalPages returns ceil(count / pageSize). It is zero when there are
// no resources.
func (p *Pager) TotalPages() int {
	return (p.count + p.pageSize - 1) / p.pageSize
}

// Next moves one page forward. At the last page it is a no-op.
func (p *Pager) Next() {
	if p.page < p.TotalPages() {
		p.page++
	}
}

// Previous moves one page back. At the first page it is a no-op.
func (p *Pager) Previous() {
	if p.page > 1 {
		p.page--
	}
}

// Advance moves one page forward, wrapping from the last page to the
// first. Used by the auto-advance timer only.
func (p *Pager) Advance() {
	if p.page >= p.TotalPages() {
		p.page = 1
		return
	}
	p.page++
}

// Jump selects a page directly, clamped into [1, TotalPages].
func (p *Pager) Jump(page int) {
	total := p.TotalPages()
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	p.page = page
}

// Clamp pulls the page back into range after the resource list shrank.
// The page never goes below 1 even when the list is empty.
func (p *Pager) Clamp() {
	if total := p.TotalPages(); p.page > total {
		if total < 1 {
			total = 1
		}
		p.page = total
	}
	if p.page < 1 {
		p.page = 1
	}
}

// Bounds returns the half-open index range [lo, hi) of the current
// page within a list of count resources.
func (p *Pager) Bounds() (lo, hi int) {
	lo = (p.page - 1) * p.pageSize
	if lo > p.count {
		lo = p.count
	}
	hi = lo + p.pageSize
	if hi > p.count {
		hi = p.count
	}
	return lo, hi
}
