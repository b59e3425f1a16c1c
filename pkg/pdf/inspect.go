package pdf

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Inspection holds the document facts pdfcpu reports independently of the
// text backends
type Inspection struct {
	PageCount  int
	Dimensions []Dimensions
}

// disableConfigDir stops pdfcpu from creating its user config directory
var disableConfigDir sync.Once

// Inspect reads and validates a PDF with pdfcpu and returns its page sizes.
// Relaxed validation tolerates the common format violations found in real files.
func Inspect(filepath string, relaxed bool) (*Inspection, error) {
	if err := checkFile(filepath); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	if relaxed {
		conf.ValidationMode = model.ValidationRelaxed
	} else {
		conf.ValidationMode = model.ValidationStrict
	}

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read PDF context: %w", ErrInvalidPDF, err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPDF, err)
	}

	pageDims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to get page dimensions: %w", err)
	}

	inspection := &Inspection{
		PageCount:  ctx.PageCount,
		Dimensions: make([]Dimensions, len(pageDims)),
	}
	for i, dim := range pageDims {
		inspection.Dimensions[i] = Dimensions{Width: dim.Width, Height: dim.Height}
	}

	return inspection, nil
}

// SelectPages resolves a pdfcpu page selection expression such as "1,3",
// "2-4" or "even" into ascending 1-based page numbers. An empty expression
// selects every page.
func SelectPages(expr string, pageCount int) ([]int, error) {
	var selection []string
	if expr != "" {
		var err error
		selection, err = api.ParsePageSelection(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid page selection %q: %w", expr, err)
		}
	}

	set, err := api.PagesForPageSelection(pageCount, selection, true, false)
	if err != nil {
		return nil, fmt.Errorf("invalid page selection %q: %w", expr, err)
	}

	pages := make([]int, 0, len(set))
	for page, selected := range set {
		if selected && page >= 1 && page <= pageCount {
			pages = append(pages, page)
		}
	}
	sort.Ints(pages)

	return pages, nil
}
