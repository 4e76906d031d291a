package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"agrodesk/internal/port"
)

const defaultChromeTimeout = 30 * time.Second

// ChromeRenderer renders HTML to PDF using a headless Chrome instance driven
// over the DevTools protocol. One allocator is shared across renders.
type ChromeRenderer struct {
	timeout     time.Duration
	log         zerolog.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromeRenderer creates a renderer with its own Chrome allocator.
func NewChromeRenderer(timeout time.Duration, log zerolog.Logger) *ChromeRenderer {
	if timeout <= 0 {
		timeout = defaultChromeTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromeRenderer{
		timeout:     timeout,
		log:         log,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

var _ port.PDFRenderer = (*ChromeRenderer)(nil)

// RenderHTML prints the document to A4 PDF bytes.
func (r *ChromeRenderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("html content is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, r.timeout)
	defer timeoutCancel()

	start := time.Now()
	var pdfData []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.7).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome render: %w", err)
	}

	r.log.Debug().
		Int("bytes", len(pdfData)).
		Dur("elapsed", time.Since(start)).
		Msg("rendered pdf")
	return pdfData, nil
}

// Close releases the Chrome allocator.
func (r *ChromeRenderer) Close() {
	r.allocCancel()
}
