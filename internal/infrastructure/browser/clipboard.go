package browser

import (
	"context"
	"fmt"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
)

var _ port.ImageClipboard = (*PageClipboard)(nil)

// PageClipboard writes through the page's async clipboard API, the first
// link of the clipboard hand-off chain.
type PageClipboard struct {
	tab *Tab
}

// NewPageClipboard creates a clipboard bound to tab.
func NewPageClipboard(tab *Tab) *PageClipboard {
	return &PageClipboard{tab: tab}
}

// Name implements port.ImageClipboard.
func (c *PageClipboard) Name() string {
	return "page"
}

// WriteImage implements port.ImageClipboard.
func (c *PageClipboard) WriteImage(ctx context.Context, png []byte) error {
	var ok bool
	if err := c.tab.eval(ctx, call("copyImage", pngDataURL(png)), &ok); err != nil {
		return fmt.Errorf("%w: page clipboard: %w", entity.ErrClipboardWriteFailed, err)
	}
	return nil
}
