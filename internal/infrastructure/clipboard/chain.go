package clipboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

// Chain tries each clipboard in order until one accepts the image.
type Chain struct {
	targets []port.ImageClipboard
}

var _ port.ImageClipboard = (*Chain)(nil)

// NewChain builds a chain, skipping nil entries.
func NewChain(targets ...port.ImageClipboard) *Chain {
	c := &Chain{}
	for _, t := range targets {
		if t != nil {
			c.targets = append(c.targets, t)
		}
	}
	return c
}

// Name implements port.ImageClipboard.
func (c *Chain) Name() string {
	names := make([]string, 0, len(c.targets))
	for _, t := range c.targets {
		names = append(names, t.Name())
	}
	return strings.Join(names, ",")
}

// WriteImage implements port.ImageClipboard. The error joins every failure.
func (c *Chain) WriteImage(ctx context.Context, png []byte) error {
	log := logging.FromContext(ctx)

	if len(c.targets) == 0 {
		return fmt.Errorf("%w: no clipboard configured", entity.ErrClipboardWriteFailed)
	}

	var errs []error
	for _, t := range c.targets {
		err := t.WriteImage(ctx, png)
		if err == nil {
			log.Debug().Str("clipboard", t.Name()).Msg("image copied")
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", entity.ErrClipboardWriteFailed, ctx.Err())
		}
		log.Debug().Err(err).Str("clipboard", t.Name()).Msg("clipboard rejected image, trying next")
		errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
	}
	return fmt.Errorf("%w: %w", entity.ErrClipboardWriteFailed, errors.Join(errs...))
}
