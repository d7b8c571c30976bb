package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

// SelectRegionUseCase runs the interactive flow: pump overlay input into
// the selection manager and capture every completed selection.
type SelectRegionUseCase struct {
	manager *SelectionManager
	input   port.InputSource
	page    interface {
		URL(ctx context.Context) (string, error)
	}
	capture *CaptureRegionUseCase
}

// NewSelectRegionUseCase creates a new SelectRegionUseCase.
func NewSelectRegionUseCase(manager *SelectionManager, page port.Page, capture *CaptureRegionUseCase) *SelectRegionUseCase {
	return &SelectRegionUseCase{
		manager: manager,
		input:   page,
		page:    page,
		capture: capture,
	}
}

// SelectInput contains the parameters of an interactive run.
type SelectInput struct {
	// Repeat keeps selecting after each capture until Escape.
	Repeat    bool
	Format    entity.OutputFormat
	Directory string
	Clipboard bool
	Progress  ProgressFunc
	// OnCapture observes every finished capture.
	OnCapture func(*CaptureOutput)
}

// SelectOutput lists the captures of one run.
type SelectOutput struct {
	Captures []*entity.CaptureRecord
}

// Run starts a selection and blocks until it is done. Escape ends the run;
// a selection below the minimum size starts over without capturing.
func (uc *SelectRegionUseCase) Run(ctx context.Context, input SelectInput) (*SelectOutput, error) {
	log := logging.FromContext(ctx)
	out := &SelectOutput{}

	if _, err := uc.manager.Start(ctx); err != nil {
		return out, fmt.Errorf("start selection: %w", err)
	}
	defer uc.manager.Cancel(context.WithoutCancel(ctx))

	for {
		ev, err := uc.input.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return out, nil
			}
			return out, fmt.Errorf("read input: %w", err)
		}

		result, err := uc.manager.Dispatch(ctx, ev)
		if errors.Is(err, entity.ErrSessionClosed) {
			continue
		}
		if err != nil {
			log.Warn().Err(err).Stringer("event", ev.Kind).Msg("selection event failed")
			if !result.State.Terminal() {
				continue
			}
			// The session ended with the error; put the overlay back.
			if _, err := uc.manager.Start(ctx); err != nil {
				return out, fmt.Errorf("restart selection: %w", err)
			}
			continue
		}

		switch result.State {
		case entity.SelectionCancelled:
			if ev.IsEscape() {
				log.Info().Msg("selection cancelled")
				return out, nil
			}
			if _, err := uc.manager.Start(ctx); err != nil {
				return out, fmt.Errorf("restart selection: %w", err)
			}

		case entity.SelectionCompleted:
			output, err := uc.captureSelection(ctx, result, input)
			if err != nil && !input.Repeat {
				return out, err
			}
			if output != nil {
				out.Captures = append(out.Captures, output.Record)
				if input.OnCapture != nil {
					input.OnCapture(output)
				}
			}
			if !input.Repeat {
				return out, nil
			}
			if _, err := uc.manager.Start(ctx); err != nil {
				return out, fmt.Errorf("restart selection: %w", err)
			}
		}
	}
}

func (uc *SelectRegionUseCase) captureSelection(ctx context.Context, result entity.SelectionResult, input SelectInput) (*CaptureOutput, error) {
	pageURL, err := uc.page.URL(ctx)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("page URL unavailable")
	}
	return uc.capture.Execute(ctx, CaptureInput{
		PageURL:   pageURL,
		Rect:      result.Rect,
		Format:    input.Format,
		Directory: input.Directory,
		Clipboard: input.Clipboard,
		Progress:  input.Progress,
	})
}
