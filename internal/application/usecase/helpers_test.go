package usecase

import (
	"context"
	"testing"

	"github.com/bnema/areashot/internal/logging"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}
