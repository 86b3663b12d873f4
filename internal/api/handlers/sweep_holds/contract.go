package sweep_holds

import (
	"context"

	expireHolds "github.com/pawtrim/booking-service/internal/usecase/expire_holds"
)

type ExpireHoldsUseCase interface {
	Execute(ctx context.Context) (*expireHolds.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
