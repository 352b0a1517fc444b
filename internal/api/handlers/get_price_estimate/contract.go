package get_price_estimate

import (
	"context"

	estimatePrice "github.com/m04kA/SMC-AppointmentService/internal/usecase/estimate_price"
)

type EstimatePriceUseCase interface {
	Execute(ctx context.Context, req *estimatePrice.Request) (*estimatePrice.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
