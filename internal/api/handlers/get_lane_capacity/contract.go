package get_lane_capacity

import (
	"context"

	getLaneCapacity "github.com/m04kA/SMC-LaneBooking/internal/usecase/get_lane_capacity"
)

type GetLaneCapacityUseCase interface {
	Execute(ctx context.Context, req *getLaneCapacity.Request) (*getLaneCapacity.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
