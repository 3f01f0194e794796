package get_lane_capacity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getLaneCapacity "github.com/m04kA/SMC-LaneBooking/internal/usecase/get_lane_capacity"
	"github.com/m04kA/SMC-LaneBooking/pkg/logger"
)

type stubUseCase struct {
	resp *getLaneCapacity.Response
	err  error
}

func (s stubUseCase) Execute(context.Context, *getLaneCapacity.Request) (*getLaneCapacity.Response, error) {
	return s.resp, s.err
}

func serve(uc GetLaneCapacityUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/lanes/{laneId}/capacity", NewHandler(uc, logger.Discard()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	laneID := uuid.New()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	uc := stubUseCase{resp: &getLaneCapacity.Response{
		LaneID:   laneID,
		LaneName: "Express",
		Intervals: []getLaneCapacity.IntervalLoad{
			{IntervalID: uuid.New(), Date: start, StartsAt: start, EndsAt: start.Add(30 * time.Minute), CapacitySeconds: 1800, TotalBookedSeconds: 600},
		},
	}}

	rec := serve(uc, "/api/v1/lanes/"+laneID.String()+"/capacity?from=2026-03-02T09:00:00Z&to=2026-03-02T10:00:00Z")

	require.Equal(t, http.StatusOK, rec.Code)

	var body LaneCapacityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Express", body.LaneName)
	require.Len(t, body.Intervals, 1)
	assert.Equal(t, "2026-03-02", body.Intervals[0].Date)
	assert.Equal(t, 600, body.Intervals[0].TotalBookedSeconds)
}

func TestHandle_Errors(t *testing.T) {
	laneID := uuid.NewString()
	window := "?from=2026-03-02T09:00:00Z&to=2026-03-02T10:00:00Z"

	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "missing range", target: "/api/v1/lanes/" + laneID + "/capacity", status: http.StatusBadRequest},
		{name: "invalid lane id", target: "/api/v1/lanes/bay/capacity" + window, status: http.StatusBadRequest},
		{name: "invalid timestamp", target: "/api/v1/lanes/" + laneID + "/capacity?from=today&to=tomorrow", status: http.StatusBadRequest},
		{name: "inverted range", target: "/api/v1/lanes/" + laneID + "/capacity" + window, err: getLaneCapacity.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "range too long", target: "/api/v1/lanes/" + laneID + "/capacity" + window, err: getLaneCapacity.ErrRangeTooLong, status: http.StatusBadRequest},
		{name: "lane not found", target: "/api/v1/lanes/" + laneID + "/capacity" + window, err: getLaneCapacity.ErrLaneNotFound, status: http.StatusNotFound},
		{name: "internal", target: "/api/v1/lanes/" + laneID + "/capacity" + window, err: getLaneCapacity.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(stubUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
