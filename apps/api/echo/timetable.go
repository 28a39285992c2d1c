package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core/timetable"
)

type (
	dayResponse struct {
		Day     string             `json:"day"`
		Lessons []timetable.Lesson `json:"lessons"`
	}

	slotResponse struct {
		Day    string `json:"day"`
		Period int    `json:"period"`
		timetable.Lesson
	}
)

func newSlotResponse(day, period int, lsn timetable.Lesson) slotResponse {
	return slotResponse{Day: timetable.DayNames[day], Period: period, Lesson: lsn}
}

// newTimetableResponse groups the Grid by day.
func newTimetableResponse(grid timetable.Grid) []dayResponse {
	days := make([]dayResponse, 0, timetable.DaysInWeek)
	for day := 0; day < timetable.DaysInWeek; day++ {
		start := timetable.Index(day, 0)
		days = append(days, dayResponse{
			Day:     timetable.DayNames[day],
			Lessons: grid[start : start+timetable.PeriodsPerDay],
		})
	}
	return days
}

type timetableApi struct {
	server *Server
}

func registerTimetableAPI(g *echo.Group, server *Server) {
	api := timetableApi{server: server}

	tg := g.Group("/timetable")
	tg.GET("", api.retrieve)

	// slot endpoints
	sg := tg.Group("/:day/:period")
	sg.GET("", api.retrieveSlot)
	sg.PUT("", api.updateSlot)
	sg.DELETE("", api.clearSlot)
}

// slotParams parses the `:day` and `:period` path params.
func slotParams(ctx echo.Context) (int, int, error) {
	day, err := timetable.ParseDay(ctx.Param("day"))
	if err != nil {
		return 0, 0, err
	}
	period, err := timetable.ParsePeriod(ctx.Param("period"))
	if err != nil {
		return 0, 0, err
	}
	return day, period, nil
}

// Handlers

func (api *timetableApi) retrieve(ctx echo.Context) error {
	var grid timetable.Grid
	err := api.server.withStore(ctx.Request().Context(), func(store *timetable.Store) error {
		grid = store.Grid()
		return nil
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newTimetableResponse(grid))
}

func (api *timetableApi) retrieveSlot(ctx echo.Context) error {
	day, period, err := slotParams(ctx)
	if err != nil {
		return err
	}

	var lsn timetable.Lesson
	err = api.server.withStore(ctx.Request().Context(), func(store *timetable.Store) (err error) {
		lsn, err = store.Slot(day, period)
		return err
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newSlotResponse(day, period, lsn))
}

func (api *timetableApi) updateSlot(ctx echo.Context) error {
	day, period, err := slotParams(ctx)
	if err != nil {
		return err
	}

	var data timetable.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}

	var lsn timetable.Lesson
	err = api.server.withStore(ctx.Request().Context(), func(store *timetable.Store) (err error) {
		lsn, err = store.SetSlot(ctx.Request().Context(), day, period, data)
		return err
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newSlotResponse(day, period, lsn))
}

func (api *timetableApi) clearSlot(ctx echo.Context) error {
	day, period, err := slotParams(ctx)
	if err != nil {
		return err
	}

	err = api.server.withStore(ctx.Request().Context(), func(store *timetable.Store) error {
		return store.ClearSlot(ctx.Request().Context(), day, period)
	})
	if err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
