package http

import (
	"strconv"
	"time"

	"garmin-gateway/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// param selects which query parameters a data route reads
type param int

const (
	paramNone param = iota
	paramDate
	paramRange
	paramLimit
	paramGoal
)

// dataRoute maps a path onto one upstream operation
type dataRoute struct {
	path  string
	op    domain.Operation
	param param
}

var dataRoutes = []dataRoute{
	{"/user/profile", domain.OpUserProfile, paramNone},
	{"/user/summary", domain.OpUserSummary, paramDate},
	{"/stats", domain.OpUserSummary, paramDate},
	{"/stats/body", domain.OpStatsAndBody, paramDate},
	{"/heart-rate", domain.OpHeartRates, paramDate},
	{"/resting-heart-rate", domain.OpRestingHeartRate, paramDate},
	{"/rhr", domain.OpRestingHeartRate, paramDate},
	{"/steps", domain.OpSteps, paramDate},
	{"/daily-steps", domain.OpDailySteps, paramRange},
	{"/hrv/day", domain.OpHRV, paramDate},
	{"/stress", domain.OpStress, paramDate},
	{"/body-battery", domain.OpBodyBattery, paramRange},
	{"/body-composition", domain.OpBodyComposition, paramDate},
	{"/weigh-ins", domain.OpWeighIns, paramRange},
	{"/activities", domain.OpActivities, paramLimit},
	{"/activities/last", domain.OpLastActivity, paramNone},
	{"/activities/date", domain.OpActivitiesForDate, paramDate},
	{"/devices", domain.OpDevices, paramNone},
	{"/training-readiness", domain.OpTrainingReadiness, paramDate},
	{"/spo2", domain.OpSpO2, paramDate},
	{"/respiration", domain.OpRespiration, paramDate},
	{"/hydration", domain.OpHydration, paramDate},
	{"/intensity-minutes", domain.OpIntensityMinutes, paramDate},
	{"/goals", domain.OpGoals, paramGoal},
	{"/badges", domain.OpBadges, paramNone},
	{"/personal-records", domain.OpPersonalRecords, paramNone},
}

func (hdl *HTTPHandler) registerRoutes(app *fiber.App) {
	app.Get("/user/name", hdl.UserName)
	app.Get("/sleep", hdl.Sleep)
	app.Get("/hr", hdl.HeartRate)
	app.Get("/hrv", hdl.HRV)
	for _, route := range dataRoutes {
		app.Get(route.path, hdl.Data(route))
	}
}

// Data func - generic handler for a route from the table
// Data godoc
// @Summary Garmin Connect data passthrough
// @Description Returns the upstream JSON unchanged. Upstream failures are reported as 200 {"error": "Error: ..."}.
// @Tags Health
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param start query string false "YYYY-MM-DD, defaults to seven days ago"
// @Param end query string false "YYYY-MM-DD, defaults to today"
// @Param limit query int false "activity count, defaults to 10"
// @Param type query string false "goal type: active, future or past"
// @Success 200 {object} interface{}
// @Failure 400 {object} ErrorBody
// @Failure 503 {object} ErrorBody
// @Router /steps [get]
// @Router /stress [get]
// @Router /activities [get]
// @Router /goals [get]
func (hdl *HTTPHandler) Data(route dataRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, err := hdl.operationParams(c, route.param)
		if err != nil {
			return err
		}
		return respond(c, hdl.health.Call(c.UserContext(), route.op, params))
	}
}

// UserName func
// UserName godoc
// @Summary Full name of the signed-in account
// @Tags User
// @Produce json
// @Success 200 {object} NameBody
// @Router /user/name [get]
func (hdl *HTTPHandler) UserName(c *fiber.Ctx) error {
	result := hdl.health.Call(c.UserContext(), domain.OpFullName, domain.OperationParams{})
	if !result.OK() {
		return respond(c, result)
	}
	return c.JSON(NameBody{Name: result.Data})
}

// Sleep func
// Sleep godoc
// @Summary Sleep summary for one night
// @Tags Health
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} domain.SleepSummary
// @Failure 400 {object} ErrorBody
// @Router /sleep [get]
func (hdl *HTTPHandler) Sleep(c *fiber.Ctx) error {
	date, err := hdl.date(c)
	if err != nil {
		return err
	}
	return respond(c, hdl.health.Sleep(c.UserContext(), date))
}

// HeartRate func
// HeartRate godoc
// @Summary Heart rate summary with timestamped samples
// @Tags Health
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} domain.HeartRateSummary
// @Failure 400 {object} ErrorBody
// @Router /hr [get]
func (hdl *HTTPHandler) HeartRate(c *fiber.Ctx) error {
	date, err := hdl.date(c)
	if err != nil {
		return err
	}
	return respond(c, hdl.health.HeartRate(c.UserContext(), date))
}

// HRV func
// HRV godoc
// @Summary HRV per day over a date range
// @Description Days that fail upstream or carry no data are left out.
// @Tags Health
// @Produce json
// @Param start query string false "YYYY-MM-DD, defaults to seven days ago"
// @Param end query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} domain.HRVRange
// @Failure 400 {object} ErrorBody
// @Router /hrv [get]
func (hdl *HTTPHandler) HRV(c *fiber.Ctx) error {
	start, end, err := hdl.dateRange(c)
	if err != nil {
		return err
	}
	return c.JSON(hdl.health.HRVRange(c.UserContext(), start, end))
}

// operationParams reads and validates the query parameters a route needs
func (hdl *HTTPHandler) operationParams(c *fiber.Ctx, kind param) (domain.OperationParams, error) {
	var params domain.OperationParams
	switch kind {
	case paramDate:
		date, err := hdl.date(c)
		if err != nil {
			return params, err
		}
		params.Date = date
	case paramRange:
		start, end, err := hdl.dateRange(c)
		if err != nil {
			return params, err
		}
		params.Start, params.End = start.Format(domain.OnlyDate), end.Format(domain.OnlyDate)
	case paramLimit:
		limit, err := hdl.limit(c)
		if err != nil {
			return params, err
		}
		params.Limit = limit
	case paramGoal:
		goal := domain.GoalType(c.Query("type", string(domain.GoalTypeActive)))
		if !goal.Valid() {
			return params, fiber.NewError(fiber.StatusBadRequest, msgInvalidGoal)
		}
		params.Goal = goal
	}
	return params, nil
}

// today is the default for every date parameter, evaluated per request
func (hdl *HTTPHandler) today() time.Time {
	return domain.BeginningOfDay(hdl.now())
}

func (hdl *HTTPHandler) date(c *fiber.Ctx) (string, error) {
	query := DateQuery{Date: c.Query("date")}
	if err := hdl.validator.ValidateStruct(query); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	date, err := domain.ParseDate(query.Date, hdl.today())
	if err != nil {
		return "", err
	}
	return date.Format(domain.OnlyDate), nil
}

func (hdl *HTTPHandler) dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	query := RangeQuery{Start: c.Query("start"), End: c.Query("end")}
	if err := hdl.validator.ValidateStruct(query); err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	today := hdl.today()
	start, err := domain.ParseDate(query.Start, domain.WeekStart(today))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := domain.ParseDate(query.End, today)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (hdl *HTTPHandler) limit(c *fiber.Ctx) (int, error) {
	query := LimitQuery{Limit: defaultLimit}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fiber.NewError(fiber.StatusBadRequest, "limit must be an integer")
		}
		query.Limit = limit
	}
	if err := hdl.validator.ValidateStruct(query); err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return query.Limit, nil
}
