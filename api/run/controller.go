package runapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RunController serves the run routes.
type RunController struct {
	runs   i.RunManager
	logger i.Logger
}

// NewRunController initializes a RunController.
func NewRunController(runs i.RunManager, logger i.Logger) (*RunController, error) {
	if runs == nil || logger == nil {
		return nil, errors.New("run controller needs a run manager and a logger")
	}
	return &RunController{
		runs:   runs,
		logger: logger,
	}, nil
}

// RegisterPublic registers public routes.
func (rc *RunController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (rc *RunController) RegisterProtected(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.POST("", rc.create)
		runs.GET("", rc.list)
		runs.GET("/:ID", rc.status)
		runs.DELETE("/:ID", rc.finish)
		runs.POST("/:ID/reports", rc.report)
		runs.POST("/:ID/expand", rc.expand)
		runs.POST("/:ID/next", rc.next)
		runs.POST("/:ID/step", rc.step)
		runs.GET("/:ID/cells/:X/:Y", rc.cell)
		runs.GET("/:ID/dump", rc.dump)
		runs.GET("/:ID/stream", rc.stream)
	}
}

func (rc *RunController) create(ctx *gin.Context) {
	var request CreateRunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := rc.runs.Create(ctx.Request.Context(), request.Goal.point())
	if err != nil {
		rc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newRunResponse(run))
}

func (rc *RunController) list(ctx *gin.Context) {
	runs, err := rc.runs.List(ctx.Request.Context())
	if err != nil {
		rc.fail(ctx, err)
		return
	}

	response := make([]*RunResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, newRunResponse(run))
	}
	ctx.JSON(http.StatusOK, response)
}

func (rc *RunController) status(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	run, err := rc.runs.Status(ctx.Request.Context(), id)
	if err != nil {
		rc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newRunResponse(run))
}

func (rc *RunController) finish(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	run, err := rc.runs.Finish(ctx.Request.Context(), id)
	if err != nil {
		rc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newRunResponse(run))
}

func (rc *RunController) report(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}
	var request ReportRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := rc.runs.Report(ctx.Request.Context(), id, request.report())
	if err != nil {
		rc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newRunResponse(run))
}

func (rc *RunController) expand(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}
	var request Point
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := rc.runs.Expand(ctx.Request.Context(), id, request.point())
	if err != nil {
		rc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &FrontierResponse{Frontier: run.Frontier, Run: newRunResponse(run)})
}

func (rc *RunController) next(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	next, ok, err := rc.runs.Next(ctx.Request.Context(), id)
	if err != nil {
		rc.fail(ctx, err)
		return
	}
	if !ok {
		ctx.JSON(http.StatusOK, &MoveResponse{Done: true})
		return
	}
	ctx.JSON(http.StatusOK, &MoveResponse{Next: newPoint(next)})
}

// step takes an optional report of the robot position.
func (rc *RunController) step(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	var report *explorer.SensorReport
	var request ReportRequest
	switch err := ctx.ShouldBindJSON(&request); {
	case errors.Is(err, io.EOF):
		// empty body, the position was reported before
	case err != nil:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		r := request.report()
		report = &r
	}

	res, err := rc.runs.Step(ctx.Request.Context(), id, report)
	if err != nil {
		rc.fail(ctx, err)
		return
	}
	response := &MoveResponse{Done: res.Done, Run: newRunResponse(res.Run)}
	if !res.Done {
		response.Next = newPoint(res.Next)
	}
	ctx.JSON(http.StatusOK, response)
}

func (rc *RunController) cell(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}
	x, errX := strconv.Atoi(ctx.Param("X"))
	y, errY := strconv.Atoi(ctx.Param("Y"))
	if errX != nil || errY != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "cell coordinates must be integers"})
		return
	}
	p := explorer.Point{X: x, Y: y}

	c, err := rc.runs.Cell(ctx.Request.Context(), id, p)
	if err != nil {
		rc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newCellResponse(p, c))
}

func (rc *RunController) dump(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	d, err := rc.runs.Dump(ctx.Request.Context(), id)
	if err != nil {
		rc.fail(ctx, err)
		return
	}
	ctx.String(http.StatusOK, d)
}

func runID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return uuid.Nil, false
	}
	return id, true
}

// fail answers with the status matching err.
func (rc *RunController) fail(ctx *gin.Context, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		rc.logger.Error(fmt.Sprintf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err))
		ctx.JSON(code, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(code, gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, dmn.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, dmn.ErrRunLocked):
		return http.StatusLocked
	case errors.Is(err, dmn.ErrReportRequired),
		errors.Is(err, explorer.ErrOutOfBounds),
		errors.Is(err, explorer.ErrInvalidWall):
		return http.StatusBadRequest
	case errors.Is(err, explorer.ErrAlreadyUpdated),
		errors.Is(err, explorer.ErrCostUnavailable):
		return http.StatusConflict
	case errors.Is(err, explorer.ErrFrontierFull):
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}
