package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	GetTimesheet(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetMyTimesheet(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService attendance.TimesheetService
}

func NewTimesheetHandler(timesheetService attendance.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

func timesheetRequestFromQuery(r *http.Request) attendance.TimesheetRequest {
	query := r.URL.Query()
	return attendance.TimesheetRequest{
		EmployeeID: query.Get("employee_id"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
	}
}

// GetTimesheet implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	req := timesheetRequestFromQuery(r)

	result, err := h.timesheetService.GetTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	req := timesheetRequestFromQuery(r)

	result, err := h.timesheetService.GetSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyTimesheet implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetMyTimesheet(w http.ResponseWriter, r *http.Request) {
	req := attendance.MyTimesheetRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.timesheetService.GetMyTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
