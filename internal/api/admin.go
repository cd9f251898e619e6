package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"aplus-academy/internal/admin"
	"aplus-academy/internal/models"
)

func (s *Server) registerDashboard(g *echo.Group) {
	g.GET("/dashboard", s.dashboard)
}

// dashboard answers 503 when no input could be read, with the all-zero
// snapshot as the body so the page still renders.
func (s *Server) dashboard(c echo.Context) error {
	snapshot, err := s.svc.Snapshot(c.Request().Context())
	if errors.Is(err, admin.ErrStoreUnavailable) {
		return c.JSON(http.StatusServiceUnavailable, snapshot)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

// Teachers

type teacherRequest struct {
	FullName      string  `json:"fullName" validate:"required"`
	Subject       string  `json:"subject"`
	Experience    int     `json:"experience" validate:"min=0"`
	Phone         string  `json:"phone"`
	MonthlySalary float64 `json:"monthlySalary" validate:"min=0"`
	Status        string  `json:"status" validate:"omitempty,oneof=active inactive"`
	PhotoURL      string  `json:"photoUrl"`
	Bio           string  `json:"bio"`
}

func (r teacherRequest) profile(id string) models.TeacherProfile {
	return models.TeacherProfile{
		ID:            id,
		FullName:      r.FullName,
		Subject:       r.Subject,
		Experience:    r.Experience,
		Phone:         r.Phone,
		MonthlySalary: r.MonthlySalary,
		Status:        models.TeacherStatus(r.Status),
		PhotoURL:      r.PhotoURL,
		Bio:           r.Bio,
	}
}

func (s *Server) registerTeachers(g *echo.Group) {
	g.GET("", s.listTeachers)
	g.POST("", s.createTeacher)
	g.PUT("/:id", s.updateTeacher)
	g.DELETE("/:id", s.deleteTeacher)
}

func (s *Server) listTeachers(c echo.Context) error {
	teachers, err := s.svc.ListTeachers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teachers)
}

func (s *Server) createTeacher(c echo.Context) error {
	var req teacherRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	teacher, err := s.svc.CreateTeacher(c.Request().Context(), req.profile(""))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, teacher)
}

func (s *Server) updateTeacher(c echo.Context) error {
	var req teacherRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	teacher, err := s.svc.UpdateTeacher(c.Request().Context(), req.profile(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teacher)
}

func (s *Server) deleteTeacher(c echo.Context) error {
	if err := s.svc.DeleteTeacher(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Groups

type groupRequest struct {
	Name           string  `json:"name" validate:"required"`
	TeacherID      string  `json:"teacherId"`
	Schedule       string  `json:"schedule"`
	Room           string  `json:"room"`
	MaxStudents    int     `json:"maxStudents" validate:"min=0"`
	Status         string  `json:"status" validate:"omitempty,oneof=active closed"`
	AttendanceRate float64 `json:"attendanceRate" validate:"min=0,max=100"`
}

func (r groupRequest) profile(id string) models.GroupProfile {
	return models.GroupProfile{
		ID:             id,
		Name:           r.Name,
		TeacherID:      r.TeacherID,
		Schedule:       r.Schedule,
		Room:           r.Room,
		MaxStudents:    r.MaxStudents,
		Status:         models.GroupStatus(r.Status),
		AttendanceRate: r.AttendanceRate,
	}
}

func (s *Server) registerGroups(g *echo.Group) {
	g.GET("", s.listGroups)
	g.POST("", s.createGroup)
	g.POST("/sync", s.syncGroups)
	g.GET("/:id", s.getGroup)
	g.PUT("/:id", s.updateGroup)
	g.DELETE("/:id", s.deleteGroup)
	g.GET("/:id/students", s.listGroupStudents)
	g.POST("/:id/sync", s.syncGroups)
}

func (s *Server) listGroups(c echo.Context) error {
	groups, err := s.svc.ListGroups(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

func (s *Server) getGroup(c echo.Context) error {
	group, err := s.svc.GetGroup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

func (s *Server) createGroup(c echo.Context) error {
	var req groupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	group, err := s.svc.CreateGroup(c.Request().Context(), req.profile(""))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, group)
}

func (s *Server) updateGroup(c echo.Context) error {
	var req groupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	group, err := s.svc.UpdateGroup(c.Request().Context(), req.profile(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

func (s *Server) deleteGroup(c echo.Context) error {
	if err := s.svc.DeleteGroup(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listGroupStudents(c echo.Context) error {
	students, err := s.svc.ListGroupStudents(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, students)
}

// syncGroups recomputes one group's metrics, or all of them without an id.
func (s *Server) syncGroups(c echo.Context) error {
	if err := s.svc.SyncGroupMetrics(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Students

type studentRequest struct {
	FullName       string  `json:"fullName" validate:"required"`
	GroupID        string  `json:"groupId"`
	ParentName     string  `json:"parentName"`
	ParentContact  string  `json:"parentContact"`
	MonthlyPayment float64 `json:"monthlyPayment" validate:"min=0"`
	PaymentStatus  string  `json:"paymentStatus" validate:"omitempty,oneof=paid unpaid"`
	PhotoURL       string  `json:"photoUrl"`
	Notes          string  `json:"notes"`
}

func (r studentRequest) profile(id string) models.StudentProfile {
	return models.StudentProfile{
		ID:             id,
		FullName:       r.FullName,
		GroupID:        r.GroupID,
		ParentName:     r.ParentName,
		ParentContact:  r.ParentContact,
		MonthlyPayment: r.MonthlyPayment,
		PaymentStatus:  models.PaymentStatus(r.PaymentStatus),
		PhotoURL:       r.PhotoURL,
		Notes:          r.Notes,
	}
}

type paymentRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Date   string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status string  `json:"status" validate:"omitempty,oneof=paid unpaid"`
	Method string  `json:"method" validate:"omitempty,oneof=cash card transfer"`
	Note   string  `json:"note"`
}

func (s *Server) registerStudents(g *echo.Group) {
	g.GET("", s.listStudents)
	g.POST("", s.createStudent)
	g.PUT("/:id", s.updateStudent)
	g.DELETE("/:id", s.deleteStudent)
	g.POST("/:id/payments", s.recordPayment)
}

func (s *Server) listStudents(c echo.Context) error {
	students, err := s.svc.ListStudents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, students)
}

func (s *Server) createStudent(c echo.Context) error {
	var req studentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	student, err := s.svc.CreateStudent(c.Request().Context(), req.profile(""))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, student)
}

func (s *Server) updateStudent(c echo.Context) error {
	var req studentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	student, err := s.svc.UpdateStudent(c.Request().Context(), req.profile(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, student)
}

func (s *Server) deleteStudent(c echo.Context) error {
	if err := s.svc.DeleteStudent(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) recordPayment(c echo.Context) error {
	var req paymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	entry, err := s.svc.RecordPayment(c.Request().Context(), c.Param("id"), models.PaymentHistoryEntry{
		Amount: req.Amount,
		Date:   req.Date,
		Status: models.PaymentStatus(req.Status),
		Method: models.PaymentMethod(req.Method),
		Note:   req.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}
