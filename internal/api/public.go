package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"aplus-academy/internal/admin"
)

const defaultLocale = "uz"

type registerRequest struct {
	FullName  string `json:"fullName" validate:"required"`
	Age       int    `json:"age" validate:"required,min=10,max=100"`
	Phone     string `json:"phone" validate:"required"`
	CourseID  string `json:"courseId"`
	Interests string `json:"interests"`
	Locale    string `json:"locale" validate:"omitempty,oneof=uz ru en"`
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

func (s *Server) registerPublic(g *echo.Group) {
	g.GET("/teachers", s.publicTeachers)
	g.GET("/content/:section", s.contentBlocks)
	g.GET("/:table", s.listPublished)
	g.POST("/register", s.register)
	g.POST("/contact", s.contact)
}

func (s *Server) publicTeachers(c echo.Context) error {
	teachers, err := s.svc.PublicTeachers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teachers)
}

func (s *Server) listPublished(c echo.Context) error {
	recs, err := s.svc.ListPublished(c.Request().Context(), c.Param("table"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

func (s *Server) contentBlocks(c echo.Context) error {
	locale := c.QueryParam("locale")
	if locale == "" {
		locale = defaultLocale
	}
	blocks, err := s.svc.ContentBlocks(c.Request().Context(), c.Param("section"), locale)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, blocks)
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	app, err := s.svc.Register(c.Request().Context(), admin.RegistrationInput{
		FullName:  req.FullName,
		Age:       req.Age,
		Phone:     req.Phone,
		CourseID:  req.CourseID,
		Interests: req.Interests,
		Locale:    req.Locale,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": app.ID, "status": app.Status})
}

func (s *Server) contact(c echo.Context) error {
	var req contactRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := s.svc.Contact(c.Request().Context(), admin.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": msg.ID})
}
