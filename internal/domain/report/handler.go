package report

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/diagnoclinic/report-portal/internal/platform/middleware"
	"github.com/diagnoclinic/report-portal/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes splits the surface: patient lookup is unauthenticated,
// everything that touches the report inventory requires a staff token.
func (h *Handler) RegisterRoutes(public, staff *echo.Group) {
	public.POST("/report/find", h.Find)
	staff.POST("/upload-report", h.Upload)
	staff.GET("/report/list", h.List)
	staff.PUT("/report/:id", h.Update)
	staff.DELETE("/report/:id", h.Delete)
}

func openPDF(fh *multipart.FileHeader) (multipart.File, error) {
	ct := fh.Header.Get("Content-Type")
	if !strings.EqualFold(path.Ext(fh.Filename), ".pdf") && ct != pdfContentType {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Only PDF files allowed")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	return f, nil
}

func (h *Handler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		// An oversized body trips the streaming limiter inside the
		// multipart parse; report that as 413, not a missing file.
		if middleware.IsBodyLimitExceeded(err) {
			return middleware.ErrBodyTooLarge
		}
		return echo.NewHTTPError(http.StatusBadRequest, "report file is required")
	}
	f, err := openPDF(fh)
	if err != nil {
		return err
	}
	defer f.Close()

	rep, err := h.svc.Create(c.Request().Context(), CreateInput{
		Name:   c.FormValue("name"),
		Email:  c.FormValue("email"),
		Mobile: c.FormValue("mobile"),
		DOB:    c.FormValue("dob"),
		File:   f,
	})
	if err != nil {
		return mapError(err, "upload failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Report uploaded successfully.",
		"report":  rep,
	})
}

type findRequest struct {
	Mobile string `json:"mobile" form:"mobile"`
	DOB    string `json:"dob" form:"dob"`
}

func (h *Handler) Find(c echo.Context) error {
	var req findRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	url, err := h.svc.Find(c.Request().Context(), req.Mobile, req.DOB)
	if err != nil {
		return mapError(err, "lookup failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"downloadUrl": url,
	})
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	reports, total, err := h.svc.List(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return mapError(err, "list failed")
	}
	if reports == nil {
		reports = []*Report{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"total":   total,
		"reports": reports,
	})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}

	var in UpdateInput
	params, err := c.FormParams()
	if err != nil {
		if middleware.IsBodyLimitExceeded(err) {
			return middleware.ErrBodyTooLarge
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	// Only fields present in the form are edited; an absent field is kept,
	// a present-but-empty one clears the optional fields.
	for key, field := range map[string]**string{
		"name":   &in.Name,
		"email":  &in.Email,
		"mobile": &in.Mobile,
		"dob":    &in.DOB,
	} {
		if vals, ok := params[key]; ok && len(vals) > 0 {
			v := vals[0]
			*field = &v
		}
	}

	if fh, ferr := c.FormFile("file"); ferr == nil {
		f, err := openPDF(fh)
		if err != nil {
			return err
		}
		defer f.Close()
		in.File = f
	}

	rep, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return mapError(err, "update failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Report updated successfully.",
		"report":  rep,
	})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return mapError(err, "delete failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Report deleted successfully.",
	})
}

func mapError(err error, fallback string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "No report found")
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrValidation.Error()+": "))
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, fallback)
	}
}
