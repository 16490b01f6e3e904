package handler

import (
	"net/http"
	"strconv"
	"time"

	"storefront/internal/i18n"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminAuditHandler struct {
	uc *usecase.AdminAuditUsecase
}

func NewAdminAuditHandler(uc *usecase.AdminAuditUsecase) *AdminAuditHandler {
	return &AdminAuditHandler{uc: uc}
}

func (h *AdminAuditHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/audit-logs", h.list)
}

// GET /admin/audit-logs?actor=&action=&resource_type=&resource_id=&from=&to=&limit=&offset=
// from / to は RFC3339
func (h *AdminAuditHandler) list(c echo.Context) error {
	in := usecase.AuditListInput{
		ActorUserID:  c.QueryParam("actor"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   c.QueryParam("resource_id"),
	}

	var err error
	if in.Limit, err = intQuery(c, "limit"); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}
	if in.Offset, err = intQuery(c, "offset"); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}
	if in.From, err = timeQuery(c, "from"); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}
	if in.To, err = timeQuery(c, "to"); err != nil {
		return badRequest(c, i18n.MsgInvalidBody)
	}

	logs, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

// 未指定は0
func intQuery(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func timeQuery(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
