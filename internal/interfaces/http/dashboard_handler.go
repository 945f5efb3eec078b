package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetKPIs devuelve productos activos, productos con stock bajo y operaciones pendientes por tipo.
// GET /api/dashboard/kpis
func (h *DashboardHandler) GetKPIs(c *fiber.Ctx) error {
	out, err := h.uc.GetKPIs(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopSelling productos más entregados en el período.
// GET /api/dashboard/top-selling?year=2026&month=3 | ?from=2026-03-01&to=2026-03-15 [&limit=10]
//
// Sin parámetros usa el mes en curso.
func (h *DashboardHandler) TopSelling(c *fiber.Ctx) error {
	period, err := periodFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.TopSelling(c.UserContext(), period, c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecentPurchases productos de las últimas recepciones validadas.
// GET /api/dashboard/recent-purchases?limit=10
func (h *DashboardHandler) RecentPurchases(c *fiber.Ctx) error {
	out, err := h.uc.RecentPurchases(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func periodFromQuery(c *fiber.Ctx) (*appanalytics.Period, error) {
	if c.Query("year") != "" || c.Query("month") != "" {
		year := c.QueryInt("year", 0)
		month := c.QueryInt("month", 0)
		if year < 1 || month < 1 || month > 12 {
			return nil, domain.InvalidInput("year y month deben ser válidos (month 1-12)")
		}
		p := appanalytics.MonthPeriod(year, time.Month(month))
		return &p, nil
	}
	if c.Query("from") == "" && c.Query("to") == "" {
		return nil, nil
	}
	from, err := inventory.ParseDate(c.Query("from"), false)
	if err != nil {
		return nil, err
	}
	to, err := inventory.ParseDate(c.Query("to"), true)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, domain.InvalidInput("from y to deben enviarse juntos")
	}
	return &appanalytics.Period{From: *from, To: *to}, nil
}
