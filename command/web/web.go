package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"fleet-stats/command/dataset"
	cconfig "fleet-stats/connectors/config"
	ccsv "fleet-stats/connectors/csv"
	"fleet-stats/domain/asset"
	"fleet-stats/domain/config"
	"fleet-stats/domain/report"

	"github.com/labstack/echo/v4"
	"github.com/spf13/pflag"
)

// Run starts a small Echo web server exposing the reconciled asset data as
// JSON APIs and an optional SPA dashboard.
//
// Usage:
//
//	fleet-stats web [--addr :8080] [--config config.yml] [--ui ./ui/dist]
//
// Endpoints:
//
//	GET  /api/options      -> distinct values for every multi-select filter
//	GET  /api/metrics      -> selection + KPI snapshot
//	GET  /api/assets       -> filtered rows in the export projection
//	GET  /api/assets.csv   -> the same rows as a CSV download
//	POST /api/reload       -> re-read the three exports
//
// Filter query parameters: hardware_status, ci_type, asset_criteria, company,
// support_group (repeated or comma-separated), recent_logon=true|false,
// recent_days=N and defaults=false to start from an empty selection.
func Run(args []string) error {
	fs := pflag.NewFlagSet("web", pflag.ContinueOnError)
	addr := fs.String("addr", ":8080", "http listen address (host:port)")
	cfgPath := fs.String("config", "", "YAML config file (default $CONFIG_PATH or ./config.yml)")
	uiDir := fs.String("ui", "./ui/dist", "directory containing built UI (Vite dist)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, explicit := cconfig.Resolve(*cfgPath)
	cfg, err := cconfig.Load(path, explicit)
	if err != nil {
		return err
	}
	srv, err := newServer(cfg, time.Now)
	if err != nil {
		return err
	}
	e := srv.routes(*uiDir)
	slog.Info("web.start", "addr", *addr)
	return e.Start(*addr)
}

type server struct {
	cfg  *config.Config
	now  func() time.Time
	data atomic.Pointer[dataset.Dataset]
}

func newServer(cfg *config.Config, now func() time.Time) (*server, error) {
	s := &server{cfg: cfg, now: now}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload rebuilds the dataset and swaps it in; requests in flight keep the old one.
func (s *server) reload() error {
	ds, err := dataset.Load(s.cfg)
	if err != nil {
		return err
	}
	s.data.Store(ds)
	return nil
}

func (s *server) routes(uiDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.GET("/api/options", func(c echo.Context) error {
		return c.JSON(http.StatusOK, asset.Options(s.data.Load().Records))
	})
	e.GET("/api/metrics", func(c echo.Context) error {
		rep, err := s.build(c)
		if err != nil {
			return badRequest(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"generated_at": rep.GeneratedAt,
			"selection":    rep.Selection,
			"metrics":      rep.Metrics,
		})
	})
	e.GET("/api/assets", func(c echo.Context) error {
		rep, err := s.build(c)
		if err != nil {
			return badRequest(c, err)
		}
		rows := make([]map[string]string, 0, len(rep.Rows))
		for _, r := range rep.Rows {
			obj := make(map[string]string, len(rep.Columns))
			for _, col := range rep.Columns {
				obj[col] = r.Field(col)
			}
			rows = append(rows, obj)
		}
		return c.JSON(http.StatusOK, rows)
	})
	e.GET("/api/assets.csv", func(c echo.Context) error {
		rep, err := s.build(c)
		if err != nil {
			return badRequest(c, err)
		}
		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", s.cfg.Export.FileName))
		res.WriteHeader(http.StatusOK)
		return ccsv.WriteAssets(res, rep.Columns, rep.Rows)
	})
	e.POST("/api/reload", func(c echo.Context) error {
		if err := s.reload(); err != nil {
			slog.Error("web.reload.error", "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]any{
				"error":   err.Error(),
				"message": "failed to reload source files",
			})
		}
		return c.JSON(http.StatusOK, map[string]any{"records": len(s.data.Load().Records)})
	})

	// Static UI (optional)
	indexPath := filepath.Join(uiDir, "index.html")
	if fi, err := os.Stat(indexPath); err == nil && !fi.IsDir() {
		e.Static("/", uiDir)
		e.GET("/", func(c echo.Context) error { return c.File(indexPath) })

		// Fallback to index.html for non-API 404s (SPA routing)
		e.HTTPErrorHandler = func(err error, c echo.Context) {
			if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
				if !strings.HasPrefix(c.Request().URL.Path, "/api") {
					_ = c.File(indexPath)
					return
				}
			}
			e.DefaultHTTPErrorHandler(err, c)
		}
	}
	return e
}

func (s *server) build(c echo.Context) (report.Report, error) {
	ds := s.data.Load()
	sel, err := selection(c, ds)
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(ds.Records, sel, ds.Policy, ds.Columns, s.now()), nil
}

// selection starts from the configured defaults (unless defaults=false)
// and overrides every filter present in the query string.
func selection(c echo.Context, ds *dataset.Dataset) (asset.Selection, error) {
	q := c.QueryParams()
	sel := asset.DefaultSelection(ds.Records, ds.Filters)
	if v := q.Get("defaults"); v != "" {
		useDefaults, err := strconv.ParseBool(v)
		if err != nil {
			return sel, fmt.Errorf("defaults: %w", err)
		}
		if !useDefaults {
			sel = asset.Selection{RecentLogon: sel.RecentLogon, RecentLogonDays: ds.Filters.RecentLogonDays}
		}
	}
	multi := func(name string, dst *[]string) {
		vals, ok := q[name]
		if !ok {
			return
		}
		var out []string
		for _, v := range vals {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
		*dst = out
	}
	multi("hardware_status", &sel.HardwareStatus)
	multi("ci_type", &sel.CIType)
	multi("asset_criteria", &sel.AssetCriteria)
	multi("company", &sel.Company)
	multi("support_group", &sel.SupportGroup)

	if v := q.Get("recent_logon"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return sel, fmt.Errorf("recent_logon: %w", err)
		}
		sel.RecentLogon = b
	}
	if v := q.Get("recent_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return sel, fmt.Errorf("recent_days: want a positive integer, got %q", v)
		}
		sel.RecentLogonDays = n
	}
	return sel, nil
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error":   err.Error(),
		"message": "invalid filter",
	})
}
