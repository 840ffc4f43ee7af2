package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"grimm.is/langportal/internal/controller"
	"grimm.is/langportal/internal/tui"
)

// RunConsole starts the interactive console: console [route]
// route is where the console opens, e.g. /words/3. metricsAddr, when set,
// serves prometheus metrics while the console runs.
func RunConsole(ctx context.Context, a *App, args []string, metricsAddr string) error {
	start := controller.Route{Path: controller.PathDashboard, Page: 1}
	if len(args) > 0 {
		r, err := controller.ParseRoute(args[0])
		if err != nil {
			return err
		}
		start = r
	}

	if metricsAddr != "" {
		r := mux.NewRouter()
		r.Handle("/metrics", a.Metrics.Handler()).Methods(http.MethodGet)
		srv := &http.Server{Addr: metricsAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.Logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		a.Logger.Info("serving metrics", "addr", metricsAddr)
	}

	a.Logger.Info("starting console", "mode", string(a.API.Mode()), "route", start.String())
	return tui.Run(ctx, tui.Options{
		API:           a.API,
		Mode:          a.API.Mode(),
		Center:        a.Center,
		LaunchBaseURL: a.Config.UI.LaunchBaseURL,
		ToastTTL:      time.Duration(a.Config.UI.ToastSeconds) * time.Second,
		Metrics:       a.Metrics,
		Logger:        a.Logger,
		Start:         start,
	})
}
