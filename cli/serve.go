package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/castawaylabs/status-board/board"
	"github.com/castawaylabs/status-board/web"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errInvalidConfig = errors.New("invalid configuration")

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the status board web page",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logrus.Infof("System: %s", cfg.SystemName)
	logrus.Infof("Backend: %v", strings.Join(cfg.Backend.Describe(), "\n - "))

	logrus.Infof("Pinging backend")
	pingCtx, pingCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	if err := cfg.Backend.Ping(pingCtx); err != nil {
		logrus.Errorf("Cannot ping backend!\n%v", err)
	} else {
		logrus.Infof("Ping OK")
	}
	pingCancel()

	if !viper.GetBool("verbose") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := board.New(ctx, cfg.Backend, cfg.Renderer)
	b.Load()

	srv := &web.Server{}
	errC := make(chan error, 1)
	go func() {
		errC <- srv.Run(cfg.Listen, web.NewHandler(b, cfg.SystemName).InitRoutes())
	}()
	logrus.Warnf("Listening on %s", cfg.Listen)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errC:
		return err
	case <-signals:
	}

	logrus.Warnf("Abort: Waiting for requests to finish")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
	cancel()
	b.Wait()

	return nil
}
