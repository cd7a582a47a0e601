// @title           credkeeper API
// @version         1.0
// @description     User credential service: registration and login.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /
// @schemes http
//
// Package main содержит точку входа серверного приложения credkeeper.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера (CONFIG_PATH или ./configs/server.yaml);
//   - открытие пула соединений с базой данных и применение миграций;
//   - создание репозиториев, сервисов и HTTP-обработчиков;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/credkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/metrics"
	h "github.com/IvanChernomyrdin/credkeeper/internal/server/net/http"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/repository"
	"github.com/IvanChernomyrdin/credkeeper/internal/server/service"
	"github.com/IvanChernomyrdin/credkeeper/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/credkeeper/swagger/docs"
)

const defaultConfigPath = "./configs/server.yaml"

func main() {
	// до чтения конфига пишем в файл по умолчанию и в stdout
	boot := logger.NewHTTPLogger(logger.Options{Stdout: true}).Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		boot.Warnf("no .env file loaded, error: %v", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		boot.Fatal(err)
	}

	httpLogger := logger.NewHTTPLogger(logger.Options{
		File:   cfg.Log.File,
		Level:  cfg.Log.Level,
		Stdout: cfg.Log.Stdout,
	})
	defer func() { _ = httpLogger.Sync() }()
	sugar := httpLogger.Logger.Sugar()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем базу данных
	db, err := config.OpenDB(ctx, cfg.DB, httpLogger)
	if err != nil {
		sugar.Fatal(err)
	}
	// делаем отложенное закрытие бд
	defer db.Close()

	if cfg.Migrations.Enabled {
		if err := config.Migrate(db, cfg.Migrations.Path, httpLogger); err != nil {
			sugar.Fatal(err)
		}
	}

	// создаём репы
	usersRepo := repository.NewUsersRepository(db).WithQueryTimeout(cfg.DB.QueryTimeout)
	repos := service.Repositories{
		Users:  usersRepo,
		Health: usersRepo,
	}
	// создаём сервис
	svc, err := service.NewServices(repos, cfg)
	if err != nil {
		sugar.Fatal(err)
	}

	var m *metrics.Metrics
	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		m = metrics.New()
		metricsPath = cfg.Observability.Metrics.Path
	}

	// создаём хандлер и роутер
	handler := api.NewHandler(svc, httpLogger, m, cfg.Server.MaxBodyBytes)
	router := h.NewRouter(handler, h.Options{
		CORS:        cfg.Security.CORS,
		MetricsPath: metricsPath,
	})

	addr := cfg.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
		ErrorLog:          zap.NewStdLog(httpLogger.Logger),
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: cfg.TLS.MinTLSVersion()}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infow("server started", "addr", addr, "tls", cfg.TLS.Enabled, "env", cfg.Env)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		// ctx уже отменён, для Shutdown нужен свежий
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}
