package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createAdvancedRuleHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/create_advanced_rule"
	createKeywordPatternHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/create_keyword_pattern"
	deleteAdvancedRuleHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/delete_advanced_rule"
	deleteKeywordPatternHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/delete_keyword_pattern"
	getColorRulesHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_color_rules"
	getCompanyCalendarHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_company_calendar"
	importCalendarHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/import_calendar"
	previewColorHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/preview_color"
	reorderPrioritiesHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/reorder_priorities"
	resetColorRulesHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/reset_color_rules"
	updateAdvancedRuleHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/update_advanced_rule"
	updateColorRulesHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/update_color_rules"
	updateRuleTogglesHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/update_rule_toggles"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/config"
	"github.com/m04kA/SMC-CalendarService/internal/infra/preset"
	bookingRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/booking"
	rulesStore "github.com/m04kA/SMC-CalendarService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/ics"
	sellerServiceClient "github.com/m04kA/SMC-CalendarService/internal/integrations/sellerservice"
	rulesService "github.com/m04kA/SMC-CalendarService/internal/service/rules"
	getCompanyCalendarUC "github.com/m04kA/SMC-CalendarService/internal/usecase/get_company_calendar"
	importCalendarUC "github.com/m04kA/SMC-CalendarService/internal/usecase/import_calendar"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CalendarService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозиторий бронирований (с метриками или без)
	var bookingRepository *bookingRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
	}

	// Правила раскраски: стартуем со встроенных настроек по умолчанию
	store := rulesStore.NewStore(nil)
	rulesSvc := rulesService.NewService(store, metricsCollector, log)

	// Пресет из файла (опционально) и его горячая перезагрузка
	if cfg.Rules.PresetFile != "" {
		presetCfg, err := preset.Load(cfg.Rules.PresetFile)
		if err != nil {
			log.Warn("Failed to load rules preset %s, using defaults: %v", cfg.Rules.PresetFile, err)
		} else if version, err := rulesSvc.ApplyPreset(context.Background(), presetCfg); err != nil {
			log.Warn("Failed to apply rules preset %s, using defaults: %v", cfg.Rules.PresetFile, err)
		} else {
			log.Info("Rules preset %s applied (version=%d)", cfg.Rules.PresetFile, version)
		}

		if cfg.Rules.Watch {
			watcher, err := preset.NewWatcher(cfg.Rules.PresetFile, rulesSvc, log)
			if err != nil {
				log.Warn("Failed to watch rules preset %s: %v", cfg.Rules.PresetFile, err)
			} else {
				defer watcher.Close()
				log.Info("Watching rules preset %s for changes", cfg.Rules.PresetFile)
			}
		}
	}

	// Инициализируем клиента и парсер ICS
	icsClient := ics.NewClient(
		time.Duration(cfg.ICS.Timeout)*time.Second,
		cfg.ICS.MaxBodyBytes,
		cfg.ICS.AllowPrivateNetworks,
		log,
	)
	icsParser := ics.NewParser(nil, log)
	log.Info("ICS client initialized (timeout=%ds, max_body=%d bytes)", cfg.ICS.Timeout, cfg.ICS.MaxBodyBytes)

	// Инициализируем клиента SellerService
	sellerClient := sellerServiceClient.NewClient(
		cfg.SellerService.URL,
		time.Duration(cfg.SellerService.Timeout)*time.Second,
		log,
	)
	log.Info("SellerService client initialized (url=%s timeout=%ds)", cfg.SellerService.URL, cfg.SellerService.Timeout)

	// Инициализируем use cases
	getCompanyCalendarUseCase := getCompanyCalendarUC.NewUseCase(
		bookingRepository,
		sellerClient,
		rulesSvc,
		metricsCollector,
		log,
	)
	importCalendarUseCase := importCalendarUC.NewUseCase(
		icsClient,
		icsParser,
		rulesSvc,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getColorRules := getColorRulesHandler.NewHandler(rulesSvc, log)
	updateColorRules := updateColorRulesHandler.NewHandler(rulesSvc, log)
	updateRuleToggles := updateRuleTogglesHandler.NewHandler(rulesSvc, log)
	createAdvancedRule := createAdvancedRuleHandler.NewHandler(rulesSvc, log)
	updateAdvancedRule := updateAdvancedRuleHandler.NewHandler(rulesSvc, log)
	deleteAdvancedRule := deleteAdvancedRuleHandler.NewHandler(rulesSvc, log)
	createKeywordPattern := createKeywordPatternHandler.NewHandler(rulesSvc, log)
	deleteKeywordPattern := deleteKeywordPatternHandler.NewHandler(rulesSvc, log)
	reorderPriorities := reorderPrioritiesHandler.NewHandler(rulesSvc, log)
	resetColorRules := resetColorRulesHandler.NewHandler(rulesSvc, log)
	previewColor := previewColorHandler.NewHandler(rulesSvc, log)
	getCompanyCalendar := getCompanyCalendarHandler.NewHandler(getCompanyCalendarUseCase, log)
	importCalendar := importCalendarHandler.NewHandler(importCalendarUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Текущие правила раскраски
	api.HandleFunc("/color-rules", getColorRules.Handle).Methods(http.MethodGet)

	// Предпросмотр цвета события
	api.HandleFunc("/color-rules/preview", previewColor.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Правила раскраски ---
	protected.HandleFunc("/color-rules", updateColorRules.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/color-rules/toggles", updateRuleToggles.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/color-rules/priority-order", reorderPriorities.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/color-rules/reset", resetColorRules.Handle).Methods(http.MethodPost)

	// --- Расширенные правила ---
	protected.HandleFunc("/color-rules/advanced-rules", createAdvancedRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/color-rules/advanced-rules/{ruleId}", updateAdvancedRule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/color-rules/advanced-rules/{ruleId}", deleteAdvancedRule.Handle).Methods(http.MethodDelete)

	// --- Шаблоны ключевых слов ---
	protected.HandleFunc("/color-rules/patterns", createKeywordPattern.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/color-rules/patterns/{patternId}", deleteKeywordPattern.Handle).Methods(http.MethodDelete)

	// --- Календарь ---
	protected.HandleFunc("/companies/{companyId}/calendar", getCompanyCalendar.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/calendar/import", importCalendar.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
