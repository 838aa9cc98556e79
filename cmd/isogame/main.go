package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/annel0/isogame/internal/config"
	"github.com/annel0/isogame/internal/logging"
	"github.com/annel0/isogame/internal/observability"
	"github.com/annel0/isogame/internal/persistence"
	"github.com/annel0/isogame/internal/physics"
	"github.com/annel0/isogame/internal/storage"
	"github.com/annel0/isogame/internal/world"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (default: $GAME_CONFIG or built-in defaults)")
		savePath   = flag.String("save", "", "Write the built world to this save file")
		slotName   = flag.String("slot", "", "Archive the built world into the slot store under this name")
		ticks      = flag.Int("ticks", 0, "Run this many headless update ticks after the world is built")
		wait       = flag.Bool("wait", false, "Keep running (serving /metrics) until SIGINT/SIGTERM")
	)
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("game"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		os.Exit(1)
	}
	logging.Info("🎮 Запуск %s: экран %dx%d, мир %dx%d, генератор %s",
		cfg.Display.WindowTitle, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight,
		cfg.World.WorldWidth, cfg.World.WorldHeight, cfg.World.Generator)

	ctx := context.Background()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, "isogame", cfg.Metrics.OTLPEndpoint)
	if err != nil {
		logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTelemetry(ctx); err != nil {
			logging.Warn("Ошибка остановки OpenTelemetry: %v", err)
		}
	}()

	metrics, err := persistence.NewLoadMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		logging.Error("❌ Ошибка регистрации метрик: %v", err)
		os.Exit(1)
	}
	if cfg.Metrics.Addr != "" {
		srv := observability.StartMetricsHTTP(cfg.Metrics.Addr, prometheus.DefaultGatherer)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	tiles := world.NewDefaultTilesManager()
	svc := persistence.NewWorldPersistenceService(cfg, tiles).WithMetrics(metrics)

	w, err := svc.LoadOrGenerate(ctx)
	if err != nil {
		logging.Error("❌ Не удалось получить мир: %v", err)
		os.Exit(1)
	}
	logSummary(w)

	// Без окна мир можно только обновлять: рендер и ввод живут во внешнем слое
	collisions := physics.RectCollision{}
	for i := 0; i < *ticks; i++ {
		w.Update(collisions)
	}
	if *ticks > 0 {
		logging.Debug("Выполнено тиков обновления: %d", *ticks)
	}

	if *savePath != "" {
		if err := persistence.WriteSaveFile(*savePath, w); err != nil {
			logging.Error("❌ Ошибка записи сохранения: %v", err)
			os.Exit(1)
		}
		logging.Info("💾 Мир записан в %s", *savePath)
	}

	if *slotName != "" {
		if err := archive(cfg.Save.SlotDir, *slotName, w); err != nil {
			logging.Error("❌ Ошибка архивации слота: %v", err)
			os.Exit(1)
		}
	}

	if *wait {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		logging.Debug("Ожидание сигналов завершения...")
		sig := <-sigCh
		logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
	}

	logging.Info("👋 Завершено")
}

func archive(dir, name string, w *world.GameWorld) error {
	data, err := persistence.MarshalWorld(w)
	if err != nil {
		return err
	}

	store, err := storage.NewSlotStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Put(name, data)
	return err
}

// logSummary пишет в лог распределение рельефа, декораций и ресурсов
func logSummary(w *world.GameWorld) {
	terrains := make(map[string]int)
	decorations, resources := 0, 0
	for _, tile := range w.Tiles() {
		terrains[tile.Terrain().Name]++
		if tile.Decoration != nil {
			decorations++
		}
		if tile.Resource != nil {
			resources++
		}
	}

	names := make([]string, 0, len(terrains))
	for name := range terrains {
		names = append(names, name)
	}
	sort.Strings(names)

	logging.Info("🌍 Мир %dx%d: декораций %d, ресурсов %d", w.Width, w.Height, decorations, resources)
	for _, name := range names {
		logging.Debug("   %-12s %d", name, terrains[name])
	}
}
