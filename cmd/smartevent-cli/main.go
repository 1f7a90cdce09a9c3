package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"smarteventparser/internal/apis/smartevent"
	"smarteventparser/internal/bootstrap"
	"smarteventparser/internal/cache"
	"smarteventparser/internal/catalog"
	"smarteventparser/internal/config"
	"smarteventparser/internal/fetch"
	"smarteventparser/internal/logger"
	"smarteventparser/internal/repository"
	jsonfile "smarteventparser/internal/repository/json"
)

func main() {
	var (
		configPath = flag.String("config", "./config/config.yaml", "path to config.yaml")
		channel    = flag.String("channel", "", "override channel code (optional)")
		language   = flag.String("language", "", "override language (optional)")
		date       = flag.String("date", "", "only events on this date, YYYY-MM-DD (optional)")
		categories = flag.String("categories", "", "comma-separated category names (optional)")
		match      = flag.String("match", "or", "category match mode: or|and")
		exclude    = flag.String("exclude", "", "comma-separated event ids to drop (optional)")
		outputFile = flag.String("out", "", "override output file (optional)")
	)
	flag.Parse()

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Service:   "smartevent-cli",
	})
	slog.SetDefault(log)

	// overrides
	if *channel != "" {
		cfg.SmartEvent.Channel = *channel
	}
	if *language != "" {
		cfg.SmartEvent.Language = *language
	}
	if *outputFile != "" {
		cfg.CLI.OutputFile = *outputFile
	}

	if cfg.SmartEvent.Host == "" {
		log.Error("smartevent host must not be empty (set in config.yaml or via SMARTEVENT_HOST)")
		os.Exit(1)
	}
	if cfg.CLI.OutputFile == "" {
		log.Error("output_file must not be empty (set in config.yaml or via -out)")
		os.Exit(1)
	}

	transport, err := bootstrap.BuildTransport(cfg, log, 5)
	if err != nil {
		log.Error("build transport failed", "err", err)
		os.Exit(1)
	}

	api := smartevent.New(transport, cfg.SmartEvent.Host, cfg.SmartEvent.APIVersion, log)
	store := cache.New(cfg.Cache.Dir, time.Duration(cfg.Cache.TTLSeconds)*time.Second, log)
	fetcher := fetch.New(api, store, log)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cat := catalog.New(fetcher, log)
	if err := cat.LoadData(ctx, cfg.SmartEvent.Channel, cfg.SmartEvent.Language); err != nil {
		log.Error("load catalog failed", "err", err, "channel", cfg.SmartEvent.Channel)
		os.Exit(1)
	}

	if *date != "" {
		cat.FindByDate(*date)
	} else if names := splitList(*categories); len(names) > 0 {
		mode := catalog.MatchOR
		if strings.EqualFold(*match, "and") {
			mode = catalog.MatchAND
		}
		cat.FindByCategoryName(names, mode)
	}
	if ids := splitList(*exclude); len(ids) > 0 {
		cat.Exclude(ids)
	}

	events := cat.Events()
	res := repository.EventsResult{
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Channel:   repository.FromChannel(cat.Channel()),
		Language:  cat.Language(),
		Events:    repository.FromEvents(events),
		Count:     len(events),
	}

	repo := jsonfile.New(cfg.CLI.OutputFile, log)
	if err := repo.Save(ctx, res); err != nil {
		log.Error("save json failed", "err", err)
		os.Exit(1)
	}

	log.Info("done",
		"env", cfg.Env,
		"channel", cfg.SmartEvent.Channel,
		"language", cat.Language(),
		"count", len(events),
		"output", cfg.CLI.OutputFile,
	)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
