package main

import (
	"context"
	"flag"
	"os"

	"rebalancer/internal/config"
	"rebalancer/internal/engine"
	"rebalancer/internal/marketdata"
	"rebalancer/internal/repository"

	"github.com/phuslu/log"
)

func main() {
	configPath := flag.String("config", "rebalancer.toml", "path to the run configuration")
	noProgress := flag.Bool("no-progress", false, "disable the progress bar")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("load configuration")
	}
	btConfig, err := cfg.BacktestConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	db, err := repository.NewDatabase(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect price cache")
	}
	defer db.Close()
	if err := db.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("init price cache schema")
	}

	provider := marketdata.NewCachedProvider(&db, marketdata.NewYahooClient())
	eng := engine.NewEngine(btConfig, provider, !*noProgress)

	result, err := eng.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("backtest failed")
	}

	engine.WriteReport(os.Stdout, result)

	if cfg.Output.CurvesCSV != "" {
		if err := engine.WriteCurvesCSVFile(cfg.Output.CurvesCSV, result); err != nil {
			log.Fatal().Err(err).Msg("write curves csv")
		}
		log.Info().Str("path", cfg.Output.CurvesCSV).Msg("equity curves written")
	}
	if cfg.Output.ChartPNG != "" {
		png, err := engine.RenderEquityChart(result)
		if err != nil {
			log.Fatal().Err(err).Msg("render chart")
		}
		if err := os.WriteFile(cfg.Output.ChartPNG, png, 0o644); err != nil {
			log.Fatal().Err(err).Msg("write chart")
		}
		log.Info().Str("path", cfg.Output.ChartPNG).Msg("equity chart written")
	}

	log.Info().Str("winner", result.Winner).Msg("backtest complete")
}
