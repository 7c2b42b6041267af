package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"rizzk-go/internal/config"
	"rizzk-go/internal/logger"
	"rizzk-go/internal/marketdata"
	"rizzk-go/internal/risk"

	"go.uber.org/zap"
)

func main() {
	var (
		account    = flag.Float64("account", 0, "account size in dollars")
		riskValue  = flag.Float64("risk", 1, "risk value: percent of account or dollars, per -mode")
		mode       = flag.String("mode", "percent", "risk mode: percent or fixed")
		direction  = flag.String("direction", "long", "position direction: long or short")
		entry      = flag.Float64("entry", 0, "entry price (omit with -symbol to use the live quote)")
		stop       = flag.Float64("stop", 0, "stop-loss price")
		symbol     = flag.String("symbol", "", "ticker symbol for the live entry quote")
		configPath = flag.String("config", "./configs", "directory containing config.yml")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	in := risk.TradeInput{
		AccountSize: *account,
		RiskValue:   *riskValue,
		EntryPrice:  *entry,
		StopPrice:   *stop,
	}

	switch strings.ToLower(*mode) {
	case "percent":
		in.RiskMode = risk.RiskModePercent
	case "fixed":
		in.RiskMode = risk.RiskModeFixed
	default:
		fmt.Fprintf(os.Stderr, "Unknown risk mode %q (want percent or fixed)\n", *mode)
		os.Exit(2)
	}

	switch strings.ToLower(*direction) {
	case "long":
		in.Direction = risk.DirectionLong
	case "short":
		in.Direction = risk.DirectionShort
	default:
		fmt.Fprintf(os.Stderr, "Unknown direction %q (want long or short)\n", *direction)
		os.Exit(2)
	}

	if *symbol != "" && in.EntryPrice == 0 {
		quotes := marketdata.NewClient(&cfg.MarketData, log)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		price, err := quotes.GetTickerPrice(ctx, *symbol)
		if err != nil {
			log.Fatal("Failed to fetch entry quote", zap.String("symbol", *symbol), zap.Error(err))
		}
		log.Info("Using live quote as entry price", zap.String("symbol", *symbol), zap.Float64("price", price))
		in.EntryPrice = price
	}

	result, err := risk.Compute(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	printResult(in, result, cfg.Calculator.TargetMultiples)
}

func printResult(in risk.TradeInput, result risk.TradeResult, extraMultiples []float64) {
	toStop, toTarget := risk.PercentMoves(in, result.ProfitTarget1R)

	fmt.Printf("%s %s\n", in.Direction, describeEntry(in))
	fmt.Printf("  Position size:      %d units (exact %.4f)\n", result.PositionSize, result.ExactSize)
	fmt.Printf("  Dollar risk:        $%.2f requested, $%.2f at this size (%.2f%% of account)\n",
		result.DollarRisk, result.ActualDollarRisk, result.RiskPercentOfAccount*100)
	fmt.Printf("  Stop distance:      %.4f (%.2f%% move to stop)\n", result.PerUnitRisk, toStop)
	fmt.Printf("  Target 1:1:         %.4f (%.2f%% move)\n", result.ProfitTarget1R, toTarget)
	fmt.Printf("  Target 2:1:         %.4f\n", result.ProfitTarget2R)
	for _, multiple := range extraMultiples {
		target := risk.ProfitTarget(in, multiple)
		fmt.Printf("  Target %g:1:         %.4f\n", multiple, target)
	}

	if result.PositionSize == 0 {
		fmt.Println("  Note: the stop distance is wider than the dollar risk allows; no whole unit can be bought.")
	}
}

func describeEntry(in risk.TradeInput) string {
	return fmt.Sprintf("entry %.4f, stop %.4f", in.EntryPrice, in.StopPrice)
}
