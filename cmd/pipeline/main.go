// Command pipeline wires every service in the fixed-income trading
// dataflow together, generates a synthetic day of market activity, and
// drives it end to end: prices into algo streaming and the GUI sink,
// market data into algo execution and execution, executions into trade
// booking, trades into position, positions into risk, and every stage
// that produces a durable record into historical persistence.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"

	"tradingpipeline/internal/config"
	"tradingpipeline/internal/datagen"
	"tradingpipeline/internal/model"
	"tradingpipeline/internal/productdb"
	"tradingpipeline/internal/risk"
)

func main() {
	dataDir := flag.String("data-dir", "./data", "directory for generated input files")
	resultDir := flag.String("result-dir", "./result", "directory for published output files")
	configPath := flag.String("config", "", "path to a JSON run configuration (replaces -data-dir, -result-dir, -seed and the count flags)")
	seed := flag.Int64("seed", 0, "seed for synthetic data generation (0 derives one from the clock)")
	tickCount := flag.Int("tick-count", 100, "number of price/market-data ticks to generate per bond")
	tradeCount := flag.Int("trade-count", 10, "trade count stored in the run configuration (trade generation always writes 10 trades per bond)")
	inquiryCount := flag.Int("inquiry-count", 10, "inquiry count stored in the run configuration (inquiry generation always writes 10 inquiries per bond)")
	postgresDSN := flag.String("postgres-dsn", "", "Postgres connection string for historical persistence (disabled if empty)")
	pyroscopeAddr := flag.String("pyroscope-addr", "", "Pyroscope server address for continuous profiling (disabled if empty)")
	flag.Parse()

	cfg, err := resolveConfig(*configPath, *dataDir, *resultDir, *seed, *tickCount, *tradeCount, *inquiryCount)
	if err != nil {
		log.Fatalf("pipeline: config: %v", err)
	}

	addr := *pyroscopeAddr
	if addr == "" {
		addr = cfg.PyroscopeAddr
	}
	if addr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "tradingpipeline",
			ServerAddress:   addr,
			Tags:            map[string]string{"component": "pipeline"},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pipeline: pyroscope start: %v", err)
		}
		defer func() { _ = profiler.Stop() }()
	}

	if err := run(cfg, *postgresDSN); err != nil {
		log.Fatalf("pipeline: %v", err)
	}
}

// resolveConfig loads cfg from a JSON file when path is set, otherwise
// resolves it directly from the flag values.
func resolveConfig(path, dataDir, resultDir string, seed int64, tickCount, tradeCount, inquiryCount int) (config.Loaded, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Resolve(config.FileConfig{
		DataDir:   dataDir,
		ResultDir: resultDir,
		Seed:      seed,
		Counts: config.CountsConfig{
			PriceTicks:   tickCount,
			TradeCount:   tradeCount,
			InquiryCount: inquiryCount,
		},
	})
}

func run(cfg config.Loaded, postgresDSN string) error {
	if err := prepareDirectories(cfg.DataDir, cfg.ResultDir); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}

	paths, err := generateInitialData(cfg)
	if err != nil {
		return fmt.Errorf("generate initial data: %w", err)
	}

	svc, cleanup, err := wireServices(cfg, postgresDSN)
	defer cleanup.closeAll()
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}

	if err := processDataFlows(svc, paths); err != nil {
		return fmt.Errorf("process data flows: %w", err)
	}

	reportBucketedRisk(svc.risk)

	logs.Infof("pipeline: trading system run completed")
	return nil
}

func prepareDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// dataPaths is the set of synthetic input files generateInitialData
// produces and processDataFlows subscribes to.
type dataPaths struct {
	prices     string
	marketData string
	trades     string
	inquiries  string
}

func generateInitialData(cfg config.Loaded) (dataPaths, error) {
	logs.Infof("pipeline: generating price and order book data...")

	paths := dataPaths{
		prices:     filepath.Join(cfg.DataDir, "prices.txt"),
		marketData: filepath.Join(cfg.DataDir, "marketdata.txt"),
		trades:     filepath.Join(cfg.DataDir, "trades.txt"),
		inquiries:  filepath.Join(cfg.DataDir, "inquiries.txt"),
	}

	gen := datagen.New(cfg.Seed)
	products := productdb.Universe()

	priceFile, err := os.Create(paths.prices)
	if err != nil {
		return dataPaths{}, err
	}
	defer priceFile.Close()
	depthFile, err := os.Create(paths.marketData)
	if err != nil {
		return dataPaths{}, err
	}
	defer depthFile.Close()
	if err := gen.GenerateOrderBook(products, priceFile, depthFile, cfg.Counts.PriceTicks); err != nil {
		return dataPaths{}, err
	}

	tradeFile, err := os.Create(paths.trades)
	if err != nil {
		return dataPaths{}, err
	}
	defer tradeFile.Close()
	if err := gen.GenerateTrades(products, tradeFile); err != nil {
		return dataPaths{}, err
	}

	inquiryFile, err := os.Create(paths.inquiries)
	if err != nil {
		return dataPaths{}, err
	}
	defer inquiryFile.Close()
	if err := gen.GenerateInquiries(products, inquiryFile); err != nil {
		return dataPaths{}, err
	}

	logs.Infof("pipeline: data generation completed")
	return paths, nil
}

func processDataFlows(svc *services, paths dataPaths) error {
	logs.Infof("pipeline: processing price data...")
	if err := subscribeFile(paths.prices, svc.pricingConnector.Subscribe); err != nil {
		return err
	}

	logs.Infof("pipeline: processing market data...")
	if err := subscribeFile(paths.marketData, svc.marketDataConnector.Subscribe); err != nil {
		return err
	}

	logs.Infof("pipeline: processing trade data...")
	if err := subscribeFile(paths.trades, svc.tradeBookingConnector.Subscribe); err != nil {
		return err
	}

	logs.Infof("pipeline: processing inquiry data...")
	if err := subscribeFile(paths.inquiries, svc.inquiry.Connector().Subscribe); err != nil {
		return err
	}

	return nil
}

func subscribeFile(path string, subscribe func(r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return subscribe(f)
}

func reportBucketedRisk(riskService *risk.Service) {
	sector := model.BucketedSector[model.Bond]{Name: "ALL", Products: bondUniverseProducts()}
	bucketed := riskService.GetBucketedRisk(sector)
	logs.Infof("pipeline: bucketed risk for %s: pv01=%.6f quantity=%d", sector.Name, bucketed.Value, bucketed.Quantity)
}

func bondUniverseProducts() []model.Bond {
	cusips := productdb.Universe()
	bonds := make([]model.Bond, 0, len(cusips))
	for _, cusip := range cusips {
		bond, err := productdb.QueryProduct(cusip)
		if err != nil {
			continue
		}
		bonds = append(bonds, bond)
	}
	return bonds
}
