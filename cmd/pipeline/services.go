package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yanun0323/logs"

	"tradingpipeline/internal/algoexecution"
	"tradingpipeline/internal/algostreaming"
	"tradingpipeline/internal/config"
	"tradingpipeline/internal/execution"
	"tradingpipeline/internal/guisink"
	"tradingpipeline/internal/inquiry"
	"tradingpipeline/internal/marketdata"
	"tradingpipeline/internal/persist"
	"tradingpipeline/internal/position"
	"tradingpipeline/internal/pricing"
	"tradingpipeline/internal/risk"
	"tradingpipeline/internal/streaming"
	"tradingpipeline/internal/tradebooking"
)

// services holds every service and inbound connector ProcessDataFlows
// needs once InitializeServices-equivalent wiring is done.
type services struct {
	pricingConnector      *pricing.Connector
	marketDataConnector   *marketdata.Connector
	tradeBookingConnector *tradebooking.Connector
	inquiry               *inquiry.Service
	risk                  *risk.Service
}

// closers collects cleanup actions registered while wiring services so
// run can release every opened file and database handle on the way out,
// regardless of where wiring failed.
type closers struct {
	fns []func() error
}

func (c *closers) add(fn func() error) {
	c.fns = append(c.fns, fn)
}

func (c *closers) closeAll() {
	if c == nil {
		return
	}
	for _, fn := range c.fns {
		if err := fn(); err != nil {
			logs.Errorf("pipeline: close: %v", err)
		}
	}
}

// wireServices constructs every service in the dataflow graph and links
// their listeners in the same order the original trading system does:
// pricing feeds algo streaming and the GUI sink, algo streaming feeds
// streaming, market data feeds algo execution, algo execution feeds
// execution, execution feeds trade booking, trade booking feeds
// position, position feeds risk, and every historically-recorded stage
// feeds its own persistence listener.
func wireServices(cfg config.Loaded, postgresDSN string) (*services, *closers, error) {
	c := &closers{}

	streamingFile, err := createResultFile(cfg.ResultDir, "streams.txt", c)
	if err != nil {
		return nil, c, err
	}
	executionFile, err := createResultFile(cfg.ResultDir, "executions.txt", c)
	if err != nil {
		return nil, c, err
	}
	guiFile, err := createResultFile(cfg.ResultDir, "gui.txt", c)
	if err != nil {
		return nil, c, err
	}

	sinks, err := openHistoricalSinks(cfg, postgresDSN, c)
	if err != nil {
		return nil, c, err
	}

	logs.Infof("pipeline: initializing trading service components...")

	pricingSvc := pricing.New()
	pricingConnector := pricing.NewConnector(pricingSvc)

	algoStreamingSvc := algostreaming.New()
	streamingSvc := streaming.New(streamingFile)

	marketDataSvc := marketdata.New()
	marketDataConnector := marketdata.NewConnector(marketDataSvc)

	algoOrderFactory := algoexecution.NewSimpleOrderFactory(cfg.Seed)
	algoExecutionSvc := algoexecution.New(algoOrderFactory)

	executionSvc := execution.New(executionFile)

	tradeBookingSvc := tradebooking.New()
	tradeBookingConnector := tradebooking.NewConnector(tradeBookingSvc)

	positionSvc := position.New()
	riskSvc := risk.New()
	guiSvc := guisink.New(guiFile)
	inquirySvc := inquiry.New()

	positionHistSvc := persist.NewService(sinks.position, keyPosition, renderPosition)
	riskHistSvc := persist.NewService(sinks.risk, keyPV01, renderPV01)
	executionHistSvc := persist.NewService(sinks.execution, keyExecutionOrder, renderExecutionOrder)
	streamingHistSvc := persist.NewService(sinks.streaming, keyPriceStream, renderPriceStream)
	inquiryHistSvc := persist.NewService(sinks.inquiry, keyInquiry, renderInquiry)

	pricingSvc.AddListener(algostreaming.NewPriceListener(algoStreamingSvc))
	pricingSvc.AddListener(guisink.NewPriceListener(guiSvc))
	algoStreamingSvc.AddListener(streaming.NewAlgoStreamListener(streamingSvc))
	marketDataSvc.AddListener(algoexecution.NewMarketDataListener(algoExecutionSvc))
	algoExecutionSvc.AddListener(execution.NewAlgoExecutionListener(executionSvc))
	executionSvc.AddListener(tradebooking.NewExecutionListener(tradeBookingSvc))
	tradeBookingSvc.AddListener(position.NewTradeListener(positionSvc))
	positionSvc.AddListener(risk.NewPositionListener(riskSvc))

	positionSvc.AddListener(persist.NewListener(positionHistSvc))
	executionSvc.AddListener(persist.NewListener(executionHistSvc))
	streamingSvc.AddListener(persist.NewListener(streamingHistSvc))
	riskSvc.AddListener(persist.NewListener(riskHistSvc))
	inquirySvc.AddListener(persist.NewListener(inquiryHistSvc))

	logs.Infof("pipeline: trading service components initialized")

	return &services{
		pricingConnector:      pricingConnector,
		marketDataConnector:   marketDataConnector,
		tradeBookingConnector: tradeBookingConnector,
		inquiry:               inquirySvc,
		risk:                  riskSvc,
	}, c, nil
}

func createResultFile(dir, name string, c *closers) (*os.File, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	c.add(f.Close)
	return f, nil
}

// historicalSinks bundles the five persist.Sink implementations every
// HistoricalDataService-equivalent stage publishes into.
type historicalSinks struct {
	position  persist.Sink
	risk      persist.Sink
	execution persist.Sink
	streaming persist.Sink
	inquiry   persist.Sink
}

func openHistoricalSinks(cfg config.Loaded, postgresDSN string, c *closers) (historicalSinks, error) {
	postgresOpt, usePostgres := resolvePostgresOption(cfg, postgresDSN)
	if usePostgres {
		db, err := persist.OpenPostgres(postgresOpt)
		if err != nil {
			return historicalSinks{}, fmt.Errorf("open postgres: %w", err)
		}
		c.add(func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
		return historicalSinks{
			position:  persist.NewGormSink(db, "POSITION"),
			risk:      persist.NewGormSink(db, "RISK"),
			execution: persist.NewGormSink(db, "EXECUTION"),
			streaming: persist.NewGormSink(db, "STREAMING"),
			inquiry:   persist.NewGormSink(db, "INQUIRY"),
		}, nil
	}

	positionSink, err := createCSVSink(cfg.ResultDir, "positions.csv", c)
	if err != nil {
		return historicalSinks{}, err
	}
	riskSink, err := createCSVSink(cfg.ResultDir, "risk.csv", c)
	if err != nil {
		return historicalSinks{}, err
	}
	executionSink, err := createCSVSink(cfg.ResultDir, "executions.csv", c)
	if err != nil {
		return historicalSinks{}, err
	}
	streamingSink, err := createCSVSink(cfg.ResultDir, "streams.csv", c)
	if err != nil {
		return historicalSinks{}, err
	}
	inquirySink, err := createCSVSink(cfg.ResultDir, "inquiries.csv", c)
	if err != nil {
		return historicalSinks{}, err
	}

	return historicalSinks{
		position:  positionSink,
		risk:      riskSink,
		execution: executionSink,
		streaming: streamingSink,
		inquiry:   inquirySink,
	}, nil
}

// resolvePostgresOption prefers a discrete Postgres config loaded from
// a JSON run configuration; a raw -postgres-dsn flag value is the
// fallback when no config file enabled it.
func resolvePostgresOption(cfg config.Loaded, postgresDSN string) (persist.PostgresOption, bool) {
	if cfg.Postgres.Enabled {
		return persist.PostgresOption{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
			SSLMode:  cfg.Postgres.SSLMode,
		}, true
	}
	if postgresDSN != "" {
		return persist.PostgresOption{ConnString: postgresDSN}, true
	}
	return persist.PostgresOption{}, false
}

func createCSVSink(dir, name string, c *closers) (*persist.CSVSink, error) {
	f, err := createResultFile(dir, name, c)
	if err != nil {
		return nil, err
	}
	return persist.NewCSVSink(f), nil
}
