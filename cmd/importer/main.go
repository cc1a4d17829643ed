package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"delivery-platform/internal/config"
	"delivery-platform/internal/db"
	"delivery-platform/internal/events"
	"delivery-platform/internal/importer"
	"delivery-platform/internal/logging"
	orderrepo "delivery-platform/internal/repository/order"
	ordersvc "delivery-platform/internal/service/order"
)

func main() {
	var (
		configPath string
		filePath   string
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file (defaults to $CONFIG_FILE)")
	flag.StringVar(&filePath, "file", "", "Path to an order CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(configPath, filePath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, filePath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log, "importer")
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	var publisher events.Publisher = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer kp.Close()
		publisher = kp
	}
	orders := ordersvc.New(orderrepo.NewPostgres(pool, logger), publisher, logger)

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	count, err := importer.NewCSVImporter(f, orders, logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("after %d orders: %w", count, err)
	}

	fmt.Printf("Imported %d orders from %s in %s\n", count, filePath, time.Since(start).Truncate(time.Millisecond))
	return nil
}
