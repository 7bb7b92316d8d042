package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"txn-normalizer-go/config"
	"txn-normalizer-go/infrastructure/logger"
	hotconfig "txn-normalizer-go/internal/config"
	"txn-normalizer-go/internal/importer"
	"txn-normalizer-go/metrics"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	inputPath := flag.String("input", "", "输入 CSV 文件路径，留空则读 stdin")
	sourceName := flag.String("source", "default", "记录来源名称，用于匹配配置里的 sources")
	workers := flag.Int("workers", 4, "并发归一化 worker 数")
	metricsAddr := flag.String("metricsAddr", "", "Prometheus metrics 监听地址，覆盖配置")
	watch := flag.Bool("watch", false, "常驻并热加载配置（给长期任务用）")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer appLogger.Close()

	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if cfg.MetricsAddr != "" {
		metrics.StartMetricsServer(cfg.MetricsAddr)
	}

	runner, err := importer.New(importer.Config{Workers: *workers}, importer.Components{
		Logger:      appLogger,
		KnownQuotes: cfg.KnownQuotes(),
		Sources:     cfg.Sources,
	})
	if err != nil {
		log.Fatalf("初始化导入器失败: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *watch {
		if reloader, err := hotconfig.NewHotReloader(*cfgPath, hotconfig.DefaultHotReloadConfig()); err == nil {
			reloader.RegisterApplier("importer", runner)
			if err := reloader.Start(ctx); err != nil {
				log.Fatalf("启动热更新失败: %v", err)
			}
			defer reloader.Stop()
		} else {
			// inotify 不可用（容器、NFS）时退回 mtime 轮询
			log.Printf("fsnotify 不可用，退回轮询: %v", err)
			poller := config.Watcher{Path: *cfgPath, Interval: 2 * time.Second}
			go func() {
				_ = poller.Start(ctx, func(cfg config.AppConfig) {
					_ = runner.Apply(cfg.KnownQuotes(), cfg.Sources)
				})
			}()
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-quit
			cancel()
		}()
	}

	var in io.Reader = os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatalf("打开输入文件失败: %v", err)
		}
		defer f.Close()
		in = f
	}

	src, err := newCSVSource(*sourceName, in)
	if err != nil {
		log.Fatalf("读取 CSV 失败: %v", err)
	}

	trades, err := runner.Run(ctx, src)
	if err != nil {
		log.Fatalf("归一化失败: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, t := range trades {
		if err := enc.Encode(t); err != nil {
			log.Fatalf("输出失败: %v", err)
		}
	}

	stats := runner.GetStatistics()
	appLogger.LogBatch("normalize_done", src.Name(), map[string]interface{}{
		"records": stats.TotalRecords,
		"trades":  stats.TotalTrades,
		"skipped": stats.TotalSkipped,
	})
}

// csvSource 把一个 CSV 文件适配成记录来源，按表头别名识别列。
type csvSource struct {
	name    string
	records []importer.RawRecord
}

func (s *csvSource) Name() string                           { return s.name }
func (s *csvSource) Records() ([]importer.RawRecord, error) { return s.records, nil }

// 各家交易所导出的列名五花八门，按别名归类
var headerAliases = map[string][]string{
	"pair":   {"pair", "market", "symbol", "product"},
	"side":   {"side", "type", "direction"},
	"amount": {"amount", "qty", "quantity", "size"},
	"price":  {"price", "unit_price", "rate"},
	"total":  {"total", "total_price", "cost", "subtotal"},
	"fee":    {"fee", "fee_amount", "fees"},
	"date":   {"date", "time", "timestamp", "datetime", "created_at"},
}

func newCSVSource(name string, in io.Reader) (*csvSource, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := headerIndex(header)
	if idx["pair"] < 0 {
		return nil, fmt.Errorf("no pair column found in header: %v", header)
	}

	var records []importer.RawRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		records = append(records, importer.RawRecord{
			Pair:       field(row, idx["pair"]),
			Side:       field(row, idx["side"]),
			Amount:     field(row, idx["amount"]),
			UnitPrice:  field(row, idx["price"]),
			TotalPrice: field(row, idx["total"]),
			FeeAmount:  field(row, idx["fee"]),
			Date:       field(row, idx["date"]),
		})
	}

	return &csvSource{name: name, records: records}, nil
}

// headerIndex 返回每个逻辑列在表头里的下标，未找到为 -1
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(headerAliases))
	for key := range headerAliases {
		idx[key] = -1
	}
	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		normalized = strings.ReplaceAll(normalized, " ", "_")
		for key, aliases := range headerAliases {
			if idx[key] >= 0 {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					idx[key] = i
					break
				}
			}
		}
	}
	return idx
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
