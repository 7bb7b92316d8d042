package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"txn-normalizer-go/config"
	"txn-normalizer-go/dateparse"
	"txn-normalizer-go/infrastructure/logger"
	"txn-normalizer-go/metrics"
	"txn-normalizer-go/pair"
	"txn-normalizer-go/trade"
)

// RawRecord 交易所导出的原始记录
type RawRecord struct {
	Pair       string // 交易对，如 BTC/USD 或 BTCUSD
	Side       string // buy/sell 及其同义词
	Amount     string
	UnitPrice  string
	TotalPrice string
	FeeAmount  string
	Date       string
}

// RecordSource 原始记录来源
type RecordSource interface {
	Name() string
	Records() ([]RawRecord, error)
}

// NormalizedTrade 归一化后的交易
type NormalizedTrade struct {
	trade.CanonicalTrade
	Time   time.Time `json:"time"`
	Source string    `json:"source"`
}

// FormatCache 按来源缓存推断出的日期格式，nil 结果也缓存
type FormatCache struct {
	mu    sync.RWMutex
	specs map[string]*dateparse.FormatSpec
	seen  map[string]bool
}

// NewFormatCache 创建格式缓存
func NewFormatCache() *FormatCache {
	return &FormatCache{
		specs: make(map[string]*dateparse.FormatSpec),
		seen:  make(map[string]bool),
	}
}

// Get 返回缓存的格式和是否命中
func (c *FormatCache) Get(source string) (*dateparse.FormatSpec, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.seen[source] {
		return nil, false
	}
	return c.specs[source], true
}

// Put 记录来源对应的格式
func (c *FormatCache) Put(source string, spec *dateparse.FormatSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.specs[source] = spec
	c.seen[source] = true
}

// Invalidate 清空缓存，配置热更新后调用
func (c *FormatCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.specs = make(map[string]*dateparse.FormatSpec)
	c.seen = make(map[string]bool)
}

// Config 导入器配置
type Config struct {
	Workers int // 并发归一化 worker 数
}

// Components 导入器依赖组件
type Components struct {
	Logger      *logger.Logger
	Cache       *FormatCache
	KnownQuotes []string
	Sources     map[string]config.SourceConfig
}

// Runner 记录归一化导入器
type Runner struct {
	config Config
	logger *logger.Logger
	cache  *FormatCache

	mu          sync.RWMutex
	knownQuotes []string
	sources     map[string]config.SourceConfig

	stats Statistics
}

// Statistics 导入器统计信息
type Statistics struct {
	TotalRecords  int64
	TotalTrades   int64
	TotalSkipped  int64
	LastBatchTime time.Time
	mu            sync.RWMutex
}

// New 创建导入器
func New(cfg Config, components Components) (*Runner, error) {
	if components.Logger == nil {
		return nil, fmt.Errorf("invalid components: logger is required")
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	cache := components.Cache
	if cache == nil {
		cache = NewFormatCache()
	}

	return &Runner{
		config:      cfg,
		logger:      components.Logger,
		cache:       cache,
		knownQuotes: components.KnownQuotes,
		sources:     components.Sources,
	}, nil
}

// Apply 应用新配置，满足热更新 Applier 接口
func (r *Runner) Apply(knownQuotes []string, sources map[string]config.SourceConfig) error {
	r.mu.Lock()
	r.knownQuotes = knownQuotes
	r.sources = sources
	r.mu.Unlock()

	// 来源配置可能改变了日期格式或时区
	r.cache.Invalidate()

	r.logger.Info("config applied",
		zap.Int("known_quotes", len(knownQuotes)),
		zap.Int("sources", len(sources)))
	return nil
}

// GetStatistics 返回统计快照
func (r *Runner) GetStatistics() Statistics {
	r.stats.mu.RLock()
	defer r.stats.mu.RUnlock()
	return Statistics{
		TotalRecords:  r.stats.TotalRecords,
		TotalTrades:   r.stats.TotalTrades,
		TotalSkipped:  r.stats.TotalSkipped,
		LastBatchTime: r.stats.LastBatchTime,
	}
}

// Run 拉取来源的全部记录并归一化，跳过无法归一化的记录
func (r *Runner) Run(ctx context.Context, src RecordSource) ([]NormalizedTrade, error) {
	start := time.Now()

	records, err := src.Records()
	if err != nil {
		return nil, fmt.Errorf("fetch records from %s: %w", src.Name(), err)
	}

	r.mu.RLock()
	quotes := r.knownQuotes
	srcCfg := r.sources[src.Name()]
	r.mu.RUnlock()

	spec, err := r.formatFor(src.Name(), srcCfg, records)
	if err != nil {
		return nil, fmt.Errorf("resolve date format for %s: %w", src.Name(), err)
	}

	loc := time.UTC
	if srcCfg.Timezone != "" {
		loc, err = time.LoadLocation(srcCfg.Timezone)
		if err != nil {
			r.logger.Warn("unknown timezone, falling back to UTC",
				zap.String("source", src.Name()),
				zap.String("timezone", srcCfg.Timezone))
			loc = time.UTC
		}
	}

	results := make([]*NormalizedTrade, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				nt, err := r.normalizeOne(records[i], src.Name(), quotes, spec, loc)
				if err != nil {
					metrics.RecordsSkipped.WithLabelValues(reason(err)).Inc()
					r.logger.LogSkip(src.Name(), reason(err), map[string]interface{}{
						"index": i,
						"error": err.Error(),
					})
					continue
				}
				results[i] = nt
			}
		}()
	}

	for i := range records {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	trades := make([]NormalizedTrade, 0, len(records))
	for _, nt := range results {
		if nt != nil {
			trades = append(trades, *nt)
		}
	}

	skipped := int64(len(records) - len(trades))
	r.stats.mu.Lock()
	r.stats.TotalRecords += int64(len(records))
	r.stats.TotalTrades += int64(len(trades))
	r.stats.TotalSkipped += skipped
	r.stats.LastBatchTime = time.Now()
	r.stats.mu.Unlock()

	metrics.RecordsNormalized.Add(float64(len(trades)))
	metrics.BatchDuration.Observe(time.Since(start).Seconds())

	r.logger.LogBatch("batch_done", src.Name(), map[string]interface{}{
		"records": len(records),
		"trades":  len(trades),
		"skipped": skipped,
		"elapsed": time.Since(start).String(),
	})

	return trades, nil
}

// formatFor 解析来源的日期格式：显式配置 > 缓存 > 按样本推断
func (r *Runner) formatFor(source string, srcCfg config.SourceConfig, records []RawRecord) (*dateparse.FormatSpec, error) {
	if srcCfg.DateFormat != "" {
		return &dateparse.FormatSpec{DateLayout: srcCfg.DateFormat}, nil
	}

	if spec, ok := r.cache.Get(source); ok {
		return spec, nil
	}

	samples := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Date != "" {
			samples = append(samples, rec.Date)
		}
	}

	spec, err := dateparse.InferFormat(samples, srcCfg.MonthFirstOrDefault())
	if err != nil {
		return nil, err
	}
	if spec != nil {
		metrics.FormatsInferred.Inc()
	}

	r.cache.Put(source, spec)
	return spec, nil
}

// normalizeOne 归一化单条记录
func (r *Runner) normalizeOne(rec RawRecord, source string, quotes []string, spec *dateparse.FormatSpec, loc *time.Location) (*NormalizedTrade, error) {
	base, quote, err := pair.Split(rec.Pair, quotes)
	if err != nil {
		return nil, fmt.Errorf("split pair %q: %w", rec.Pair, err)
	}

	canonical, err := trade.Convert(trade.Params{
		BaseCurrency:  base,
		QuoteCurrency: quote,
		Side:          rec.Side,
		Amount:        rec.Amount,
		UnitPrice:     rec.UnitPrice,
		TotalPrice:    rec.TotalPrice,
		FeeAmount:     rec.FeeAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("convert trade: %w", err)
	}

	var when time.Time
	if spec != nil {
		when, err = dateparse.ConvertWithFormat(rec.Date, spec)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", rec.Date, err)
		}
	} else {
		// 无法解析时保留零值时间，由下游决定取舍
		when, _, err = dateparse.Normalize(rec.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", rec.Date, err)
		}
	}

	return &NormalizedTrade{
		CanonicalTrade: canonical,
		Time:           when,
		Source:         source,
	}, nil
}

// reason 将错误映射为跳过原因标签
func reason(err error) string {
	switch {
	case errors.Is(err, trade.ErrUnknownSide):
		return "unknown_side"
	case errors.Is(err, pair.ErrInvalidPair):
		return "invalid_pair"
	case errors.Is(err, dateparse.ErrBadDateToken):
		return "bad_date_token"
	case errors.Is(err, dateparse.ErrDateGrid):
		return "date_grid"
	case errors.Is(err, dateparse.ErrDateAmbiguous):
		return "date_ambiguous"
	default:
		return "other"
	}
}
