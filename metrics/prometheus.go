package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// YieldFarm Metrics Collector
// Provides comprehensive metrics for monitoring

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all YieldFarm metrics
type Collector struct {
	// Pool metrics
	PoolsActive     prometheus.Gauge
	PoolStaked      *prometheus.GaugeVec
	PoolBoostWeight *prometheus.GaugeVec
	PoolLiability   *prometheus.GaugeVec
	PoolEmergency   *prometheus.GaugeVec

	// Stake flow metrics
	StakesTotal   *prometheus.CounterVec
	StakeVolume   *prometheus.CounterVec
	UnstakesTotal *prometheus.CounterVec
	UnstakeVolume *prometheus.CounterVec

	// Reward metrics
	HarvestsTotal   *prometheus.CounterVec
	HarvestVolume   *prometheus.CounterVec
	RewardDeposits  *prometheus.CounterVec
	ForfeitedVolume *prometheus.CounterVec

	// Boost metrics
	BoostsActive *prometheus.GaugeVec
	BoostsTotal  *prometheus.CounterVec

	// Emergency metrics
	EmergencyUnstakesTotal *prometheus.CounterVec
	EmergencyPoolsTotal    prometheus.Counter

	// Treasury metrics
	TreasuryWithdrawals *prometheus.CounterVec
	TreasuryVolume      *prometheus.CounterVec

	// API metrics
	APIRequestsTotal  *prometheus.CounterVec
	APIRequestLatency *prometheus.HistogramVec
	APIErrorsTotal    *prometheus.CounterVec

	// System metrics
	BlockHeight prometheus.Gauge
	BlockTime   *prometheus.HistogramVec
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Pool metrics
	c.PoolsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "yieldfarm",
			Subsystem: "pools",
			Name:      "active",
			Help:      "Number of pools still streaming rewards",
		},
	)

	c.PoolStaked = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yieldfarm",
			Subsystem: "pools",
			Name:      "staked",
			Help:      "Total staked principal per pool (base units)",
		},
		[]string{"pool_id"},
	)

	c.PoolBoostWeight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yieldfarm",
			Subsystem: "pools",
			Name:      "boost_weight",
			Help:      "Total boosted weight per pool (base units)",
		},
		[]string{"pool_id"},
	)

	c.PoolLiability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yieldfarm",
			Subsystem: "pools",
			Name:      "reward_liability",
			Help:      "Accrued but unclaimed reward per pool (base units)",
		},
		[]string{"pool_id"},
	)

	c.PoolEmergency = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yieldfarm",
			Subsystem: "pools",
			Name:      "emergency",
			Help:      "Emergency flag per pool (1 = locked)",
		},
		[]string{"pool_id"},
	)

	// Stake flow metrics
	c.StakesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "stakes",
			Name:      "total",
			Help:      "Total number of stake operations",
		},
		[]string{"pool_id"},
	)

	c.StakeVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "stakes",
			Name:      "volume",
			Help:      "Total staked volume (base units)",
		},
		[]string{"pool_id"},
	)

	c.UnstakesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "unstakes",
			Name:      "total",
			Help:      "Total number of unstake operations",
		},
		[]string{"pool_id"},
	)

	c.UnstakeVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "unstakes",
			Name:      "volume",
			Help:      "Total unstaked volume (base units)",
		},
		[]string{"pool_id"},
	)

	// Reward metrics
	c.HarvestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "rewards",
			Name:      "harvests_total",
			Help:      "Total number of harvests",
		},
		[]string{"pool_id"},
	)

	c.HarvestVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "rewards",
			Name:      "harvest_volume",
			Help:      "Total harvested reward volume (base units)",
		},
		[]string{"pool_id"},
	)

	c.RewardDeposits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "rewards",
			Name:      "deposits_volume",
			Help:      "Total reward deposit volume (base units)",
		},
		[]string{"pool_id"},
	)

	c.ForfeitedVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "rewards",
			Name:      "forfeited_volume",
			Help:      "Reward forfeited through emergency unstakes (base units)",
		},
		[]string{"pool_id"},
	)

	// Boost metrics
	c.BoostsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yieldfarm",
			Subsystem: "boosts",
			Name:      "active",
			Help:      "Number of active NFT boosts per pool",
		},
		[]string{"pool_id"},
	)

	c.BoostsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "boosts",
			Name:      "total",
			Help:      "Total number of boost applications",
		},
		[]string{"pool_id"},
	)

	// Emergency metrics
	c.EmergencyUnstakesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "emergency",
			Name:      "unstakes_total",
			Help:      "Total number of emergency unstakes",
		},
		[]string{"pool_id"},
	)

	c.EmergencyPoolsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "emergency",
			Name:      "pools_total",
			Help:      "Total number of pools put into emergency",
		},
	)

	// Treasury metrics
	c.TreasuryWithdrawals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "treasury",
			Name:      "withdrawals_total",
			Help:      "Total number of treasury withdrawals",
		},
		[]string{"pool_id"},
	)

	c.TreasuryVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "treasury",
			Name:      "volume",
			Help:      "Total treasury withdrawal volume (base units)",
		},
		[]string{"pool_id"},
	)

	// API metrics
	c.APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total API requests",
		},
		[]string{"method", "path", "status"},
	)

	c.APIRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yieldfarm",
			Subsystem: "api",
			Name:      "request_latency_ms",
			Help:      "API request latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method", "path"},
	)

	c.APIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldfarm",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Total API errors",
		},
		[]string{"method", "path", "error_type"},
	)

	// System metrics
	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "yieldfarm",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	c.BlockTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yieldfarm",
			Subsystem: "system",
			Name:      "block_time_ms",
			Help:      "Block time in milliseconds",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 5000},
		},
		[]string{},
	)

	// Register all metrics
	c.registerAll()

	return c
}

// registerAll registers all metrics with Prometheus
func (c *Collector) registerAll() {
	// Pool metrics
	prometheus.MustRegister(c.PoolsActive)
	prometheus.MustRegister(c.PoolStaked)
	prometheus.MustRegister(c.PoolBoostWeight)
	prometheus.MustRegister(c.PoolLiability)
	prometheus.MustRegister(c.PoolEmergency)

	// Stake flow metrics
	prometheus.MustRegister(c.StakesTotal)
	prometheus.MustRegister(c.StakeVolume)
	prometheus.MustRegister(c.UnstakesTotal)
	prometheus.MustRegister(c.UnstakeVolume)

	// Reward metrics
	prometheus.MustRegister(c.HarvestsTotal)
	prometheus.MustRegister(c.HarvestVolume)
	prometheus.MustRegister(c.RewardDeposits)
	prometheus.MustRegister(c.ForfeitedVolume)

	// Boost metrics
	prometheus.MustRegister(c.BoostsActive)
	prometheus.MustRegister(c.BoostsTotal)

	// Emergency metrics
	prometheus.MustRegister(c.EmergencyUnstakesTotal)
	prometheus.MustRegister(c.EmergencyPoolsTotal)

	// Treasury metrics
	prometheus.MustRegister(c.TreasuryWithdrawals)
	prometheus.MustRegister(c.TreasuryVolume)

	// API metrics
	prometheus.MustRegister(c.APIRequestsTotal)
	prometheus.MustRegister(c.APIRequestLatency)
	prometheus.MustRegister(c.APIErrorsTotal)

	// System metrics
	prometheus.MustRegister(c.BlockHeight)
	prometheus.MustRegister(c.BlockTime)
}

// ============ Recording Helpers ============

// UpdatePoolMetrics refreshes the per-pool gauges
func (c *Collector) UpdatePoolMetrics(poolID string, staked, boostWeight, liability float64, emergency bool) {
	c.PoolStaked.WithLabelValues(poolID).Set(staked)
	c.PoolBoostWeight.WithLabelValues(poolID).Set(boostWeight)
	c.PoolLiability.WithLabelValues(poolID).Set(liability)
	flag := 0.0
	if emergency {
		flag = 1.0
	}
	c.PoolEmergency.WithLabelValues(poolID).Set(flag)
}

// RecordStake records a stake operation
func (c *Collector) RecordStake(poolID string, amount float64) {
	c.StakesTotal.WithLabelValues(poolID).Inc()
	c.StakeVolume.WithLabelValues(poolID).Add(amount)
}

// RecordUnstake records an unstake operation
func (c *Collector) RecordUnstake(poolID string, amount float64) {
	c.UnstakesTotal.WithLabelValues(poolID).Inc()
	c.UnstakeVolume.WithLabelValues(poolID).Add(amount)
}

// RecordHarvest records a harvest payout
func (c *Collector) RecordHarvest(poolID string, reward float64) {
	c.HarvestsTotal.WithLabelValues(poolID).Inc()
	c.HarvestVolume.WithLabelValues(poolID).Add(reward)
}

// RecordRewardDeposit records a reward top-up
func (c *Collector) RecordRewardDeposit(poolID string, amount float64) {
	c.RewardDeposits.WithLabelValues(poolID).Add(amount)
}

// RecordBoost records a boost application or removal
func (c *Collector) RecordBoost(poolID string, delta int) {
	if delta > 0 {
		c.BoostsTotal.WithLabelValues(poolID).Inc()
	}
	c.BoostsActive.WithLabelValues(poolID).Add(float64(delta))
}

// RecordEmergencyUnstake records an emergency exit with the reward it forfeited
func (c *Collector) RecordEmergencyUnstake(poolID string, forfeited float64) {
	c.EmergencyUnstakesTotal.WithLabelValues(poolID).Inc()
	if forfeited > 0 {
		c.ForfeitedVolume.WithLabelValues(poolID).Add(forfeited)
	}
}

// RecordEmergencyPool records a pool entering emergency
func (c *Collector) RecordEmergencyPool() {
	c.EmergencyPoolsTotal.Inc()
}

// RecordTreasuryWithdraw records a treasury withdrawal
func (c *Collector) RecordTreasuryWithdraw(poolID string, amount float64) {
	c.TreasuryWithdrawals.WithLabelValues(poolID).Inc()
	c.TreasuryVolume.WithLabelValues(poolID).Add(amount)
}

// RecordAPIRequest records an API request
func (c *Collector) RecordAPIRequest(method, path, status string, latencyMs float64) {
	c.APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.APIRequestLatency.WithLabelValues(method, path).Observe(latencyMs)
}

// UpdateSystemMetrics updates system-level metrics
func (c *Collector) UpdateSystemMetrics(blockHeight int64) {
	c.BlockHeight.Set(float64(blockHeight))
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
