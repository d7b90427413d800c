package storefront

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// RevenueChart renders the admin overview chart: paid revenue bucketed by
// settlement day.
type RevenueChart struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// RevenueChartOption customizes chart rendering.
type RevenueChartOption func(*RevenueChart)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) RevenueChartOption {
	return func(c *RevenueChart) {
		c.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) RevenueChartOption {
	return func(c *RevenueChart) {
		c.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) RevenueChartOption {
	return func(c *RevenueChart) {
		c.assetsHost = host
	}
}

// NewRevenueChart builds the chart renderer.
func NewRevenueChart(options ...RevenueChartOption) *RevenueChart {
	c := &RevenueChart{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// RevenueBucket is a single bar: settlement day and the rupees collected.
type RevenueBucket struct {
	Day   string
	Total int
}

// BucketRevenue sums paid orders per settlement day, oldest day first. Only
// paid orders count; created and failed orders contribute nothing.
func BucketRevenue(orders []Order) []RevenueBucket {
	totals := make(map[string]int)
	for _, order := range orders {
		if order.Status != OrderPaid {
			continue
		}
		day := order.Date.Format(time.DateOnly)
		totals[day] += order.Amount
	}
	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Strings(days)
	buckets := make([]RevenueBucket, len(days))
	for i, day := range days {
		buckets[i] = RevenueBucket{Day: day, Total: totals[day]}
	}
	return buckets
}

// RenderHTML returns the chart markup for the given orders. Renders go
// through the cache keyed by order contents.
func (c *RevenueChart) RenderHTML(orders []Order) (string, error) {
	renderFn := func() (string, error) {
		return c.render(BucketRevenue(orders))
	}
	if c.cache != nil {
		key := fmt.Sprintf("revenue:%s:%s", c.theme, ordersHash(orders))
		return c.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (c *RevenueChart) render(buckets []RevenueBucket) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(c.globalChartOptions("Revenue", "Paid orders per day")...)

	xAxis := make([]string, len(buckets))
	data := make([]opts.BarData, len(buckets))
	for i, bucket := range buckets {
		xAxis[i] = bucket.Day
		data[i] = opts.BarData{Name: bucket.Day, Value: bucket.Total}
	}
	bar.SetXAxis(xAxis)
	bar.AddSeries("Revenue", data)
	return renderChart(bar)
}

func (c *RevenueChart) globalChartOptions(title, subtitle string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  c.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if c.assetsHost != "" {
		initOpts.AssetsHost = c.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
