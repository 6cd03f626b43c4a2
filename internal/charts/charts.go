package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ivanoskov/fivest/internal/model"
	"github.com/ivanoskov/fivest/internal/service"
)

// ChartGenerator генерирует графики аналитики в PNG
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// Палитра категорий; неизвестные категории получают цвет по умолчанию
var categoryColors = map[model.Category]drawing.Color{
	model.CategoryFood:          {R: 0xFF, G: 0x6B, B: 0x6B, A: 255},
	model.CategoryTransport:     {R: 0x4E, G: 0xCD, B: 0xC4, A: 255},
	model.CategoryBills:         {R: 0x45, G: 0xB7, B: 0xD1, A: 255},
	model.CategoryShopping:      {R: 0x96, G: 0xCE, B: 0xB4, A: 255},
	model.CategoryEntertainment: {R: 0xFF, G: 0xEA, B: 0xA7, A: 255},
	model.CategoryHealthcare:    {R: 0xDD, G: 0xA0, B: 0xDD, A: 255},
	model.CategoryEducation:     {R: 0x98, G: 0xD8, B: 0xC8, A: 255},
	model.CategoryOther:         {R: 0xF7, G: 0xDC, B: 0x6F, A: 255},
}

var defaultColor = drawing.Color{R: 0x88, G: 0x84, B: 0xD8, A: 255}

func colorFor(category model.Category) drawing.Color {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return defaultColor
}

func amountFormatter(v interface{}) string {
	return fmt.Sprintf("₺%.0f", v.(float64))
}

// GenerateCategoryBarChart создает столбчатую диаграмму расходов по категориям
func (g *ChartGenerator) GenerateCategoryBarChart(report *service.Report) ([]byte, error) {
	if len(report.CategoryTotals) == 0 {
		return nil, nil // Возвращаем nil, если нет данных для графика
	}

	bars := make([]chart.Value, 0, len(report.CategoryTotals))
	for _, ct := range report.CategoryTotals {
		bars = append(bars, chart.Value{
			Label: string(ct.Category),
			Value: ct.Amount,
			Style: chart.Style{
				StrokeColor: colorFor(ct.Category),
				FillColor:   colorFor(ct.Category),
			},
		})
	}

	graph := chart.BarChart{
		Title: "Spending by Category",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:    800,
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: amountFormatter,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category bar chart: %w", err)
	}

	return buffer.Bytes(), nil
}

// GenerateDailyTrendChart создает график дневных расходов за период
func (g *ChartGenerator) GenerateDailyTrendChart(report *service.Report) ([]byte, error) {
	if len(report.DailyTotals) == 0 {
		return nil, nil // Возвращаем nil, если нет данных для графика
	}

	xValues := make([]float64, len(report.DailyTotals))
	yValues := make([]float64, len(report.DailyTotals))
	ticks := make([]chart.Tick, len(report.DailyTotals))
	for i, dt := range report.DailyTotals {
		xValues[i] = float64(i)
		yValues[i] = dt.Amount
		ticks[i] = chart.Tick{Value: float64(i), Label: dt.Day}
	}

	graph := chart.Chart{
		Title: "Daily Spending Trends",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: amountFormatter,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Expenses",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render daily trend chart: %w", err)
	}

	return buffer.Bytes(), nil
}

// GenerateCategoryPieChart создает круговую диаграмму распределения расходов
func (g *ChartGenerator) GenerateCategoryPieChart(report *service.Report) ([]byte, error) {
	if len(report.CategoryTotals) == 0 || report.TotalSpent <= 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(report.CategoryTotals))
	for _, ct := range report.CategoryTotals {
		percentage := ct.Amount / report.TotalSpent * 100
		// Добавляем только категории с существенной долей (>1%)
		if percentage <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: ₺%.0f (%.1f%%)", ct.Category, ct.Amount, percentage),
			Value: ct.Amount,
			Style: chart.Style{
				StrokeColor: colorFor(ct.Category),
				FillColor:   colorFor(ct.Category),
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  "Expense Distribution",
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie chart: %w", err)
	}

	return buffer.Bytes(), nil
}
