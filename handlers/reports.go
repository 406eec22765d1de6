// ABOUTME: Reporting MCP tool handlers
// ABOUTME: Implements get_day, get_stats, export_csv, export_json and get_insights tools
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/export"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ReportHandlers struct {
	app *app.App
}

func NewReportHandlers(a *app.App) *ReportHandlers {
	return &ReportHandlers{app: a}
}

type GetDayInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date YYYY-MM-DD (default today)"`
}

type GetDayOutput struct {
	Date         string              `json:"date"`
	Found        bool                `json:"found"`
	Record       *models.DailyRecord `json:"record,omitempty"`
	Calls        *stats.CallSummary  `json:"calls,omitempty"`
	TrustAverage *float64            `json:"trust_average,omitempty"`
}

func (h *ReportHandlers) GetDay(_ context.Context, _ *mcp.CallToolRequest, input GetDayInput) (*mcp.CallToolResult, GetDayOutput, error) {
	date := defaultDate(h.app, input.Date)
	if _, err := models.ParseDate(date); err != nil {
		return nil, GetDayOutput{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	rec, ok := h.app.Store.Day(date)
	if !ok {
		return nil, GetDayOutput{Date: date}, nil
	}

	out := GetDayOutput{Date: date, Found: true, Record: &rec}
	if rec.Sales != nil && len(rec.Sales.CallLog) > 0 {
		summary := stats.SummarizeCalls(rec.Sales)
		out.Calls = &summary
	}
	if avg, ok := stats.DayTrustAverage(rec); ok {
		out.TrustAverage = &avg
	}
	return nil, out, nil
}

type GetStatsInput struct{}

func (h *ReportHandlers) GetStats(_ context.Context, _ *mcp.CallToolRequest, _ GetStatsInput) (*mcp.CallToolResult, stats.Stats, error) {
	return nil, h.app.Stats(), nil
}

type ExportInput struct{}

type ExportOutput struct {
	Format   string `json:"format"`
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

func (h *ReportHandlers) ExportCSV(_ context.Context, _ *mcp.CallToolRequest, _ ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
	return h.export(export.FormatCSV)
}

func (h *ReportHandlers) ExportJSON(_ context.Context, _ *mcp.CallToolRequest, _ ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
	return h.export(export.FormatJSON)
}

func (h *ReportHandlers) export(format export.Format) (*mcp.CallToolResult, ExportOutput, error) {
	data, err := h.app.Export(format)
	if err != nil {
		return nil, ExportOutput{}, fmt.Errorf("failed to export %s: %w", format, err)
	}
	return nil, ExportOutput{
		Format:   string(format),
		FileName: export.FileName(format, h.app.Now()),
		Content:  string(data),
	}, nil
}

type GetInsightsInput struct{}

type InsightsOutput struct {
	Insights []string `json:"insights"`
	Provider string   `json:"provider"`
}

func (h *ReportHandlers) GetInsights(ctx context.Context, _ *mcp.CallToolRequest, _ GetInsightsInput) (*mcp.CallToolResult, InsightsOutput, error) {
	list, err := h.app.Insights(ctx)
	if err != nil {
		return nil, InsightsOutput{}, err
	}
	return nil, InsightsOutput{Insights: list, Provider: h.app.Summarizer.Name()}, nil
}
