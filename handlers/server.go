// ABOUTME: MCP server construction for the operations log
// ABOUTME: Registers every tool, resource and prompt against one App
package handlers

import (
	"github.com/harperreed/opslog/app"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the MCP server exposing the log to agents.
func NewServer(a *app.App, version string) *mcp.Server {
	logHandlers := NewLogHandlers(a)
	contactHandlers := NewContactHandlers(a)
	reportHandlers := NewReportHandlers(a)
	resourceHandlers := NewResourceHandlers(a)
	promptHandlers := NewPromptHandlers(a)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "opslog",
		Version: version,
	}, nil)

	// Daily sections
	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_sales",
		Description: "Merge sales figures (leads, meetings, deals, revenue, deal stage) into a day",
	}, logHandlers.LogSales)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_call",
		Description: "Append a sales call to a day's call log and refresh the derived call counters",
	}, logHandlers.LogCall)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_network",
		Description: "Merge networking counters (reconnections, introductions) into a day",
	}, logHandlers.LogNetwork)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_finance",
		Description: "Merge finance figures (revenue, operating expenses, MRR, churn, cash) into a day",
	}, logHandlers.LogFinance)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_productivity",
		Description: "Merge focus hours, tasks, energy and stress into a day",
	}, logHandlers.LogProductivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_gym",
		Description: "Record a workout for a day",
	}, logHandlers.LogGym)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_notes",
		Description: "Set the free-form notes for a day",
	}, logHandlers.LogNotes)

	// Network
	mcp.AddTool(server, &mcp.Tool{
		Name:        "acquire_contact",
		Description: "Add a new business contact to the directory through the day's network log",
	}, contactHandlers.AcquireContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_assessment",
		Description: "Log a five-dimension trust assessment for a contact and update their trust score",
	}, contactHandlers.LogAssessment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search contacts by name, company or industry, optionally filtered by tier, highest trust first",
	}, contactHandlers.FindContacts)

	// Reports
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_day",
		Description: "Get everything logged for one date, with call analytics",
	}, reportHandlers.GetDay)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get the dashboard totals across every logged day",
	}, reportHandlers.GetStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_csv",
		Description: "Export one CSV row per logged day",
	}, reportHandlers.ExportCSV)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_json",
		Description: "Export the full state with the latest insights as JSON",
	}, reportHandlers.ExportJSON)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_insights",
		Description: "Get AI-generated strategic insights (requires consent)",
	}, reportHandlers.GetInsights)

	server.AddResource(&mcp.Resource{
		URI:         "opslog://stats",
		Name:        "stats",
		Description: "Dashboard totals",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "opslog://contacts",
		Name:        "contacts",
		Description: "The contact directory in acquisition order",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "opslog://days/{date}",
		Name:        "day",
		Description: "The record logged for one date",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddPrompt(&mcp.Prompt{
		Name:        "weekly-review",
		Description: "Review the seven days ending on a date",
		Arguments: []*mcp.PromptArgument{
			{Name: "end_date", Description: "Last day of the week (default today)"},
		},
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "relationship-review",
		Description: "Review one contact's trust history and suggest next steps",
		Arguments: []*mcp.PromptArgument{
			{Name: "contact_id", Description: "Contact ID", Required: true},
		},
	}, promptHandlers.GetPrompt)

	return server
}

func defaultDate(a *app.App, d string) string {
	if d == "" {
		return a.Today()
	}
	return d
}
