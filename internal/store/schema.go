package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	diagnosticsTable = "diagnostics"
	llmRequestsTable = "llm_requests"
	sequenceTable    = "global_sequence"
)

// eventColumns are shared by every append-only table: a global sequence
// number and a UTC timestamp.
func eventColumns(t *schema.Table, tsName string) *schema.Table {
	return t.
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(&schema.Column{Name: tsName, Type: field.TypeTime})
}

func diagnosticsSchema() *schema.Table {
	t := schema.NewTable(diagnosticsTable).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt64, Increment: true})
	eventColumns(t, "created_at")
	t.
		AddColumn(&schema.Column{Name: "feedback_id", Type: field.TypeString, Unique: true, Size: 64}).
		// request
		AddColumn(&schema.Column{Name: "description", Type: field.TypeString, Size: 2147483647}).
		AddColumn(&schema.Column{Name: "language", Type: field.TypeString, Default: "en"}).
		AddColumn(&schema.Column{Name: "region", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "vehicle_age", Type: field.TypeInt, Default: 0}).
		AddColumn(&schema.Column{Name: "mileage", Type: field.TypeInt, Default: 0}).
		AddColumn(&schema.Column{Name: "season", Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: "media_count", Type: field.TypeInt, Default: 0}).
		// result
		AddColumn(&schema.Column{Name: "problem", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "category", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "symptom_key", Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: "confidence", Type: field.TypeFloat64}).
		AddColumn(&schema.Column{Name: "severity", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "health_impact", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "health_score", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "cost_min", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "cost_max", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "cost_labor", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "cost_parts", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "cost_shipping", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "urgency", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "generic", Type: field.TypeBool, Default: false}).
		AddColumn(&schema.Column{Name: "result", Type: field.TypeString, Size: 2147483647}).
		// feedback
		AddColumn(&schema.Column{Name: "was_accurate", Type: field.TypeBool, Nullable: true}).
		AddColumn(&schema.Column{Name: "user_feedback", Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: "actual_cost", Type: field.TypeFloat64, Nullable: true}).
		AddColumn(&schema.Column{Name: "feedback_at", Type: field.TypeTime, Nullable: true}).
		AddColumn(&schema.Column{Name: "second_opinion", Type: field.TypeString, Nullable: true, Size: 2147483647})

	t.AddIndex("diagnostics_category", false, []string{"category"})
	t.AddIndex("diagnostics_severity", false, []string{"severity"})
	t.AddIndex("diagnostics_region", false, []string{"region"})
	t.AddIndex("diagnostics_created_at", false, []string{"created_at"})
	return t
}

func llmRequestsSchema() *schema.Table {
	t := schema.NewTable(llmRequestsTable).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	eventColumns(t, "timestamp")
	t.
		AddColumn(&schema.Column{Name: "provider", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "model", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "purpose", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "feedback_id", Type: field.TypeString, Default: "", Size: 64}).
		AddColumn(&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0}).
		AddColumn(&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0}).
		AddColumn(&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0}).
		AddColumn(&schema.Column{Name: "success", Type: field.TypeBool}).
		AddColumn(&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: "request_body", Type: field.TypeString, Default: "", Size: 2147483647}).
		AddColumn(&schema.Column{Name: "response_body", Type: field.TypeString, Default: "", Size: 2147483647})

	t.AddIndex("llm_requests_provider", false, []string{"provider"})
	t.AddIndex("llm_requests_purpose", false, []string{"purpose"})
	t.AddIndex("llm_requests_timestamp", false, []string{"timestamp"})
	t.AddIndex("llm_requests_feedback_id", false, []string{"feedback_id"})
	return t
}

func sequenceSchema() *schema.Table {
	return schema.NewTable(sequenceTable).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "next_val", Type: field.TypeInt64, Default: 1})
}

// migrate creates or upgrades all tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, diagnosticsSchema(), llmRequestsSchema(), sequenceSchema()); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
