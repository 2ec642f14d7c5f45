package diagrams

import (
	"github.com/rafiki18/archviz/pkg/erd"
	"github.com/rafiki18/archviz/pkg/generator"
)

// Schema is the DivTracker database schema.
var Schema = erd.Schema{
	Name: "ER",
	Tables: []erd.Table{
		{
			Name:        "users",
			HeaderColor: "#1976D2",
			BodyColor:   "#E3F2FD",
			Columns: []erd.Column{
				erd.PK("id", "UUID"),
				erd.Col("email", "VARCHAR(255) UNIQUE"),
				erd.Col("password", "VARCHAR(255)"),
				erd.Col("first_name", "VARCHAR(255)"),
				erd.Col("last_name", "VARCHAR(255)"),
				erd.Col("provider", "ENUM (LOCAL, GOOGLE)"),
				erd.Col("provider_id", "VARCHAR(255)"),
				erd.Col("role", "ENUM (USER, ADMIN)"),
				erd.Col("enabled", "BOOLEAN"),
				erd.Col("created_at", "TIMESTAMP"),
				erd.Col("updated_at", "TIMESTAMP"),
			},
		},
		{
			Name:        "watchlist_items",
			HeaderColor: "#388E3C",
			BodyColor:   "#E8F5E9",
			Columns: []erd.Column{
				erd.PK("id", "UUID"),
				erd.FK("user_id", "UUID FK"),
				erd.FK("ticker", "VARCHAR(12)"),
				erd.Col("exchange", "VARCHAR(50)"),
				erd.Col("target_price", "DECIMAL(19,4)"),
				erd.Col("target_pfcf", "DECIMAL(19,4)"),
				erd.Col("notify_when_below_price", "BOOLEAN"),
				erd.Col("notes", "VARCHAR(500)"),
				erd.Col("estimated_fcf_growth_rate", "DECIMAL(5,4)"),
				erd.Col("investment_horizon_years", "INTEGER"),
				erd.Col("discount_rate", "DECIMAL(5,4)"),
				erd.Col("created_at", "TIMESTAMP"),
				erd.Col("updated_at", "TIMESTAMP"),
			},
		},
		{
			Name:        "user_fcm_tokens",
			HeaderColor: "#F57C00",
			BodyColor:   "#FFF3E0",
			Columns: []erd.Column{
				erd.PK("id", "UUID"),
				erd.FK("user_id", "UUID FK"),
				erd.Col("fcm_token", "VARCHAR(500)"),
				erd.Col("device_id", "VARCHAR(255)"),
				erd.Col("device_name", "VARCHAR(255)"),
				erd.Col("platform", "ENUM (ANDROID, IOS, WEB)"),
				erd.Col("is_active", "BOOLEAN"),
				erd.Col("created_at", "TIMESTAMP"),
				erd.Col("updated_at", "TIMESTAMP"),
				erd.Col("last_used_at", "TIMESTAMP"),
			},
		},
		{
			Name:        "instrument_fundamentals",
			HeaderColor: "#7B1FA2",
			BodyColor:   "#F3E5F5",
			Columns: []erd.Column{
				erd.PK("ticker", "VARCHAR(12)"),
				erd.Col("company_name", "VARCHAR(255)"),
				erd.Col("currency", "VARCHAR(10)"),
				erd.Col("sector", "VARCHAR(100)"),
				erd.Col("current_price", "DECIMAL(19,4)"),
				erd.Col("daily_change_percent", "DECIMAL(10,4)"),
				erd.Col("market_capitalization", "DECIMAL(19,2)"),
				erd.Col("week_high_52", "DECIMAL(19,4)"),
				erd.Col("week_low_52", "DECIMAL(19,4)"),
				erd.Col("pe_annual", "DECIMAL(19,4)"),
				erd.Col("beta", "DECIMAL(10,4)"),
				erd.Col("fcf_annual", "DECIMAL(19,2)"),
				erd.Col("fcf_per_share_annual", "DECIMAL(19,4)"),
				erd.Col("dividend_yield", "DECIMAL(10,4)"),
				erd.Col("data_quality", "ENUM"),
				erd.Col("source", "ENUM"),
				erd.Col("last_updated_at", "TIMESTAMP"),
				erd.Col("created_at", "TIMESTAMP"),
			},
		},
		{
			Name:        "market_price_ticks",
			HeaderColor: "#C62828",
			BodyColor:   "#FFEBEE",
			Columns: []erd.Column{
				erd.PK("id", "UUID"),
				erd.FK("ticker", "VARCHAR(12)"),
				erd.Col("price", "DECIMAL(19,6)"),
				erd.Col("volume", "DECIMAL(19,4)"),
				erd.Col("trade_timestamp", "TIMESTAMP"),
				erd.Col("received_at", "TIMESTAMP"),
				erd.Col("source", "VARCHAR(32)"),
			},
		},
	},
	Relations: []erd.Relation{
		{From: "users", To: "watchlist_items", Label: "1:N\nhas many", Cardinality: erd.OneToMany},
		{From: "users", To: "user_fcm_tokens", Label: "1:N\nhas many", Cardinality: erd.OneToMany},
		{From: "watchlist_items", To: "instrument_fundamentals", Label: "N:1\nreferences", Cardinality: erd.ManyToOne, Logical: true},
		{From: "market_price_ticks", To: "instrument_fundamentals", Label: "N:1\nreferences", Cardinality: erd.ManyToOne, Logical: true},
	},
	Legend: []erd.LegendEntry{
		{Symbol: erd.KeyPrimary.Marker(), Meaning: "Primary Key"},
		{Symbol: erd.KeyForeign.Marker(), Meaning: "Foreign Key / Index"},
		{Symbol: "───", Meaning: "Direct Relationship"},
		{Symbol: "- - -", Meaning: "Logical Reference (by ticker)"},
	},
}

func entityRelationship() *generator.Document {
	return &generator.Document{
		ID:     EntityRelationship,
		Source: Schema.DOT,
	}
}
