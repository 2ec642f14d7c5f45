package diagrams

import (
	"github.com/rafiki18/archviz/pkg/diagram"
	"github.com/rafiki18/archviz/pkg/generator"
)

// dataFlow shows how market data reaches the Android app: the numbered blue
// steps are the real-time webhook path, the lettered green ones the on-demand
// refresh.
func dataFlow() *generator.Graph {
	return &generator.Graph{
		ID: DataFlow,
		Options: diagram.Options{
			Name:       "DivTracker - Data Flow",
			Filename:   DataFlow,
			Direction:  diagram.LeftToRight,
			GraphAttrs: baseGraphAttrs("18"),
		},
		Build: func(b *diagram.Builder) error {
			spring := func(name string) diagram.NodeRef { return b.Node(name, diagram.CategoryFramework) }

			finnhub := b.Node("Finnhub API", diagram.CategoryExternalAPI)

			var webhook, restAPI, webhookProc, fundamentals, valuation, db, push diagram.NodeRef
			b.Cluster("Backend Processing", func() {
				b.Cluster("Inbound", func() {
					webhook = spring("Webhook\nController")
					restAPI = spring("REST API\n(on-demand)")
				})
				b.Cluster("Processing", func() {
					webhookProc = spring("Webhook\nProcessing")
					fundamentals = spring("Fundamentals\nService")
					valuation = spring("Valuation\nService")
				})
				b.Cluster("Storage", func() {
					db = b.Node("PostgreSQL\n(watchlist, prices)", diagram.CategoryDatabase)
				})
				b.Cluster("Outbound", func() {
					push = spring("Push\nNotification")
				})
			})

			firebase := b.Node("Firebase\nFCM", diagram.CategoryMessaging)
			android := b.Node("Android\nApp", diagram.CategoryUsers)

			b.Edge(finnhub, webhook, flow("1. Trade events\n(webhook)", blue)...)
			b.Edge(webhook, webhookProc, flow("2. Process\ntrades", blue)...)
			b.Edge(webhookProc, db, flow("3. Update\nprices", blue)...)
			b.Edge(webhookProc, push, flow("4. Notify\nusers", blue)...)
			b.Edge(push, firebase, flow("5. Push\nPRICE_UPDATE", blue)...)
			b.Edge(firebase, android, flow("6. Silent\nnotification", blue)...)

			onDemand := func(label string) []diagram.Attr { return flow(label, green, diagram.Dashed()) }
			b.Edge(android, restAPI, onDemand("A. GET /watchlist")...)
			b.Edge(restAPI, fundamentals, onDemand("B. Fetch\nfundamentals")...)
			b.Edge(fundamentals, finnhub, onDemand("C. Get\nmetrics")...)
			b.Edge(fundamentals, valuation, onDemand("D. Calculate\nDCF")...)
			b.Edge(valuation, db, onDemand("E. Store")...)
			b.Edge(db, android, onDemand("F. Return\nenriched data")...)
			return b.Err()
		},
	}
}
