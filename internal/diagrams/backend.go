package diagrams

import (
	"github.com/rafiki18/archviz/pkg/diagram"
	"github.com/rafiki18/archviz/pkg/generator"
)

func backendComponents() *generator.Graph {
	return &generator.Graph{
		ID: BackendComponents,
		Options: diagram.Options{
			Name:       "DivTracker - Backend Components",
			Filename:   BackendComponents,
			Direction:  diagram.LeftToRight,
			GraphAttrs: baseGraphAttrs("18"),
			NodeAttrs:  diagram.Attrs{"fontsize": "12"},
		},
		Build: func(b *diagram.Builder) error {
			android := b.Node("Android App", diagram.CategoryUsers)
			finnhubAPI := b.Node("Finnhub API", diagram.CategoryExternalAPI)
			firebase := b.Node("Firebase FCM", diagram.CategoryMessaging)

			java := func(name string) diagram.NodeRef { return b.Node(name, diagram.CategoryJava) }
			spring := func(name string) diagram.NodeRef { return b.Node(name, diagram.CategoryFramework) }

			var (
				authCtrl, watchlistCtrl, webhookCtrl, deviceCtrl, tickerCtrl     diagram.NodeRef
				authSvc, watchlistSvc, valuationSvc, webhookSvc, pushSvc, fcmSvc diagram.NodeRef
				finnhubClient, fundamentalsSvc, userRepo, watchlistRepo, fcmRepo diagram.NodeRef
			)
			b.Cluster("Spring Boot Application", func() {
				b.Cluster("Controllers", func() {
					authCtrl = java("AuthController")
					watchlistCtrl = java("WatchlistController")
					webhookCtrl = java("FinnhubWebhookController")
					deviceCtrl = java("DeviceController")
					tickerCtrl = java("TickerSearchController")
				})

				b.Cluster("Services", func() {
					authSvc = spring("AuthService")
					watchlistSvc = spring("WatchlistService")
					valuationSvc = spring("WatchlistValuationService")
					webhookSvc = spring("WebhookProcessingService")
					pushSvc = spring("PushNotificationService")
					fcmSvc = spring("FcmTokenService")
				})

				b.Cluster("Market Data", func() {
					finnhubClient = java("FinnhubClient")
					fundamentalsSvc = spring("FundamentalsService")
				})

				b.Cluster("Repositories", func() {
					userRepo = java("UserRepository")
					watchlistRepo = java("WatchlistItemRepository")
					fcmRepo = java("UserFcmTokenRepository")
				})

				b.Cluster("Security", func() {
					spring("JwtAuthFilter")
					spring("SecurityConfig")
				})
			})

			db := b.Node("PostgreSQL", diagram.CategoryDatabase)

			// Request paths
			b.Chain(android, authCtrl, authSvc, userRepo)
			b.Chain(android, watchlistCtrl, watchlistSvc, watchlistRepo)
			b.Chain(android, deviceCtrl, fcmSvc, fcmRepo)
			b.Chain(android, tickerCtrl, finnhubClient)

			b.Chain(finnhubAPI, webhookCtrl, webhookSvc)

			b.Edge(watchlistSvc, valuationSvc)
			b.Chain(valuationSvc, fundamentalsSvc, finnhubClient, finnhubAPI)

			b.Chain(webhookSvc, pushSvc, firebase)
			b.Edge(pushSvc, fcmSvc)

			for _, repo := range []diagram.NodeRef{userRepo, watchlistRepo, fcmRepo} {
				b.Edge(repo, db)
			}
			return b.Err()
		},
	}
}
