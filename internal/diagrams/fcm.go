package diagrams

import (
	"github.com/rafiki18/archviz/pkg/diagram"
	"github.com/rafiki18/archviz/pkg/generator"
)

func fcmFlow() *generator.Graph {
	return &generator.Graph{
		ID: FCMFlow,
		Options: diagram.Options{
			Name:       "DivTracker - Push Notifications Flow",
			Filename:   FCMFlow,
			Direction:  diagram.TopToBottom,
			GraphAttrs: baseGraphAttrs("18"),
		},
		Build: func(b *diagram.Builder) error {
			spring := func(name string) diagram.NodeRef { return b.Node(name, diagram.CategoryFramework) }
			kotlin := func(name string) diagram.NodeRef { return b.Node(name, diagram.CategoryKotlin) }

			finnhub := b.Node("Finnhub\nWebhooks", diagram.CategoryExternalAPI)

			var deviceCtrl, tokenSvc, webhookProc, scheduler, pushSvc, firebaseSvc, db diagram.NodeRef
			b.Cluster("Backend (Spring Boot)", func() {
				b.Cluster("Token Management", func() {
					deviceCtrl = spring("DeviceController\nPOST /devices/register")
					tokenSvc = spring("FcmTokenService")
				})
				b.Cluster("Notification Triggers", func() {
					webhookProc = spring("WebhookProcessing\nService")
					scheduler = spring("DailySummary\nScheduler")
				})
				b.Cluster("Notification Sending", func() {
					pushSvc = spring("PushNotification\nService")
					firebaseSvc = spring("FirebasePush\nService")
				})
				db = b.Node("user_fcm_tokens\ntable", diagram.CategoryDatabase)
			})

			firebase := b.Node("Firebase\nCloud Messaging", diagram.CategoryMessaging)

			var messaging, priceHandler, alertHandler, summaryHandler, dao diagram.NodeRef
			b.Cluster("Android App", func() {
				messaging = kotlin("DivTrackerMessaging\nService")
				b.Cluster("Handlers", func() {
					priceHandler = kotlin("handlePriceUpdate()\n[Silent - updates Room DB]")
					alertHandler = kotlin("handlePriceAlert()\n[Shows notification]")
					summaryHandler = kotlin("handleDailySummary()\n[Shows notification]")
				})
				dao = kotlin("WatchlistDao")
			})

			user := b.Node("User", diagram.CategoryUsers)

			// Token registration
			b.Edge(user, messaging, flow("1. App start", purple)...)
			b.Edge(messaging, deviceCtrl, flow("2. onNewToken()", purple)...)
			b.Edge(deviceCtrl, tokenSvc, flow("3. Save token", purple)...)
			b.Edge(tokenSvc, db)

			// Webhook notifications
			b.Edge(finnhub, webhookProc, flow("4. Trade event", blue)...)
			b.Edge(webhookProc, db, flow("5. Get tokens\nfor ticker", blue)...)
			b.Edge(webhookProc, pushSvc, flow("6. Send\nnotifications", blue)...)
			b.Edge(pushSvc, firebaseSvc)
			b.Edge(firebaseSvc, firebase, flow("7. FCM API", blue)...)

			// Daily summary
			b.Edge(scheduler, pushSvc, flow("22:00 CET", orange, diagram.Dashed())...)

			// Delivery
			b.Edge(firebase, messaging, flow("8. Push message", green)...)
			b.Edge(messaging, priceHandler, flow("PRICE_UPDATE", green)...)
			b.Edge(messaging, alertHandler, flow("PRICE_ALERT", red)...)
			b.Edge(messaging, summaryHandler, flow("DAILY_SUMMARY", orange)...)
			b.Edge(priceHandler, dao, flow("Update local DB", green)...)
			return b.Err()
		},
	}
}
