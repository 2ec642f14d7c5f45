package diagrams

import (
	"github.com/rafiki18/archviz/pkg/diagram"
	"github.com/rafiki18/archviz/pkg/generator"
)

func awsArchitecture() *generator.Graph {
	graphAttrs := baseGraphAttrs("20")
	graphAttrs["splines"] = "spline"

	return &generator.Graph{
		ID: AWSArchitecture,
		Options: diagram.Options{
			Name:       "DivTracker - AWS Architecture",
			Filename:   AWSArchitecture,
			Direction:  diagram.TopToBottom,
			GraphAttrs: graphAttrs,
		},
		Build: func(b *diagram.Builder) error {
			android := b.Node("Android App", diagram.CategoryUsers)
			finnhub := b.Node("Finnhub API", diagram.CategoryExternalAPI)

			var igw, eb, ec2, rds, secrets, iam, logs diagram.NodeRef
			b.Cluster("AWS Cloud", func() {
				b.Cluster("VPC", func() {
					igw = b.Node("Internet\nGateway", diagram.CategoryGateway)

					b.Cluster("Public Subnet", func() {
						b.Node("NAT Gateway", diagram.CategoryNetwork)

						b.Cluster("Elastic Beanstalk", func() {
							eb = b.Node("DivTracker\nEnvironment", diagram.CategoryBeanstalk)
							ec2 = b.Node("EC2 Instance\n(Corretto 17)", diagram.CategoryCompute)
						})
					})

					b.Cluster("Private Subnet", func() {
						rds = b.Node("PostgreSQL 15\n(db.t3.micro)", diagram.CategoryDatabase)
					})
				})

				secrets = b.Node("Secrets Manager\n(JWT, API Keys)", diagram.CategorySecurity)
				iam = b.Node("IAM Role\n(EB Service)", diagram.CategorySecurity)
				logs = b.Node("CloudWatch\nLogs", diagram.CategoryMonitoring)
			})

			b.Edge(android, igw, diagram.Label("HTTPS REST API"))
			b.Edge(igw, eb)
			b.Edge(finnhub, igw, diagram.Label("Webhooks"))
			b.Edge(igw, eb)

			b.Edge(eb, ec2)
			b.Edge(ec2, rds, diagram.Label("JDBC"))
			b.Edge(ec2, secrets, diagram.Label("Get Secrets"))
			b.Edge(ec2, logs, diagram.Label("Logs"))

			b.Edge(eb, iam)
			return b.Err()
		},
	}
}
