package diagram_test

import (
	"fmt"

	"github.com/rafiki18/archviz/pkg/diagram"
)

func ExampleBuilder() {
	b := diagram.New(diagram.Options{Name: "Example", Direction: diagram.LeftToRight})
	client := b.Node("Android App", diagram.CategoryUsers)

	var api diagram.NodeRef
	_ = b.Cluster("Backend", func() {
		api = b.Node("REST API", diagram.CategoryFramework)
	})
	_ = b.Edge(client, api, diagram.Label("HTTPS"))

	d, err := b.Diagram()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("%d nodes, %d edges, %d clusters\n", d.NodeCount(), d.EdgeCount(), len(d.Clusters()))
	// Output:
	// 2 nodes, 1 edges, 1 clusters
}
