// ABOUTME: Trust network graph generation with graphviz
// ABOUTME: A hub node for the operator with one edge per contact labelled by trust score
package viz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/opslog/models"
)

const hubName = "you"

var tierColors = map[models.NetworkTier]string{
	models.TierStrategic: "gold",
	models.TierKey:       "lightblue",
	models.TierRegular:   "lightgrey",
	models.TierCasual:    "white",
}

// GenerateTrustGraph returns the DOT source of the trust network.
func GenerateTrustGraph(state *models.UserState) (string, error) {
	var buf bytes.Buffer
	if err := RenderTrustGraph(context.Background(), state, graphviz.XDOT, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderTrustGraph writes the trust network in any graphviz output format.
func RenderTrustGraph(ctx context.Context, state *models.UserState, format graphviz.Format, w io.Writer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLayout("neato")
	graph.SetRankDir(cgraph.LRRank)
	graph.SetLabel("Trust Network")

	hub, err := graph.CreateNodeByName(hubName)
	if err != nil {
		return fmt.Errorf("failed to create hub node: %w", err)
	}
	hub.SetShape("doublecircle")

	for _, c := range state.Contacts {
		node, err := graph.CreateNodeByName(c.ID)
		if err != nil {
			return fmt.Errorf("failed to create node for %s: %w", c.ID, err)
		}
		label := c.FullName
		if c.Company != "" {
			label += "\n" + c.Company
		}
		node.SetLabel(label)
		node.SetShape("box")
		node.SetStyle("filled")
		color, ok := tierColors[c.Tier]
		if !ok {
			color = "white"
		}
		node.SetFillColor(color)

		edge, err := graph.CreateEdgeByName(c.ID, hub, node)
		if err != nil {
			return fmt.Errorf("failed to create edge for %s: %w", c.ID, err)
		}
		edge.SetLabel(strconv.Itoa(c.LastTrustScore))
		if c.LastTrustScore < 40 {
			edge.SetStyle("dashed")
		}
	}

	if err := gv.Render(ctx, graph, format, w); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}
	return nil
}
