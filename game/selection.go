package game

import (
	"fmt"

	"github.com/pthm-cable/blobs/components"
)

// selectSlack widens the click target around small agents.
const selectSlack = 4.0

// AgentAt returns the ID of the agent closest to (x, y) whose disc, widened
// by a few pixels, contains the point.
func (g *Game) AgentAt(x, y float64) (uint32, bool) {
	var (
		bestID   uint32
		bestDist float64
		found    bool
	)
	for _, a := range g.world.Agents() {
		dx, dy := a.Pos.X-x, a.Pos.Y-y
		d := dx*dx + dy*dy
		reach := a.Body.Radius + selectSlack
		if d > reach*reach {
			continue
		}
		if !found || d < bestDist {
			bestID, bestDist, found = a.Org.ID, d, true
		}
	}
	return bestID, found
}

// InspectField is one formatted line of the agent inspector.
type InspectField struct {
	Label string
	Text  string
	Bar   float64 // fill fraction in [0, 1]; negative when the field is not a bar
}

// Inspection describes one agent for the inspector panel.
type Inspection struct {
	ID      uint32
	Parent  uint32
	Species string
	Fields  []InspectField
}

// Inspect describes the agent with the given ID, if it still exists.
func (g *Game) Inspect(id uint32) (Inspection, bool) {
	for _, a := range g.world.Agents() {
		if a.Org.ID != id {
			continue
		}

		in := Inspection{ID: id, Parent: a.Org.Parent, Species: a.Species.Name}
		for _, fd := range components.AgentFieldDescriptors() {
			v := components.AgentValue(a.Vel, a.Vitals, a.Org, a.Brain, fd.ID)
			f := InspectField{Label: fd.Label, Text: fmt.Sprintf(fd.Format, v), Bar: -1}
			if fd.IsBar {
				hi := fd.Max
				if fd.ID == "energy" {
					hi = a.Species.MaxEnergy
				}
				f.Bar = min(max((v-fd.Min)/(hi-fd.Min), 0), 1)
			}
			in.Fields = append(in.Fields, f)
		}

		if ls := g.lifetimeTracker.Get(id); ls != nil {
			in.Fields = append(in.Fields,
				InspectField{Label: "Children", Text: fmt.Sprint(ls.Children), Bar: -1},
				InspectField{Label: "Meals", Text: fmt.Sprint(ls.Meals), Bar: -1},
				InspectField{Label: "Stolen", Text: fmt.Sprintf("%.0f", ls.EnergyStolen), Bar: -1},
			)
		}
		return in, true
	}
	return Inspection{}, false
}
