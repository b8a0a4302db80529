// Command gesturereplay runs a gesture script on a simulated clock and
// prints the recognized events as a table.
//
//	gesturereplay testdata/swipe.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/phanxgames/gesture"
)

func main() {
	verbose := flag.Bool("v", false, "log engine lifecycle at debug level")
	flag.Parse()
	if flag.NArg() != 1 {
		pterm.Error.Println("usage: gesturereplay [-v] script.yaml")
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	script, err := gesture.LoadScript(data)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	var logger *slog.Logger
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	events, err := script.Replay(logger)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	if len(events) == 0 {
		pterm.Info.Println("no events")
		return
	}
	pterm.DefaultTable.WithHasHeader().WithData(eventTable(events)).Render()
}

func eventTable(events []gesture.Event) [][]string {
	data := [][]string{{"t", "zone", "event", "distance", "velocity", "direction", "detail"}}
	if len(events) == 0 {
		return data
	}
	t0 := events[0].Timestamp
	for _, ev := range events {
		data = append(data, []string{
			fmt.Sprintf("+%dms", ev.Timestamp.Sub(t0)/time.Millisecond),
			ev.ZoneID,
			ev.Type.String(),
			fmt.Sprintf("%.1f", ev.Distance),
			formatVelocity(ev.Velocity),
			ev.Direction.String(),
			detail(ev),
		})
	}
	return data
}

func formatVelocity(v float64) string {
	if v == gesture.MaxVelocity {
		return "max"
	}
	return fmt.Sprintf("%.3f", v)
}

func detail(ev gesture.Event) string {
	switch ev.Type {
	case gesture.EventLongPress:
		return "held " + ev.Duration.String()
	case gesture.EventSwipe:
		return "swipe " + ev.SwipeDirection.String()
	case gesture.EventPinch:
		return fmt.Sprintf("scale %.2f (was %.2f) at %.0f,%.0f", ev.Scale, ev.PreviousScale, ev.Center.X, ev.Center.Y)
	case gesture.EventDrag, gesture.EventPreview:
		return fmt.Sprintf("offset %.0f,%.0f", ev.DeltaX, ev.DeltaY)
	}
	return ""
}
