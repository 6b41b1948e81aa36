package window_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/window"
)

func printIDs(s window.State) {
	ids := make([]string, 0, len(s.Blueprints))
	for _, e := range s.Blueprints {
		ids = append(ids, fmt.Sprintf("%s(%d)", e.Blueprint.ID, len(e.Blueprint.Contents)))
	}
	fmt.Println(strings.Join(ids, " "))
}

func ExampleReduce() {
	frame := blueprint.NewFrame(0, 0, 10, 10)

	s := window.ReduceAll(window.State{IsShowingBlueprints: true},
		window.Draw{Blueprint: blueprint.New("header", frame)},
		window.Draw{Blueprint: blueprint.New("footer")},
	)
	printIDs(s)

	// Redrawing replaces the blueprint in place.
	s = window.Reduce(s, window.Draw{Blueprint: blueprint.New("header", frame, frame)})
	printIDs(s)

	s = window.Reduce(s, window.Erase{ID: "header"})
	printIDs(s)
	// Output:
	// header(1) footer(0)
	// header(2) footer(0)
	// footer(0)
}

func ExampleState_Visible() {
	s := window.ReduceAll(window.State{IsShowingBlueprints: true},
		window.Draw{Blueprint: blueprint.New("a")},
		window.Draw{Blueprint: blueprint.New("b")},
	)
	fmt.Println(len(s.Visible()))

	s = window.Reduce(s, window.HideBlueprints{})
	fmt.Println(len(s.Visible()), len(s.Blueprints))
	// Output:
	// 2
	// 0 2
}
