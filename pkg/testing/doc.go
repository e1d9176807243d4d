// Package testing provides deterministic test helpers for sheet motion.
//
// # Quick Start
//
// Create a tester around a sheet state, drive it, and make assertions:
//
//	func TestShow(t *testing.T) {
//	    state := sheet.NewState(sheet.Config{})
//	    tester := sheettest.NewSheetTesterWithT(t, state)
//	    anchors, _ := sheet.BuildAnchors(1000, 400, 200)
//	    state.Initialize(anchors, sheet.Midpoint, 100)
//
//	    motion := state.Show()
//	    if err := tester.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	    if !motion.Settled() || !state.IsExpanded() {
//	        t.Errorf("sheet did not settle on expanded")
//	    }
//	}
//
// # Time
//
// The tester installs a [FakeClock] as the animation clock. Each frame
// pumped by PumpFrames or PumpAndSettle advances it by [FrameDuration]:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Gestures
//
// Drag and Fling simulate a user gesture one delta per frame:
//
//	tester.Drag(-20, -20, -20)
//	tester.Fling(-3000, -40)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import sheettest "github.com/go-drift/modalsheet/pkg/testing"
package testing
