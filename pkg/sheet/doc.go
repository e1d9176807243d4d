// Package sheet implements the motion and state core of a draggable bottom
// sheet: a panel that slides up from the bottom of a container, snaps
// between Hidden, Expanded and Full, follows drags and flings, and shares
// scroll deltas with scrollable content inside it.
//
// # Components
//
//   - [AnchorMap]: the offsets each [Value] settles at, built from the
//     container and content heights by [BuildAnchors].
//   - [ComputeTarget]: picks the anchor a release settles on from its offset
//     and velocity.
//   - [DragCoordinator]: the single owner of the continuous offset. It clamps
//     the offset to the anchor bounds and reports overflow.
//   - [State]: the state machine. It snaps, animates, follows drags and
//     retargets when the anchors change.
//   - [NestedScrollBridge]: hands nested scroll deltas and flings to the
//     State.
//
// # Frames
//
// Animations run on package animation tickers. The host calls
// animation.StepTickers once per frame on the goroutine that owns the State;
// asynchronous operations return a [Motion] that completes once the sheet
// has settled.
//
//	state := sheet.NewState(sheet.Config{InitialValue: sheet.Hidden})
//	anchors, err := sheet.BuildAnchors(containerHeight, contentHeight, reserve)
//	if err != nil {
//	    return err
//	}
//	if err := state.Initialize(anchors, sheet.Midpoint, velocityThreshold); err != nil {
//	    return err
//	}
//	state.Show()
//
//	// every frame:
//	animation.StepTickers()
//	render(state.Offset())
package sheet
