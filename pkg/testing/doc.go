// Package testing provides a harness for testing elements.
//
// # Quick Start
//
// Create a tester, register a class, mount it and make assertions:
//
//	func TestBadge(t *testing.T) {
//	    tester := elementstest.NewTesterWithT(t)
//	    tester.Define("x-badge", badge)
//	    n := tester.Mount("x-badge", map[string]string{"label": "Inbox"})
//
//	    if !tester.Find(elementstest.ByText("Inbox")).Exists() {
//	        t.Error("expected 'Inbox' text")
//	    }
//
//	    n.SetAttribute("label", "Sent")
//	    tester.Pump()
//	}
//
// Pump runs the loop until it is idle, so every pass requested so far has
// committed and settled its effects when it returns.
//
// # Snapshot Testing
//
// Capture and compare document snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/badge.snapshot.json")
//
// Update snapshots with:
//
//	ELEMENTS_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import elementstest "github.com/go-drift/elements/pkg/testing"
package testing
