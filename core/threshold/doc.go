// Package threshold implements the gated read-then-write flow for the alert
// threshold: Idle → Loading → {Loaded, Failed}, re-entered on each explicit
// Fetch or Submit.
//
// The workflow composes the other core components. The access gate is
// consulted before every call (a denial settles into Failed without I/O),
// the api client performs exactly one classified attempt, and the session
// store supplies the snapshot both checks run against. Local input
// validation happens before any of that, so an empty or non-numeric value
// never reaches the network.
//
//	wf := threshold.NewWorkflow(client, store)
//	wf.Fetch(ctx)
//
//	wf.SetInput("25.5")
//	wf.Submit(ctx)
//
//	if st := wf.State(); st.Phase == threshold.Failed {
//		show(st.Message) // previously loaded value stays in st.Value
//	}
//
// Fetch and Submit block until the call settles; interactive consumers run
// them from a goroutine and observe transitions through Watch.
package threshold
