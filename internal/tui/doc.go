// Package tui implements the interactive instance manager using Bubble Tea.
//
// # Architecture
//
// Model owns an ItemList (the instance list) and a Dialog (the add overlay).
// Both are only mutated inside Model.Update, so every state change happens on
// the Bubble Tea event loop.
//
// # Dialog
//
// The add dialog is a small state machine:
//
//	Closed --Open--> Open --enter/OK--> Submitted(text) --> Closed
//	                      --esc/Cancel--> Cancelled --> Closed
//
// While it is open it captures all key and mouse input. Each open cycle
// produces exactly one Outcome.
//
// # Async commands
//
// multipass is never run inside Update. Operations return a tea.Cmd that runs
// the command and reports back with a message:
//
//	loadInstances() → instancesLoadedMsg
//	runOp()         → opResultMsg
//	loadTable()     → tableLoadedMsg
//	loadVersion()   → versionMsg
//	shell()         → shellExitedMsg
package tui
