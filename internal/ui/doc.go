// Package ui contains the Bubble Tea program behind the bit flag popup.
// Model focuses on message orchestration while dedicated helpers own
// navigation, input, rendering and reloads.
//
// Message flow:
//   - Bubble Tea invokes Model.Update, which routes each tea.Msg through a
//     typed handler registry so key presses, copy results and backend
//     reloads are each handled by a focused function.
//   - Navigation helpers (navigation.go) manage the stack of levels. The
//     root level lists dictionaries, decomposition levels show one
//     transition of the chain and action levels list copy variants for a
//     value view or a flag.
//   - Input helpers (input.go) edit the prompt. On the root level the prompt
//     is a fuzzy filter; on decomposition levels it is the value, and every
//     edit re-runs session.Suggest against the current catalog snapshot.
//
// State ownership:
//   - Level state lives in internal/ui/state.Level, which tracks items,
//     the prompt, the cursor and the viewport.
//   - The catalog is read through a flags.Store so a reload is picked up by
//     the next keystroke without touching levels that are not visible.
//   - Copies run through the internal/ui/command bus and end the program once
//     the clipboard writer returns.
//
// Backend interactions:
//   - A backend.Watcher streams reloaded dictionary files; applyBackendEvent
//     swaps the store and rebuilds every level on the stack, marking levels
//     whose dictionary disappeared.
package ui
