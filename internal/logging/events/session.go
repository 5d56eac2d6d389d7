package events

import "github.com/atomicstack/tmux-bitflags/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Open(dictionary string) {
	logging.Trace("session.open", map[string]interface{}{"dictionary": dictionary})
}

// Suggest records one transition. syntax is the notation the input was
// typed in, empty when the input did not parse.
func (SessionTracer) Suggest(dictionary, input, syntax string, value uint64, filter, base string, entries int) {
	logging.Trace("session.suggest", map[string]interface{}{
		"dictionary": dictionary,
		"input":      input,
		"syntax":     syntax,
		"value":      value,
		"filter":     filter,
		"base":       base,
		"entries":    entries,
	})
}

func (SessionTracer) Stale(dictionary string, err error) {
	payload := map[string]interface{}{"dictionary": dictionary}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.stale", payload)
}

func (SessionTracer) Back(levelID string) {
	logging.Trace("session.back", map[string]interface{}{"level": levelID})
}
