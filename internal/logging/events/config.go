package events

import "github.com/atomicstack/tmux-bitflags/internal/logging"

type ConfigTracer struct{}

var Config = ConfigTracer{}

func (ConfigTracer) Loaded(path string, dictionaries []string, warnings int) {
	logging.Trace("config.loaded", map[string]interface{}{
		"path":         path,
		"dictionaries": dictionaries,
		"warnings":     warnings,
	})
}

func (ConfigTracer) Reloaded(path string, dictionaries []string) {
	logging.Trace("config.reloaded", map[string]interface{}{"path": path, "dictionaries": dictionaries})
}

// Dropped records a single entry that could not be used; the rest of its
// section still loads.
func (ConfigTracer) Dropped(section, key string, err error) {
	logging.Warn(err.Error(), map[string]interface{}{"section": section, "key": key})
	logging.Trace("config.entry.dropped", map[string]interface{}{"section": section, "key": key, "error": err.Error()})
}

// SectionFailed records a section that was skipped entirely.
func (ConfigTracer) SectionFailed(section string, err error) {
	logging.Warn(err.Error(), map[string]interface{}{"section": section})
	logging.Trace("config.section.failed", map[string]interface{}{"section": section, "error": err.Error()})
}

func (ConfigTracer) WatchError(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("config.watch.error", map[string]interface{}{"error": err.Error()})
}
