package dictfile

import (
	"strings"

	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"gopkg.in/ini.v1"
)

func loadINI(path string) (Result, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: false,
	}, path)
	if err != nil {
		return Result{}, err
	}
	res := Result{Debug: file.Section("main").Key("debug").MustBool(false)}
	dicts := make([]*flags.Dictionary, 0, len(file.Sections()))
	for _, section := range file.Sections() {
		name := section.Name()
		if !strings.HasPrefix(name, SectionPrefix) {
			continue
		}
		b := newBuilder(name, strings.TrimPrefix(name, SectionPrefix))
		for _, key := range section.Keys() {
			b.add(key.Name(), key.String())
		}
		d, warnings := b.build()
		res.Warnings = append(res.Warnings, warnings...)
		if d != nil {
			dicts = append(dicts, d)
		}
	}
	res.Catalog = flags.NewCatalog(dicts...)
	return res, nil
}
