package dictfile

import (
	"fmt"
	"os"

	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

type hclFile struct {
	Debug        bool            `hcl:"debug,optional"`
	Dictionaries []hclDictionary `hcl:"dictionary,block"`
}

type hclDictionary struct {
	Name  string         `hcl:"name,label"`
	Flags hcl.Expression `hcl:"flags"`
}

func loadHCL(path string) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	var file hclFile
	if err := hclsimple.Decode(path, src, nil, &file); err != nil {
		return Result{}, err
	}
	res := Result{Debug: file.Debug}
	dicts := make([]*flags.Dictionary, 0, len(file.Dictionaries))
	for _, block := range file.Dictionaries {
		d, warnings := decodeDictionary(block)
		res.Warnings = append(res.Warnings, warnings...)
		if d != nil {
			dicts = append(dicts, d)
		}
	}
	res.Catalog = flags.NewCatalog(dicts...)
	return res, nil
}

func decodeDictionary(block hclDictionary) (*flags.Dictionary, []error) {
	section := fmt.Sprintf("dictionary %q", block.Name)
	val, diags := block.Flags.Value(nil)
	if diags.HasErrors() {
		return nil, []error{&SectionError{Section: section, Err: diags}}
	}
	ty := val.Type()
	if val.IsNull() || !(ty.IsObjectType() || ty.IsMapType()) {
		return nil, []error{&SectionError{Section: section, Err: fmt.Errorf("flags must be an object, got %s", ty.FriendlyName())}}
	}
	b := newBuilder(section, block.Name)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		key := k.AsString()
		label, err := convert.Convert(v, cty.String)
		if err != nil || label.IsNull() || !label.IsKnown() {
			b.warnings = append(b.warnings, &ParseError{Section: section, Key: key, Reason: "has a label that is not a string"})
			continue
		}
		b.add(key, label.AsString())
	}
	return b.build()
}
