package eval

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/signadot/l5x/debug"
	"github.com/signadot/l5x/errs"
	"github.com/signadot/l5x/tag"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

// Patch applies p to v.  A JSON or YAML list is an RFC 6902 patch, a map
// is an RFC 7386 merge patch.  The result keeps numbers as json.Number.
func Patch(v any, p []byte) (any, error) {
	pj, err := yaml.YAMLToJSON(p)
	if err != nil {
		return nil, fmt.Errorf("%w: patch: %w", errs.ErrValue, err)
	}
	pj = bytes.TrimSpace(pj)
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out []byte
	switch {
	case len(pj) > 0 && pj[0] == '[':
		ops, err := jsonpatch.DecodePatch(pj)
		if err != nil {
			return nil, fmt.Errorf("%w: patch: %w", errs.ErrValue, err)
		}
		out, err = ops.Apply(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrValue, err)
		}
	case len(pj) > 0 && pj[0] == '{':
		out, err = jsonpatch.MergePatch(doc, pj)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrValue, err)
		}
	default:
		return nil, errs.Value("", "patch is neither a list of operations nor a map")
	}
	dec := json.NewDecoder(bytes.NewReader(out))
	dec.UseNumber()
	var res any
	if err := dec.Decode(&res); err != nil {
		return nil, err
	}
	return res, nil
}

// PatchData reads d's value, patches it and writes it back.  Nothing is
// written unless the whole patched value is accepted.
func PatchData(d tag.Data, p []byte) error {
	v, err := d.Value()
	if err != nil {
		return err
	}
	pv, err := Patch(v, p)
	if err != nil {
		return fmt.Errorf("%s: %w", d.Operand(), err)
	}
	if debug.Data() {
		debug.Logf("patch %s: %v\n", d.Operand(), pv)
	}
	return d.SetValue(pv)
}
