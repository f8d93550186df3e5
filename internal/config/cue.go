package config

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/tapesort/internal/tape"
)

// delaySchema is the closed CUE definition every .cue delay config must
// satisfy.
const delaySchema = `
#Delays: {
	move_delay:   int & >=0
	read_delay:   int & >=0
	write_delay:  int & >=0
	rewind_delay: int & >=0
}
`

type cueDelays struct {
	Move   int64 `json:"move_delay"`
	Read   int64 `json:"read_delay"`
	Write  int64 `json:"write_delay"`
	Rewind int64 `json:"rewind_delay"`
}

func parseCUE(path string, data []byte) (map[string]int64, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(delaySchema)
	if err := schema.Err(); err != nil {
		return nil, tape.NewConfigurationError("invalid delay schema", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, tape.NewConfigurationError("failed to parse CUE delay config", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Delays")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, tape.NewConfigurationError("delay config does not match schema", err)
	}

	var doc cueDelays
	if err := unified.Decode(&doc); err != nil {
		return nil, tape.NewConfigurationError("failed to decode CUE delay config", err)
	}
	return map[string]int64{
		KeyMoveDelay:   doc.Move,
		KeyReadDelay:   doc.Read,
		KeyWriteDelay:  doc.Write,
		KeyRewindDelay: doc.Rewind,
	}, nil
}
