package session

import (
	"encoding/base64"
	"fmt"

	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/numeral"
	"github.com/vmihailenco/msgpack/v5"
)

const tokenVersion = 1

type tokenV1 struct {
	Version    int    `msgpack:"v"`
	Dictionary string `msgpack:"d"`
	Value      uint64 `msgpack:"x"`
	Chosen     bool   `msgpack:"c"`
	Filter     int8   `msgpack:"f"`
	Base       int8   `msgpack:"b"`
}

// Token encodes s as a compact string for hosts that can only carry text
// between selections.
func (s State) Token() string {
	data, err := msgpack.Marshal(tokenV1{
		Version:    tokenVersion,
		Dictionary: s.Dictionary,
		Value:      s.Value,
		Chosen:     s.Chosen,
		Filter:     int8(s.Filter),
		Base:       int8(s.Base),
	})
	if err != nil {
		// a flat struct of scalars always encodes
		panic(fmt.Sprintf("encode state token: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// ParseToken decodes a string produced by State.Token. Any malformed or
// unsupported token yields a StaleReferenceError.
func ParseToken(token string) (State, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return State{}, &StaleReferenceError{Err: fmt.Errorf("decode token: %w", err)}
	}
	var raw tokenV1
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return State{}, &StaleReferenceError{Err: fmt.Errorf("decode token: %w", err)}
	}
	if raw.Version != tokenVersion {
		return State{}, &StaleReferenceError{Err: fmt.Errorf("unsupported token version %d", raw.Version)}
	}
	filter := flags.Filter(raw.Filter)
	if filter != flags.FilterNone && filter != flags.FilterOnlyTrue && filter != flags.FilterOnlyFalse {
		return State{}, &StaleReferenceError{Dictionary: raw.Dictionary, Err: fmt.Errorf("invalid filter %d", raw.Filter)}
	}
	base := numeral.Base(raw.Base)
	if !base.Valid() {
		return State{}, &StaleReferenceError{Dictionary: raw.Dictionary, Err: fmt.Errorf("invalid base %d", raw.Base)}
	}
	return State{
		Dictionary: raw.Dictionary,
		Value:      raw.Value,
		Chosen:     raw.Chosen,
		Filter:     filter,
		Base:       base,
	}, nil
}
