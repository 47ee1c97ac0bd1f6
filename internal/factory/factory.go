// Package factory creates source adapters by source type.
package factory

import (
	"fmt"

	"bujichang/spending/internal/cashparser"
	"bujichang/spending/internal/citiparser"
	"bujichang/spending/internal/ctbcparser"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/parser"
	"bujichang/spending/internal/tsibparser"
)

// ParserType names the layout of a source's sheets.
type ParserType string

const (
	Cash ParserType = "cash"
	CTBC ParserType = "ctbc"
	Citi ParserType = "citi"
	TSIB ParserType = "tsib"
)

// ParserTypes lists every supported type.
func ParserTypes() []ParserType {
	return []ParserType{Cash, CTBC, Citi, TSIB}
}

// IsValid reports whether t names a supported type.
func (t ParserType) IsValid() bool {
	for _, known := range ParserTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// GetParserWithLogger returns a new adapter for the given type. Adapters keep
// per-source counters, so callers create one per source.
func GetParserWithLogger(parserType ParserType, logger logging.Logger) (parser.Parser, error) {
	switch parserType {
	case Cash:
		return cashparser.NewAdapter(logger), nil
	case CTBC:
		return ctbcparser.NewAdapter(logger), nil
	case Citi:
		return citiparser.NewAdapter(logger), nil
	case TSIB:
		return tsibparser.NewAdapter(logger), nil
	default:
		return nil, fmt.Errorf("unknown parser type: %s", parserType)
	}
}
