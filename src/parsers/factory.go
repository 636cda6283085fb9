package parsers

import (
	"fmt"

	"github.com/crisrui7/hk-insurance-dividend/src/parsers/aia"
	"github.com/crisrui7/hk-insurance-dividend/src/parsers/ctf"
	"github.com/crisrui7/hk-insurance-dividend/src/parsers/prudential"
)

// Sources lists the insurer feeds a parser exists for.
var Sources = []string{"ctf", "aia", "prudential"}

func GetParser(source string, opts Options) (Parser, error) {
	switch source {
	case "ctf":
		return ctf.NewParser(opts.DataYear, opts.LastUpdated), nil
	case "aia":
		return aia.NewParser(opts.DataYear, opts.LastUpdated), nil
	case "prudential":
		return prudential.NewParser(opts.DataYear, opts.LastUpdated), nil
	default:
		return nil, fmt.Errorf("no parser available for source: %s", source)
	}
}
