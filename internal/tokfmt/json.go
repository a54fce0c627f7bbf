package tokfmt

import (
	"encoding/json"
	"io"

	"lexkit/internal/source"
)

type PositionOutput struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

type RangeOutput struct {
	Start PositionOutput `json:"start"`
	End   PositionOutput `json:"end"`
}

type TokenOutput struct {
	Kind   string      `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Symbol uint32      `json:"symbol,omitempty"`
	Range  RangeOutput `json:"range"`
}

func rangeOutput(r source.Range) RangeOutput {
	return RangeOutput{
		Start: PositionOutput{Line: r.Start.Line, Column: r.Start.Column},
		End:   PositionOutput{Line: r.End.Line, Column: r.End.Column},
	}
}

// JSON выводит токены массивом JSON-объектов; позиции zero-based.
func JSON(w io.Writer, in Input) error {
	output := make([]TokenOutput, 0, len(in.Tokens))
	for _, tok := range in.Tokens {
		output = append(output, TokenOutput{
			Kind:   in.Names.Name(tok.Kind),
			Text:   in.text(tok),
			Symbol: uint32(tok.Sym),
			Range:  rangeOutput(tok.Range),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
