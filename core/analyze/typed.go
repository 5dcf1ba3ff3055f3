package analyze

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leofalp/structo/core/parse"
	"github.com/leofalp/structo/providers/ai"
	"github.com/leofalp/structo/schema"
)

// TypedResult pairs the loop's terminal Result with the output decoded into
// a caller-supplied type.
type TypedResult[T any] struct {
	Result

	// Data is the validated output decoded into T; set only on success.
	Data *T
}

// As runs the validate-and-retry loop with a schema derived from T via
// [schema.FromType], then decodes the validated output into T. It is the
// typed convenience over [New] + [Analyzer.Analyze] for callers who own the
// target struct.
//
// Example:
//
//	type Review struct {
//	    Product string `json:"product" jsonschema:"required"`
//	    Rating  int    `json:"rating" jsonschema:"required"`
//	}
//
//	res, err := analyze.As[Review](ctx, provider, "Analyze this review: ...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Data.Product, res.Data.Rating)
func As[T any](ctx context.Context, provider ai.Provider, userText string, opts ...Option) (*TypedResult[T], error) {
	s, err := schema.FromType[T]()
	if err != nil {
		return nil, err
	}

	analyzer, err := New(provider, s, opts...)
	if err != nil {
		return nil, err
	}

	result, err := analyzer.Analyze(ctx, userText)
	typed := &TypedResult[T]{Result: *result}
	if err != nil {
		return typed, err
	}

	var data T
	if err := json.Unmarshal([]byte(parse.ExtractJSON(result.RawText)), &data); err != nil {
		return typed, fmt.Errorf("structo: failed to decode validated output as %T: %w", data, err)
	}

	typed.Data = &data
	return typed, nil
}
